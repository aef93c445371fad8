package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/marcward/aivest/mcp"
)

// version is stamped at build time.
var version = "dev"

type mcpCmd struct{}

func (*mcpCmd) Name() string     { return "mcp" }
func (*mcpCmd) Synopsis() string { return "serve market quotes over the Model Context Protocol" }
func (*mcpCmd) Usage() string {
	return `aivest mcp

  Serves the get_quote and get_batch_quotes tools over stdio, for use by
  MCP clients such as LLM desktop apps. Runs until the client hangs up.
`
}

func (*mcpCmd) SetFlags(f *flag.FlagSet) {}

func (c *mcpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s := mcp.NewServer("aivest", version, newPriceProvider(cfg), newLogger(cfg))
	if err := mcp.ServeStdio(s); err != nil {
		fmt.Fprintln(os.Stderr, "stdio server error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
