// Package mcp exposes market quotes over the Model Context Protocol so an
// LLM client can price symbols through the same provider the ledger uses.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/marcward/aivest"
)

// NewServer builds an MCP server with the quote tools registered.
func NewServer(name, version string, prices aivest.PriceProvider, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, prices, log.With().Str("component", "mcp").Logger())
	return s
}

// ServeStdio runs the server over stdin/stdout until the client hangs up.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func registerTools(s *server.MCPServer, prices aivest.PriceProvider, log zerolog.Logger) {
	s.AddTool(createGetQuoteTool(), handleGetQuote(prices, log))
	s.AddTool(createGetBatchQuotesTool(), handleGetBatchQuotes(prices, log))
}

func createGetQuoteTool() mcp.Tool {
	return mcp.NewTool("get_quote",
		mcp.WithDescription("Get the current market price for a single ticker symbol. Fails if the symbol cannot be priced."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Ticker symbol (e.g., 'AAPL', 'MSFT')")),
	)
}

func createGetBatchQuotesTool() mcp.Tool {
	return mcp.NewTool("get_batch_quotes",
		mcp.WithDescription("Get current market prices for several ticker symbols at once. Best-effort: symbols that cannot be priced are listed separately instead of failing the call."),
		mcp.WithArray("symbols", mcp.WithStringItems(), mcp.Required(), mcp.Description("Ticker symbols to price (e.g., ['AAPL', 'MSFT'])")),
	)
}
