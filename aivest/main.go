package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/marcward/aivest/cmd"
)

func main() {
	// A .env file next to the invocation can carry GEMINI_API_KEY and the
	// AIVEST_* overrides. Its absence is fine.
	godotenv.Load()

	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completion := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
