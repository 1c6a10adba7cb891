package cmd

import (
	"flag"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags completed with file names.
var fileFlags = map[string]complete.Predictor{
	"config":       predict.Files("*.toml"),
	"holdings":     predict.Files("*.jsonl"),
	"lots":         predict.Files("*.jsonl"),
	"transactions": predict.Files("*.jsonl"),
	"prices":       predict.Files("*.json"),
	"rates":        predict.Files("*.json"),
}

// Completion describes the command line of c for shell completion: the
// global flags and every registered subcommand with its own flags.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if cmd.Name() == "topic" {
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// flagPredictors predicts file names for file flags, and anything for the others.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := fileFlags[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
