package cmd

import (
	"flag"

	"github.com/etnz/positions/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pos command line for shell completion.
//
// Run `COMP_INSTALL=1 pos` to install it in the user's shell.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, cmds := range Commands() {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			if c.Name() == "topic" {
				sub.Args = predict.Set(topicNames())
			}
			root.Sub[c.Name()] = sub
		}
	}
	return root
}

// flagPredictors suggests values for the flags whose values are known.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	out := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "ledger-file":
			out[f.Name] = predict.Files("*.jsonl")
		case "config":
			out[f.Name] = predict.Files("*.yaml")
		case "side":
			out[f.Name] = predict.Set{"buy", "sell"}
		default:
			if _, isBool := f.Value.(interface{ IsBoolFlag() bool }); isBool {
				out[f.Name] = predict.Nothing
			} else {
				out[f.Name] = predict.Something
			}
		}
	})
	return out
}

// topicNames lists the topics accepted by `pos topic`.
func topicNames() []string {
	topics, _ := docs.GetAllTopics()
	return append(topics, "readme", "*")
}
