package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagValues predicts the values of the flags that take a fixed set.
var flagValues = map[string]complete.Predictor{
	"p":        predict.Set{"day", "month", "quarter", "year"},
	"scope":    predict.Set{"all", "bonds", "cds"},
	"category": predict.Set{"rate", "credit", "cd"},
	"by":       predict.Set{"instrument", "market", "issuer", "class", "total"},
	"raw":      predict.Nothing,
}

// Completion returns the completion tree of the commands, flags included.
func Completion(cmds []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"data":   predict.Dirs("*"),
			"v":      predict.Nothing,
		},
	}
	for _, c := range cmds {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			p, ok := flagValues[f.Name]
			if !ok {
				p = predict.Something
			}
			sub.Flags[f.Name] = p
		})
		root.Sub[c.Name()] = sub
	}
	return root
}

type completionCmd struct{}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "print the shell completion setup" }
func (*completionCmd) Usage() string {
	return `fia completion

  Prints the bash command enabling the completion of fia subcommands and flags.
  Add it to your ~/.bashrc, or run 'COMP_INSTALL=1 fia' to let fia install it.
`
}

func (*completionCmd) SetFlags(*flag.FlagSet) {}

func (*completionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	bin, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error locating fia:", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(output, "complete -C %s %s\n", bin, filepath.Base(bin))
	return subcommands.ExitSuccess
}
