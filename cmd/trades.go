package cmd

import (
	"context"
	"flag"

	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	reportFlags
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "trades of the range, primary allocations merged" }
func (*tradesCmd) Usage() string {
	return `fia trades [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-code c1,c2] [-raw]

  Lists the primary, interbank and exchange trades of the instruments in scope.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) { c.reportFlags.SetFlags(f) }

func (c *tradesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.TradesMarkdown(rep), c.raw)
	return subcommands.ExitSuccess
}
