package cmd

import (
	"context"
	"flag"

	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
)

type monthlyCmd struct {
	reportFlags
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "monthly rate, mark-to-market excluded" }
func (*monthlyCmd) Usage() string {
	return `fia monthly [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-raw]

  Splits the range by calendar month and displays the annualized rate of each
  month, computed on interest and capital gains only.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f, "year") }

func (c *monthlyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.MonthlyMarkdown(rep), c.raw)
	return subcommands.ExitSuccess
}
