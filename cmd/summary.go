package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	reportFlags
	by string
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "period attribution per instrument, market, issuer or class"
}
func (*summaryCmd) Usage() string {
	return `fia summary [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-by instrument|market|issuer|class] [-raw]

  Rolls the attribution of the range up by group. Each group's yield is computed
  on its summed components, not averaged from its members.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "class", "Grouping (instrument, market, issuer, class, total)")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	by, err := bondyield.ParseGroupKey(c.by)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.SummaryMarkdown(rep, by), c.raw)
	return subcommands.ExitSuccess
}
