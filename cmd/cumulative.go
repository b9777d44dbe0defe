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

type cumulativeCmd struct {
	reportFlags
	category string
}

func (*cumulativeCmd) Name() string     { return "cumulative" }
func (*cumulativeCmd) Synopsis() string { return "cumulative attribution and yield, day by day" }
func (*cumulativeCmd) Usage() string {
	return `fia cumulative [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-category rate|credit|cd] [-raw]

  Displays the attribution accumulated since the start of the range, and the
  annualized cumulative yield, for every day of the range.
`
}

func (c *cumulativeCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.category, "category", "", "Restrict to one category (rate, credit, cd)")
}

func (c *cumulativeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []bondyield.Filter
	if c.category != "" {
		cat, err := bondyield.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, bondyield.WithCategory(cat))
	}
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.CumulativeMarkdown(rep, filters...), c.raw)
	return subcommands.ExitSuccess
}
