package cmd

import (
	"context"
	"flag"

	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
)

type dailyCmd struct {
	reportFlags
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "per instrument and day attribution" }
func (*dailyCmd) Usage() string {
	return `fia daily [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-code c1,c2] [-raw]

  Displays, for every instrument and day of the range, the held amount, the cost and
  mark prices, and the interest, capital gain and mark-to-market of the day.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) { c.reportFlags.SetFlags(f) }

func (c *dailyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.DailyMarkdown(rep), c.raw)
	return subcommands.ExitSuccess
}
