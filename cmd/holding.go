package cmd

import (
	"context"
	"flag"

	"github.com/etnz/bondyield/date"
	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct {
	reportFlags
}

func (*holdingCmd) Name() string     { return "holdings" }
func (*holdingCmd) Synopsis() string { return "positions held on a day" }
func (*holdingCmd) Usage() string {
	return `fia holdings [-d <date>] [-scope all|bonds|cds] [-raw]

  Displays the positions held at the end of a day, by category.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.end, "d", date.Today().String(), "Date of the holdings")
	f.StringVar(&c.scope, "scope", "all", "Instrument scope (all, bonds, cds)")
	f.StringVar(&c.codes, "code", "", "Comma separated instrument codes")
	f.BoolVar(&c.raw, "raw", false, "Print plain markdown")
}

func (c *holdingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.period = "day"
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	printMarkdown(renderer.HoldingsMarkdown(rep), c.raw)
	return subcommands.ExitSuccess
}
