package cmd

import (
	"github.com/google/subcommands"
)

// Commands returns the fia subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&dailyCmd{},
		&cumulativeCmd{},
		&summaryCmd{},
		&monthlyCmd{},
		&holdingCmd{},
		&tradesCmd{},
		&explainCmd{},
		&completionCmd{},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands() {
		switch cmd.(type) {
		case *explainCmd, *completionCmd:
			c.Register(cmd, "tools")
		default:
			c.Register(cmd, "reports")
		}
	}
}
