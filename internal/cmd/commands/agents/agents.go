package agents

import (
	"github.com/mitchellh/cli"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Interact with agents"
}

func (c *Command) Help() string {
	return `Usage: atrium agents <subcommand> [options]

  This command groups subcommands for working with agents.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
