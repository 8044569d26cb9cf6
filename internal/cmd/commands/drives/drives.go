package drives

import (
	"github.com/mitchellh/cli"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Interact with drives and their items"
}

func (c *Command) Help() string {
	return `Usage: atrium drives <subcommand> [options]

  This command groups subcommands for working with drives: listing them,
  resolving item paths, and uploading files.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
