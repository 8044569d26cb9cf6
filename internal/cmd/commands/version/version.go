package version

import (
	"github.com/mitchellh/cli"

	"github.com/atriumhq/atrium-go/internal/version"
)

type Command struct {
	UI cli.Ui
}

func (c *Command) Synopsis() string {
	return "Print the CLI version"
}

func (c *Command) Help() string {
	return `Usage: atrium version

  Print the version of this CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("atrium v" + version.Version)
	return 0
}
