package drives

import (
	"context"
	"fmt"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

type ListCommand struct {
	*base.Command

	flagLimit  int
	flagOffset int
}

func (c *ListCommand) Synopsis() string {
	return "List drives"
}

func (c *ListCommand) Help() string {
	return `Usage: atrium drives list [options]

  List the drives visible to the configured API key.

Options:

  -config=<path>   Path to the HCL configuration file.
  -format=<fmt>    Output format: json or yaml.
  -limit=<n>       Maximum number of drives to return.
  -offset=<n>      Offset into the result set.`
}

func (c *ListCommand) Run(args []string) int {
	f := c.FlagSet("drives list")
	f.IntVar(&c.flagLimit, "limit", 25, "")
	f.IntVar(&c.flagOffset, "offset", 0, "")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	result, err := client.Drives.List(context.Background(), transport.Params{
		"limit":  c.flagLimit,
		"offset": c.flagOffset,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing drives: %v", err))
		return 1
	}

	if err := c.Output(result.Items); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
