package agents

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
	flagQuery  string
}

func (c *ListCommand) Synopsis() string {
	return "List agents"
}

func (c *ListCommand) Help() string {
	return `Usage: atrium agents list [options]

  List the agents visible to the configured API key.

Options:

  -config=<path>   Path to the HCL configuration file.
  -format=<fmt>    Output format: json or yaml.
  -limit=<n>       Maximum number of agents to return.
  -offset=<n>      Offset into the result set.
  -q=<text>        Free-text filter.`
}

func (c *ListCommand) Run(args []string) int {
	f := c.FlagSet("agents list")
	f.IntVar(&c.flagLimit, "limit", 25, "")
	f.IntVar(&c.flagOffset, "offset", 0, "")
	f.StringVar(&c.flagQuery, "q", "", "")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	params := transport.Params{
		"limit":  c.flagLimit,
		"offset": c.flagOffset,
	}
	if c.flagQuery != "" {
		params["q"] = c.flagQuery
	}

	result, err := client.Agents.List(context.Background(), params)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing agents: %v", err))
		return 1
	}

	if err := c.Output(result.Items); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if result.Paging != nil {
		c.UI.Info(fmt.Sprintf("showing %d of %d agents", len(result.Items), result.Paging.Total))
	}
	return 0
}
