package drives

import (
	"context"
	"fmt"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
	"github.com/atriumhq/atrium-go/pkg/drive"
)

type FindCommand struct {
	*base.Command

	flagDrive         string
	flagCaseSensitive bool
}

func (c *FindCommand) Synopsis() string {
	return "Resolve a path inside a drive"
}

func (c *FindCommand) Help() string {
	return `Usage: atrium drives find -drive=<id> [options] <path>

  Resolve a slash-delimited path inside a drive to a file or a folder
  listing. Prints nothing and exits 0 with status "not found" when the
  path does not exist.

Options:

  -config=<path>      Path to the HCL configuration file.
  -format=<fmt>       Output format: json or yaml.
  -drive=<id>         ID of the drive to search (required).
  -case-sensitive     Match the path with exact case.`
}

func (c *FindCommand) Run(args []string) int {
	f := c.FlagSet("drives find")
	f.StringVar(&c.flagDrive, "drive", "", "")
	f.BoolVar(&c.flagCaseSensitive, "case-sensitive", false, "")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagDrive == "" {
		c.UI.Error("the -drive flag is required")
		return 1
	}
	if len(f.Args()) != 1 {
		c.UI.Error("exactly one path argument is required")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	items := client.DriveItemsByID(c.flagDrive)
	res, err := items.FindByPath(context.Background(), f.Args()[0], &drive.FindOptions{
		CaseSensitive: c.flagCaseSensitive,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error resolving path: %v", err))
		return 1
	}
	if res == nil {
		c.UI.Info("not found")
		return 0
	}

	var out any
	if res.IsFolder() {
		out = res.Listing
	} else {
		out = res.Item
	}
	if err := c.Output(out); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
