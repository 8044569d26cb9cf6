package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
	"github.com/atriumhq/atrium-go/internal/cmd/commands/agents"
	"github.com/atriumhq/atrium-go/internal/cmd/commands/drives"
	"github.com/atriumhq/atrium-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	newBase := func() *base.Command {
		return base.NewCommand(ui, log)
	}

	Commands = map[string]cli.CommandFactory{
		"agents": func() (cli.Command, error) {
			return &agents.Command{Command: newBase()}, nil
		},
		"agents list": func() (cli.Command, error) {
			return &agents.ListCommand{Command: newBase()}, nil
		},
		"drives": func() (cli.Command, error) {
			return &drives.Command{Command: newBase()}, nil
		},
		"drives list": func() (cli.Command, error) {
			return &drives.ListCommand{Command: newBase()}, nil
		},
		"drives upload": func() (cli.Command, error) {
			return &drives.UploadCommand{Command: newBase()}, nil
		},
		"drives find": func() (cli.Command, error) {
			return &drives.FindCommand{Command: newBase()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{UI: ui}, nil
		},
	}
}
