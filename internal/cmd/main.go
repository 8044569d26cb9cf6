package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/atriumhq/atrium-go/internal/version"
)

// Main runs the CLI and returns the process exit code. The log level is
// taken from ATRIUM_LOG_LEVEL; individual commands raise it to debug when
// the loaded configuration asks for verbose output.
func Main(args []string) int {
	name := args[0]

	log := hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.LevelFromString(os.Getenv("ATRIUM_LOG_LEVEL")),
	})

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	initCommands(log, ui)

	c := &cli.CLI{
		Name:       name,
		Args:       normalizeArgs(args[1:]),
		Version:    version.Version,
		Commands:   Commands,
		HelpWriter: os.Stdout,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}

// normalizeArgs maps the bare version flags onto the version subcommand so
// "atrium -v" and "atrium version" behave identically. Everything else
// passes through untouched for the command dispatcher.
func normalizeArgs(args []string) []string {
	if len(args) == 1 {
		switch args[0] {
		case "-v", "-version", "--version":
			return []string{"version"}
		}
	}
	return args
}
