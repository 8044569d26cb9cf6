// Package base carries the pieces shared by every CLI command: the UI, the
// logger, the config-file flag, and construction of an SDK client from the
// loaded configuration.
package base

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mitchellh/cli"
	"gopkg.in/yaml.v3"

	atrium "github.com/atriumhq/atrium-go"
	"github.com/atriumhq/atrium-go/internal/version"
	"github.com/atriumhq/atrium-go/pkg/config"
)

// FileConfig is the HCL shape of the CLI configuration file.
//
// Example:
//
//	api_url = "https://api.atrium.dev"
//	version = "1"
//	api_key = env("ATRIUM_API_KEY")
type FileConfig struct {
	APIURL  string `hcl:"api_url"`
	Version string `hcl:"version,optional"`
	APIKey  string `hcl:"api_key"`
	Verbose bool   `hcl:"verbose,optional"`
}

// Command is embedded by every CLI command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger

	flagConfig string
	flagFormat string
}

// NewCommand creates the shared command base.
func NewCommand(ui cli.Ui, log hclog.Logger) *Command {
	return &Command{UI: ui, Log: log}
}

// FlagSet returns a flag set pre-populated with the flags every command
// accepts.
func (c *Command) FlagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.StringVar(&c.flagConfig, "config", "atrium.hcl", "Path to the HCL configuration file")
	f.StringVar(&c.flagFormat, "format", "json", "Output format: json or yaml")
	return f
}

// Client loads the configuration file and builds an SDK client from it.
func (c *Command) Client() (*atrium.Client, error) {
	var fileCfg FileConfig
	if err := hclsimple.DecodeFile(c.flagConfig, nil, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", c.flagConfig, err)
	}

	cfg := config.Config{
		APIURL:  fileCfg.APIURL,
		Version: fileCfg.Version,
		APIKey:  fileCfg.APIKey,
		Verbose: fileCfg.Verbose,
	}

	logger := c.Log
	if cfg.Verbose {
		logger = logger.ResetNamed("atrium")
		logger.SetLevel(hclog.Debug)
	}

	return atrium.New(cfg,
		atrium.WithLogger(logger),
		atrium.WithUserAgent("atrium-cli/"+version.Version),
	)
}

// Output renders v in the selected output format.
func (c *Command) Output(v any) error {
	switch c.flagFormat {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		c.UI.Output(string(out))
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		c.UI.Output(string(out))
	default:
		return fmt.Errorf("unknown output format %q", c.flagFormat)
	}
	return nil
}
