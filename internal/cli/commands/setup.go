// Package commands implements the stylist subcommands.
package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/stylist/internal/cli/config"
	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned by check when any issue is reported. The
// caller exits with status 1 without printing it as an error.
var ErrIssuesFound = errors.New("style issues found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
// A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the current configuration, or the defaults when none
// has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func completeFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return output.Modes(), cobra.ShellCompDirectiveNoFileComp
}
