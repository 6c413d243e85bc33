package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Styles       []string // Styles to apply; empty picks the only configured one
	MapExtension []string // Extra extension:language[:preprocessor]... mappings
	Format       string   // Output format: auto, text, json
	Watch        bool     // Re-check whenever a watched file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check FILE|DIR...",
		Short: "Check source files against a style",
		Long: `Check source files for style compliance.

Directories are descended looking for files with a recognised extension.
Each issue is written to standard error as "file: line: description",
followed by a count of the issues found. The exit status is 1 when any
issue is found.`,
		Example: `  # Check a tree with the only configured style
  stylist check src/

  # Apply two styles
  stylist check --style strict --style whitespace src/

  # Treat .inc files as preprocessed Fortran
  stylist check --map-extension inc:fortran:fpp src/

  # Keep checking as files change
  stylist check --watch src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Styles, "style", "s", nil, "Style to use for the check (may be repeated)")
	cmd.Flags().StringArrayVar(&opts.MapExtension, "map-extension", nil, "Map a file extension to a pipe: EXTENSION:LANGUAGE[:PREPROCESSOR]...")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, json")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when files change")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("style", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return lint.StyleNames(getConfig().Styles), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	eng, err := newEngine(cmdCtx, opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		return watch(cmd.Context(), cmdCtx, eng, args)
	}

	found, err := checkOnce(cmd.Context(), cmdCtx, eng, args)
	if err != nil {
		return err
	}
	if found > 0 {
		return ErrIssuesFound
	}
	return nil
}

// newEngine builds the styles and source factory the options call for.
func newEngine(cmdCtx *CommandContext, opts *CheckOptions) (*lint.Engine, error) {
	factory, err := cmdCtx.Cfg.Factory(opts.MapExtension...)
	if err != nil {
		return nil, err
	}

	names := opts.Styles
	if len(names) == 0 {
		names = []string{""}
	}
	styles := make([]*lint.Style, 0, len(names))
	for _, name := range names {
		style, err := lint.SelectStyle(cmdCtx.Cfg.Styles, name, cmdCtx.Logger)
		if err != nil {
			return nil, err
		}
		cmdCtx.Logger.Info("using style", "style", style.Name(), "rules", style.ListRules())
		styles = append(styles, style)
	}
	return lint.NewEngine(factory, cmdCtx.Logger, styles...), nil
}

// checkOnce checks every file under args and renders the result. It
// returns the number of issues found.
func checkOnce(ctx context.Context, cmdCtx *CommandContext, eng *lint.Engine, args []string) (int, error) {
	files, err := eng.Collect(args)
	if err != nil {
		return 0, err
	}
	issues, err := eng.CheckAll(ctx, files, cmdCtx.Cfg.Workers)
	if err != nil {
		return 0, err
	}
	renderIssues(cmdCtx, len(files), issues)
	return len(issues), nil
}

func renderIssues(cmdCtx *CommandContext, files int, issues []lint.Issue) {
	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if issues == nil {
			issues = []lint.Issue{}
		}
		_ = r.JSON(output.CheckOutput{Files: files, Count: len(issues), Issues: issues})
		return
	}

	for _, issue := range issues {
		r.Errorln(issue.String())
	}
	if len(issues) > 0 || cmdCtx.Cfg.Verbose {
		summary := tally(len(issues))
		if len(issues) == 0 {
			r.Success(summary)
		} else {
			r.Println(r.Styles().Warning.Render(summary))
		}
	}
}

// tally words the issue count the way the summary line reports it.
func tally(n int) string {
	plural := ""
	if n > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Found %d issue%s", n, plural)
}
