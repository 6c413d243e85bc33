package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/spf13/cobra"
)

// styleOutput is the JSON form of a configured style.
type styleOutput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules"`
}

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List configured styles",
		Long: `List the styles defined by the configuration, with the rules each applies
in order. When no style is configured the built in default style is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd, format)
			return listStyles(cmdCtx)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: auto, text, json")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	return cmd
}

func listStyles(cmdCtx *CommandContext) error {
	r := cmdCtx.Renderer
	var out []styleOutput
	for _, name := range lint.StyleNames(cmdCtx.Cfg.Styles) {
		style, err := lint.BuildStyle(name, cmdCtx.Cfg.Styles[name], cmdCtx.Logger)
		if err != nil {
			return err
		}
		out = append(out, styleOutput{Name: style.Name(), Description: style.Description(), Rules: style.ListRules()})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Style", "Description", "Rules"})
	for _, s := range out {
		t.AppendRow(table.Row{s.Name, s.Description, strings.Join(s.Rules, "\n")})
		t.AppendSeparator()
	}
	t.Render()
	return nil
}
