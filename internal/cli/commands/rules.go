package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Kind   string // Filter by kind: text, fortran
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available rules",
		Long: `List the rules styles can be built from, with the options each accepts.

Options are given in the configuration either by name or positionally,
in the order listed, as in "LimitLineLength(100)".`,
		Example: `  # List all rules
  stylist rules

  # Show one rule
  stylist rules MissingOnly

  # List rules which read the parse tree
  stylist rules --kind fortran`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd, opts.Format)
			if len(args) > 0 {
				return showRule(cmdCtx.Renderer, args[0])
			}
			return listRules(cmdCtx.Renderer, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Filter by kind: text, fortran")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, json")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func ruleOutput(spec lint.RuleSpec) output.RuleOutput {
	return output.RuleOutput{
		Name:        spec.Name,
		Kind:        spec.Kind,
		Description: spec.Description,
		Options:     spec.ConfigKeys,
	}
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	var rules []lint.RuleSpec
	for _, spec := range lint.AllRules() {
		if opts.Kind == "" || spec.Kind == opts.Kind {
			rules = append(rules, spec)
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.RuleOutput, 0, len(rules))
		for _, spec := range rules {
			out = append(out, ruleOutput(spec))
		}
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Kind", "Options", "Description"})
	for _, spec := range rules {
		t.AppendRow(table.Row{spec.Name, spec.Kind, strings.Join(spec.ConfigKeys, ", "), spec.Description})
	}
	t.Render()
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("%d rules", len(rules))))
	return nil
}

func showRule(r *output.Renderer, name string) error {
	spec, ok := lint.LookupRule(name)
	if !ok {
		return fmt.Errorf("%w: %s (known rules: %s)", lint.ErrUnknownRule, name, strings.Join(lint.RuleNames(), ", "))
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ruleOutput(spec))
	}

	styles := r.Styles()
	r.Println(styles.Header.Render(spec.Name))
	r.Printf("  %s: %s\n", styles.Bold.Render("Kind"), spec.Kind)
	r.Printf("  %s: %s\n", styles.Bold.Render("Description"), spec.Description)
	if len(spec.ConfigKeys) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Options"), strings.Join(spec.ConfigKeys, ", "))
	}
	return nil
}
