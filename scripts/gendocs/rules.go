package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/lint"
	_ "github.com/leapstack-labs/stylist/pkg/lint/rules"
)

// kindDescriptions describes each group of rules on the rules page.
var kindDescriptions = map[string]string{
	lint.RuleKindText:    "Rules reading the raw text of any source file.",
	lint.RuleKindFortran: "Rules reading the parse tree of Fortran sources.",
}

// generateRulesDocs writes the rules reference page.
func generateRulesDocs(outDir string) error {
	log.Printf("Generating rules docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.AllRules()
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Built in style rules")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("stylist ships with %d rules. A style lists the rules to apply, "+
		"each either by name or in the short form `Name(arg, ...)`.", len(rules)))

	for _, kind := range []string{lint.RuleKindText, lint.RuleKindFortran} {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(kind), kind))
		w.Newline()
		w.Paragraph(kindDescriptions[kind])

		for _, spec := range rules {
			if spec.Kind == kind {
				writeRuleDoc(w, spec)
			}
		}
	}

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes the documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, spec lint.RuleSpec) {
	w.Line(fmt.Sprintf("### %s {#%s}", spec.Name, strings.ToLower(spec.Name)))
	w.Newline()

	w.Paragraph(cleanDescription(spec.Description))

	if len(spec.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("Options, in positional order: %s", InlineCode(strings.Join(spec.ConfigKeys, ", "))))
		args := make([]string, len(spec.ConfigKeys))
		for i, k := range spec.ConfigKeys {
			args[i] = "<" + k + ">"
		}
		w.CodeBlock("yaml", fmt.Sprintf("rules:\n  - %s(%s)", spec.Name, strings.Join(args, ", ")))
	}

	w.Line("---")
	w.Newline()
}
