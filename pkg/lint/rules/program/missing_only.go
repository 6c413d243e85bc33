package program

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(MissingOnlySpec)
}

// MissingOnlySpec registers MissingOnly.
var MissingOnlySpec = lint.RuleSpec{
	Name:        "MissingOnly",
	Description: "USE statements name what they import with an ONLY clause.",
	Kind:        lint.RuleKindFortran,
	ConfigKeys:  []string{"ignore"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(NewMissingOnly(lint.GetStringSliceOption(opts, "ignore", nil)...), logger), nil
	},
}

// MissingOnly reports USE statements without an ONLY clause, except for
// the modules it is told to ignore.
type MissingOnly struct {
	ignore []string
}

// NewMissingOnly creates the checker. Module names are matched without
// regard to case.
func NewMissingOnly(ignore ...string) *MissingOnly {
	lowered := make([]string, 0, len(ignore))
	for _, name := range ignore {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}
	return &MissingOnly{ignore: lowered}
}

func (r *MissingOnly) Name() string { return MissingOnlySpec.Name }

func (r *MissingOnly) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	uses, err := statements[*fortran.UseStmt](src, fortran.KindUseStmt)
	if err != nil {
		return nil, err
	}

	var issues []lint.Issue
	for use := range uses {
		if use.Only() != nil || slices.Contains(r.ignore, strings.ToLower(use.Module())) {
			continue
		}
		description := fmt.Sprintf(`Usage of "%s" without "only" clause.`, use.Module())
		issues = append(issues, lint.NewIssue(description, use.Line()))
	}
	lint.SortIssues(issues)
	return issues, nil
}
