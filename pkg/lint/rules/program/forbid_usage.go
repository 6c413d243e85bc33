package program

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/tree"
)

func init() {
	lint.Register(ForbidUsageSpec)
}

// ForbidUsageSpec registers ForbidUsage.
var ForbidUsageSpec = lint.RuleSpec{
	Name:        "ForbidUsage",
	Description: "A module is only used from the program units allowed to use it.",
	Kind:        lint.RuleKindFortran,
	ConfigKeys:  []string{"module", "exceptions"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		module := lint.GetStringOption(opts, "module", "")
		if strings.TrimSpace(module) == "" {
			return nil, fmt.Errorf("%w: ForbidUsage needs a module", lint.ErrMissingOption)
		}
		checker := NewForbidUsage(module, lint.GetStringSliceOption(opts, "exceptions", nil)...)
		return lint.NewFortranRule(checker, logger), nil
	},
}

// ForbidUsage reports USE statements naming a forbidden module. Program
// units listed as exceptions, and everything they contain, may use it.
type ForbidUsage struct {
	module     string
	exceptions []string
}

// NewForbidUsage creates the checker. Names are matched without regard to
// case.
func NewForbidUsage(module string, exceptions ...string) *ForbidUsage {
	lowered := make([]string, 0, len(exceptions))
	for _, name := range exceptions {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}
	return &ForbidUsage{module: strings.TrimSpace(module), exceptions: lowered}
}

func (r *ForbidUsage) Name() string { return ForbidUsageSpec.Name }

func (r *ForbidUsage) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	units, err := src.Path(nil, fortran.KindProgramUnit)
	if err != nil {
		return nil, err
	}

	var issues []lint.Issue
	for _, unit := range units {
		if r.excepted(src, unit) {
			continue
		}
		uses, err := src.FindAll(unit, fortran.KindUseStmt)
		if err != nil {
			return nil, err
		}
		for node := range uses {
			use, ok := node.(*fortran.UseStmt)
			if !ok || !strings.EqualFold(use.Module(), r.module) {
				continue
			}
			description := fmt.Sprintf("Attempt to use forbidden module '%s'", r.module)
			issues = append(issues, lint.NewIssue(description, use.Line()))
		}
	}
	lint.SortIssues(issues)
	return issues, nil
}

func (r *ForbidUsage) excepted(src *source.FortranSource, unit tree.Node) bool {
	stmt, ok := unitStatement(src, unit)
	if !ok {
		return false
	}
	return slices.Contains(r.exceptions, strings.ToLower(stmt.Name()))
}
