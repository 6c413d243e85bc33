package program

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/tree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	lint.Register(MissingImplicitSpec)
}

// MissingImplicitSpec registers MissingImplicit.
var MissingImplicitSpec = lint.RuleSpec{
	Name:        "MissingImplicit",
	Description: "Program units, and optionally every subprogram, have an IMPLICIT statement.",
	Kind:        lint.RuleKindFortran,
	ConfigKeys:  []string{"require_everywhere"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&MissingImplicit{
			RequireEverywhere: lint.GetBoolOption(opts, "require_everywhere", false),
		}, logger), nil
	},
}

var titleCase = cases.Title(language.English)

// MissingImplicit reports scoping units with no IMPLICIT statement. Only
// program units are checked unless RequireEverywhere is set, in which case
// contained subprograms must carry their own.
type MissingImplicit struct {
	RequireEverywhere bool
}

func (r *MissingImplicit) Name() string { return MissingImplicitSpec.Name }

func (r *MissingImplicit) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	scopes, err := src.Path(nil, fortran.KindProgramUnit)
	if err != nil {
		return nil, err
	}
	if r.RequireEverywhere {
		var all []tree.Node
		for _, unit := range scopes {
			subs, err := subprograms(src, unit)
			if err != nil {
				return nil, err
			}
			all = append(all, unit)
			all = append(all, subs...)
		}
		scopes = all
	}

	var issues []lint.Issue
	for _, scope := range scopes {
		implicit, err := src.Path(scope,
			fortran.KindSpecificationPart, fortran.KindImplicitPart, fortran.KindImplicitStmt)
		if err != nil {
			return nil, err
		}
		if len(implicit) > 0 {
			continue
		}
		unit, ok := unitStatement(src, scope)
		if !ok {
			continue
		}
		description := fmt.Sprintf("%s '%s' is missing an implicit statement", nature(unit), unit.Name())
		issues = append(issues, lint.NewIssue(description, unit.Line()))
	}
	return issues, nil
}

// nature names the kind of unit a statement opens, e.g. "Subroutine".
func nature(unit *fortran.UnitStmt) string {
	word := strings.ToLower(strings.TrimSuffix(unit.Kind(), "_Stmt"))
	return titleCase.String(word)
}
