package program

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/tree"
)

func init() {
	lint.Register(AutoCharArrayIntentSpec)
}

// AutoCharArrayIntentSpec registers AutoCharArrayIntent.
var AutoCharArrayIntentSpec = lint.RuleSpec{
	Name:        "AutoCharArrayIntent",
	Description: "Assumed length character arguments have intent IN.",
	Kind:        lint.RuleKindFortran,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&AutoCharArrayIntent{}, logger), nil
	},
}

// assumedLength holds the type specs of an assumed length character.
var assumedLength = map[string]bool{
	"character(*)":     true,
	"character(len=*)": true,
	"character*(*)":    true,
}

// AutoCharArrayIntent reports dummy arguments of assumed length character
// type declared with an intent other than IN.
type AutoCharArrayIntent struct{}

func (r *AutoCharArrayIntent) Name() string { return AutoCharArrayIntentSpec.Name }

func (r *AutoCharArrayIntent) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	units, err := src.Path(nil, fortran.KindProgramUnit)
	if err != nil {
		return nil, err
	}

	var issues []lint.Issue
	for _, unit := range units {
		subs, err := subprograms(src, unit)
		if err != nil {
			return nil, err
		}
		for _, scope := range append([]tree.Node{unit}, subs...) {
			found, err := r.examineScope(src, scope)
			if err != nil {
				return nil, err
			}
			issues = append(issues, found...)
		}
	}
	lint.SortIssues(issues)
	return issues, nil
}

func (r *AutoCharArrayIntent) examineScope(src *source.FortranSource, scope tree.Node) ([]lint.Issue, error) {
	if scope.Kind() != fortran.KindSubroutineSubprogram && scope.Kind() != fortran.KindFunctionSubprogram {
		return nil, nil
	}
	unit, ok := unitStatement(src, scope)
	if !ok || len(unit.Args()) == 0 {
		return nil, nil
	}
	args := make(map[string]bool, len(unit.Args()))
	for _, arg := range unit.Args() {
		args[strings.ToLower(arg)] = true
	}

	decls, err := src.Path(scope, fortran.KindSpecificationPart, fortran.KindDeclarationConstruct)
	if err != nil {
		return nil, err
	}
	var issues []lint.Issue
	for _, node := range decls {
		decl, ok := node.(*fortran.DeclStmt)
		if !ok || decl.Kind() != fortran.KindTypeDeclarationStmt || !assumedLength[decl.TypeSpec()] {
			continue
		}
		intent, ok := decl.Intent()
		if !ok || intent == "in" {
			continue
		}
		for _, entity := range decl.Entities() {
			if !args[strings.ToLower(entity.Name())] {
				continue
			}
			description := fmt.Sprintf("Arguments of type character(*) must have intent IN, but %s has intent %s.",
				entity.Name(), strings.ToUpper(intent))
			issues = append(issues, lint.NewIssue(description, decl.Line()))
		}
	}
	return issues, nil
}
