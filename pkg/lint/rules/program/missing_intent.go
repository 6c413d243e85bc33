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
	lint.Register(MissingIntentSpec)
}

// MissingIntentSpec registers MissingIntent.
var MissingIntentSpec = lint.RuleSpec{
	Name:        "MissingIntent",
	Description: "Dummy arguments of subroutines and functions declare an intent.",
	Kind:        lint.RuleKindFortran,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&MissingIntent{}, logger), nil
	},
}

// MissingIntent reports dummy arguments without an intent, given either as
// a declaration attribute or by an INTENT statement. Dummy procedures which
// are not pointers cannot take an intent and are skipped, as are alternate
// returns. Interface bodies describe other procedures and are not checked.
type MissingIntent struct{}

func (r *MissingIntent) Name() string { return MissingIntentSpec.Name }

func (r *MissingIntent) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
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
	return issues, nil
}

func (r *MissingIntent) examineScope(src *source.FortranSource, scope tree.Node) ([]lint.Issue, error) {
	var nature string
	switch scope.Kind() {
	case fortran.KindSubroutineSubprogram:
		nature = "subroutine"
	case fortran.KindFunctionSubprogram:
		nature = "function"
	default:
		return nil, nil
	}
	unit, ok := unitStatement(src, scope)
	if !ok || len(unit.Args()) == 0 {
		return nil, nil
	}

	exempt, err := argumentsWithIntent(src, scope)
	if err != nil {
		return nil, err
	}

	var issues []lint.Issue
	for _, arg := range unit.Args() {
		name := strings.ToLower(arg)
		if name == "*" || exempt[name] {
			continue
		}
		description := fmt.Sprintf(`Dummy argument "%s" of %s "%s" is missing an "intent" statement`,
			name, nature, unit.Name())
		issues = append(issues, lint.NewIssue(description, unit.Line()))
	}
	return issues, nil
}

// argumentsWithIntent returns the lower cased names declared in the
// specification part of scope which either have an intent or cannot take
// one.
func argumentsWithIntent(src *source.FortranSource, scope tree.Node) (map[string]bool, error) {
	names := make(map[string]bool)

	decls, err := src.Path(scope, fortran.KindSpecificationPart, fortran.KindDeclarationConstruct)
	if err != nil {
		return nil, err
	}
	for _, node := range decls {
		switch stmt := node.(type) {
		case *fortran.DeclStmt:
			_, hasIntent := stmt.Intent()
			procedure := stmt.Kind() == fortran.KindProcedureDeclStmt && !stmt.HasAttribute("pointer")
			if !hasIntent && !procedure && !stmt.HasAttribute("external") {
				continue
			}
			for _, entity := range stmt.Entities() {
				names[strings.ToLower(entity.Name())] = true
			}
		case *fortran.NamesStmt:
			if stmt.Kind() != fortran.KindIntentStmt && !strings.EqualFold(stmt.Spec(), "external") {
				continue
			}
			for _, name := range stmt.Names() {
				names[strings.ToLower(name)] = true
			}
		}
	}

	// Procedures described by an interface block are dummy procedures.
	bodies, err := src.Path(scope, fortran.KindSpecificationPart, fortran.KindInterfaceBlock, fortran.KindInterfaceBody)
	if err != nil {
		return nil, err
	}
	for _, body := range bodies {
		if unit, ok := unitStatement(src, body); ok {
			names[strings.ToLower(unit.Name())] = true
		}
	}
	return names, nil
}
