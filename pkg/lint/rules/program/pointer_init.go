package program

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(MissingPointerInitSpec)
}

// MissingPointerInitSpec registers MissingPointerInit.
var MissingPointerInitSpec = lint.RuleSpec{
	Name:        "MissingPointerInit",
	Description: "Pointers are initialised where they are declared.",
	Kind:        lint.RuleKindFortran,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&MissingPointerInit{}, logger), nil
	},
}

// pointerDeclarations are the statements which may declare pointers:
// component variables, component procedures, procedures and variables.
var pointerDeclarations = []string{
	fortran.KindDataComponentDefStmt,
	fortran.KindProcComponentDefStmt,
	fortran.KindProcedureDeclStmt,
	fortran.KindTypeDeclarationStmt,
}

// MissingPointerInit reports pointers declared without an initialisation.
// Dummy arguments and function results cannot be initialised and are
// skipped.
type MissingPointerInit struct{}

func (r *MissingPointerInit) Name() string { return MissingPointerInitSpec.Name }

func (r *MissingPointerInit) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	var issues []lint.Issue
	for _, kind := range pointerDeclarations {
		decls, err := statements[*fortran.DeclStmt](src, kind)
		if err != nil {
			return nil, err
		}
		for decl := range decls {
			if !decl.HasAttribute("pointer") {
				continue
			}
			if _, isArgument := decl.Intent(); isArgument {
				continue
			}
			result := resultVariable(src, decl)
			for _, entity := range decl.Entities() {
				if _, ok := entity.Init(); ok {
					continue
				}
				if result != "" && strings.EqualFold(entity.Name(), result) {
					continue
				}
				description := fmt.Sprintf(`Declaration of pointer "%s" without initialisation.`, entity.Name())
				issues = append(issues, lint.NewIssue(description, decl.Line()))
			}
		}
	}
	lint.SortIssues(issues)
	return issues, nil
}

// resultVariable returns the name of the result variable of the function
// whose specification part holds decl, or "" when decl is not declared
// directly in a function.
func resultVariable(src *source.FortranSource, decl *fortran.DeclStmt) string {
	spec := decl.Parent()
	if spec == nil || spec.Parent() == nil || spec.Parent().Kind() != fortran.KindFunctionSubprogram {
		return ""
	}
	unit, ok := unitStatement(src, spec.Parent())
	if !ok {
		return ""
	}
	if unit.Result() != "" {
		return unit.Result()
	}
	return unit.Name()
}
