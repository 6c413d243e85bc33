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
	lint.Register(IntrinsicModuleSpec)
}

// IntrinsicModuleSpec registers IntrinsicModule.
var IntrinsicModuleSpec = lint.RuleSpec{
	Name:        "IntrinsicModule",
	Description: "Intrinsic modules are used with the INTRINSIC module nature.",
	Kind:        lint.RuleKindFortran,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&IntrinsicModule{}, logger), nil
	},
}

// intrinsicModules are the modules the standard provides.
var intrinsicModules = map[string]bool{
	"iso_c_binding":   true,
	"iso_fortran_env": true,
	"ieee_exceptions": true,
	"ieee_arithmetic": true,
	"ieee_features":   true,
}

// IntrinsicModule reports intrinsic modules used without a module nature.
// An explicit NON_INTRINSIC names a user module of the same name and is
// left alone.
type IntrinsicModule struct{}

func (r *IntrinsicModule) Name() string { return IntrinsicModuleSpec.Name }

func (r *IntrinsicModule) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	uses, err := statements[*fortran.UseStmt](src, fortran.KindUseStmt)
	if err != nil {
		return nil, err
	}

	var issues []lint.Issue
	for use := range uses {
		if use.Nature() != "" || !intrinsicModules[strings.ToLower(use.Module())] {
			continue
		}
		description := fmt.Sprintf(`Usage of intrinsic module "%s" without "intrinsic" clause.`, use.Module())
		issues = append(issues, lint.NewIssue(description, use.Line()))
	}
	lint.SortIssues(issues)
	return issues, nil
}
