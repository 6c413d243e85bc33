package program

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(KindPatternSpec)
}

// KindPatternSpec registers KindPattern.
var KindPatternSpec = lint.RuleSpec{
	Name:        "KindPattern",
	Description: "Kinds of integer and real declarations follow a naming pattern.",
	Kind:        lint.RuleKindFortran,
	ConfigKeys:  []string{"integer", "real"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		checker, err := NewKindPattern(
			lint.GetStringOption(opts, "integer", ""),
			lint.GetStringOption(opts, "real", ""),
		)
		if err != nil {
			return nil, err
		}
		return lint.NewFortranRule(checker, logger), nil
	},
}

// kindDeclarations are the statements whose kinds are checked.
var kindDeclarations = []string{
	fortran.KindTypeDeclarationStmt,
	fortran.KindDataComponentDefStmt,
}

// KindPattern reports declarations whose kind name does not match the
// pattern given for their type. Declarations without a kind, and types
// without a pattern, are not checked.
type KindPattern struct {
	patterns map[string]kindRegexp
}

type kindRegexp struct {
	source string
	re     *regexp.Regexp
}

// NewKindPattern compiles the patterns. An empty pattern leaves that type
// unchecked. Patterns match from the start of the kind name.
func NewKindPattern(integerPattern, realPattern string) (*KindPattern, error) {
	r := &KindPattern{patterns: make(map[string]kindRegexp)}
	for typ, pattern := range map[string]string{"integer": integerPattern, "real": realPattern} {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern: %w", lint.ErrInvalidOption, typ, err)
		}
		r.patterns[typ] = kindRegexp{source: pattern, re: re}
	}
	return r, nil
}

func (r *KindPattern) Name() string { return KindPatternSpec.Name }

func (r *KindPattern) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	var issues []lint.Issue
	for _, kind := range kindDeclarations {
		decls, err := statements[*fortran.DeclStmt](src, kind)
		if err != nil {
			return nil, err
		}
		for decl := range decls {
			typ, kindName, ok := declaredKind(decl.TypeSpec())
			if !ok {
				continue
			}
			pattern, ok := r.patterns[typ]
			if !ok || pattern.re.MatchString(kindName) {
				continue
			}
			names := make([]string, 0, len(decl.Entities()))
			for _, entity := range decl.Entities() {
				names = append(names, entity.Name())
			}
			description := fmt.Sprintf("Kind '%s' found for %s variable '%s' does not fit the pattern /%s/.",
				kindName, typ, strings.Join(names, ", "), pattern.source)
			issues = append(issues, lint.NewIssue(description, decl.Line()))
		}
	}
	lint.SortIssues(issues)
	return issues, nil
}

// declaredKind splits a type spec such as "integer(kind=i_def)" into its
// type and kind name.
func declaredKind(spec string) (typ, kind string, ok bool) {
	typ, rest, found := strings.Cut(spec, "(")
	if !found || !strings.HasSuffix(rest, ")") {
		return "", "", false
	}
	kind = strings.TrimSuffix(rest, ")")
	kind = strings.TrimPrefix(kind, "kind=")
	if kind == "" {
		return "", "", false
	}
	return typ, kind, true
}
