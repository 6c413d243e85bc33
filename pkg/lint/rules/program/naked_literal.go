package program

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/token"
)

func init() {
	lint.Register(NakedLiteralSpec)
}

// NakedLiteralSpec registers NakedLiteral.
var NakedLiteralSpec = lint.RuleSpec{
	Name:        "NakedLiteral",
	Description: "Numeric literals assigned to variables carry a kind.",
	Kind:        lint.RuleKindFortran,
	ConfigKeys:  []string{"integers", "reals"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		checker := NewNakedLiteral(
			lint.GetBoolOption(opts, "integers", true),
			lint.GetBoolOption(opts, "reals", true),
		)
		return lint.NewFortranRule(checker, logger), nil
	},
}

// NakedLiteral reports integer and real literals without a kind suffix
// which are assigned to a variable, either by an initialisation in a
// declaration or by an assignment statement. Literals used as subscripts
// or call arguments are not assignments and are left alone.
type NakedLiteral struct {
	check map[token.TokenType]bool
}

// NewNakedLiteral creates the checker for the literal types enabled.
func NewNakedLiteral(integers, reals bool) *NakedLiteral {
	return &NakedLiteral{check: map[token.TokenType]bool{token.INT: integers, token.REAL: reals}}
}

func (r *NakedLiteral) Name() string { return NakedLiteralSpec.Name }

func (r *NakedLiteral) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	var issues []lint.Issue
	report := func(name string, line, count int) {
		for range count {
			description := fmt.Sprintf(`Literal value assigned to "%s" without kind`, name)
			issues = append(issues, lint.NewIssue(description, line))
		}
	}

	for _, kind := range kindDeclarations {
		decls, err := statements[*fortran.DeclStmt](src, kind)
		if err != nil {
			return nil, err
		}
		for decl := range decls {
			for _, entity := range decl.Entities() {
				value, ok := entity.Init()
				if !ok || !strings.HasPrefix(value, "=") || strings.HasPrefix(value, "=>") {
					continue
				}
				toks := fortran.Tokenize(strings.TrimPrefix(value, "="))
				report(entity.Name(), decl.Line(), r.nakedLiterals(toks))
			}
		}
	}

	assignments, err := findAll(src, fortran.KindAssignmentStmt)
	if err != nil {
		return nil, err
	}
	for _, node := range assignments {
		stmt, ok := node.(fortran.Statement)
		if !ok {
			continue
		}
		name, value, ok := splitAssignment(fortran.Tokenize(stmt.String()))
		if !ok {
			continue
		}
		report(name, stmt.Line(), r.nakedLiterals(value))
	}

	lint.SortIssues(issues)
	return issues, nil
}

// nakedLiterals counts the checked literals in toks which have no kind.
// Anything inside parentheses opened straight after a name is skipped.
func (r *NakedLiteral) nakedLiterals(toks []token.Token) int {
	count := 0
	var parens []bool
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			parens = append(parens, i > 0 && toks[i-1].Type == token.NAME)
		case token.RPAREN:
			if len(parens) > 0 {
				parens = parens[:len(parens)-1]
			}
		case token.INT, token.REAL:
			if !r.check[tok.Type] || strings.Contains(tok.Literal, "_") || insideCall(parens) {
				continue
			}
			count++
		}
	}
	return count
}

func insideCall(parens []bool) bool {
	for _, call := range parens {
		if call {
			return true
		}
	}
	return false
}

// splitAssignment returns the variable named on the left of the first
// top level "=" and the tokens on its right.
func splitAssignment(toks []token.Token) (string, []token.Token, bool) {
	depth := 0
	name := ""
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.NAME:
			if name == "" {
				name = tok.Literal
			}
		case token.ASSIGN:
			if depth == 0 && name != "" {
				return name, toks[i+1:], true
			}
		}
	}
	return "", nil, false
}
