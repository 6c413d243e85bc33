package text

import (
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(TrailingWhitespaceSpec)
}

const trailingWhitespaceName = "TrailingWhitespace"

// TrailingWhitespaceSpec registers TrailingWhitespace.
var TrailingWhitespaceSpec = lint.RuleSpec{
	Name:        trailingWhitespaceName,
	Description: "Lines do not end in white space, including lines which are only white space.",
	Kind:        lint.RuleKindText,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return NewTrailingWhitespace(logger), nil
	},
}

// TrailingWhitespace reports lines ending in white space.
type TrailingWhitespace struct {
	lint.Base
}

// NewTrailingWhitespace creates the rule.
func NewTrailingWhitespace(logger *slog.Logger) *TrailingWhitespace {
	return &TrailingWhitespace{Base: lint.NewBase(trailingWhitespaceName, logger)}
}

func (r *TrailingWhitespace) Examine(src source.Source) ([]lint.Issue, error) {
	issues, err := r.Base.Examine(src)
	if err != nil {
		return nil, err
	}

	for i, line := range source.SplitLines(src.Text()) {
		last, _ := utf8.DecodeLastRuneInString(line)
		if line != "" && unicode.IsSpace(last) {
			issues = append(issues, lint.NewIssue("Found trailing white space", i+1))
		}
	}
	return issues, nil
}
