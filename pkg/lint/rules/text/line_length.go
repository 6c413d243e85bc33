package text

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(LineLengthSpec)
}

// DefaultLineLength is the longest line LimitLineLength allows by default.
const DefaultLineLength = 79

const lineLengthName = "LimitLineLength"

// LineLengthSpec registers LimitLineLength.
var LineLengthSpec = lint.RuleSpec{
	Name:        lineLengthName,
	Description: "Lines are no longer than a maximum number of characters.",
	Kind:        lint.RuleKindText,
	ConfigKeys:  []string{"length", "ignore_leading_whitespace"},
	New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
		length := lint.GetIntOption(opts, "length", DefaultLineLength)
		if length <= 0 {
			return nil, fmt.Errorf("LimitLineLength: length must be positive, got %d", length)
		}
		return NewLineLength(length, lint.GetBoolOption(opts, "ignore_leading_whitespace", false), logger), nil
	},
}

// LineLength reports lines longer than a limit, counted in characters.
type LineLength struct {
	lint.Base
	length        int
	ignoreLeading bool
}

// NewLineLength creates the rule. With ignoreLeading set, indentation does
// not count towards the length.
func NewLineLength(length int, ignoreLeading bool, logger *slog.Logger) *LineLength {
	return &LineLength{
		Base:          lint.NewBase(lineLengthName, logger),
		length:        length,
		ignoreLeading: ignoreLeading,
	}
}

func (r *LineLength) Examine(src source.Source) ([]lint.Issue, error) {
	issues, err := r.Base.Examine(src)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Line exceeds %d characters", r.length)
	if r.ignoreLeading {
		description += " after leading whitespace"
	}

	for i, line := range source.SplitLines(src.Text()) {
		if r.ignoreLeading {
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
		}
		if utf8.RuneCountInString(line) > r.length {
			issues = append(issues, lint.NewIssue(description, i+1))
		}
	}
	return issues, nil
}
