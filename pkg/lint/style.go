package lint

import (
	"log/slog"

	"github.com/leapstack-labs/stylist/pkg/source"
)

// Style is a named, ordered collection of rules applied together.
type Style struct {
	name        string
	description string
	rules       []Rule
	logger      *slog.Logger
}

// NewStyle creates a style running rules in the order given.
func NewStyle(name string, logger *slog.Logger, rules ...Rule) *Style {
	if logger == nil {
		logger = slog.Default()
	}
	return &Style{name: name, rules: rules, logger: logger}
}

// WithDescription sets the human readable summary of the style.
func (s *Style) WithDescription(description string) *Style {
	s.description = description
	return s
}

// Name returns the style name.
func (s *Style) Name() string { return s.name }

// Description returns the human readable summary of the style.
func (s *Style) Description() string { return s.description }

// Rules returns the rules of the style in order.
func (s *Style) Rules() []Rule { return s.rules }

// ListRules returns the names of the rules in order.
func (s *Style) ListRules() []string {
	names := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		names = append(names, r.Name())
	}
	return names
}

// Check runs every rule against src and concatenates their issues in rule
// order. Only a rule error, meaning a misconfigured rule or a rule handed
// the wrong kind of source, aborts the check. A source which fails to parse
// is not an error: each Fortran rule reports it as an issue and the
// remaining rules still run.
func (s *Style) Check(src source.Source) ([]Issue, error) {
	s.logger.Info("applying style", "style", s.name)
	var issues []Issue
	for _, r := range s.rules {
		found, err := r.Examine(src)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			s.logger.Debug("rule passed", "style", s.name, "rule", r.Name())
		} else {
			s.logger.Debug("rule failed", "style", s.name, "rule", r.Name(), "issues", len(found))
		}
		issues = append(issues, found...)
	}
	return issues, nil
}
