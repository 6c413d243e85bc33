package lint

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/stylist/pkg/source"
)

// ErrWrongSource is returned when a rule is handed a source of a language
// it cannot examine.
var ErrWrongSource = errors.New("wrong kind of source for rule")

// Rule examines a source and reports the issues it finds.
//
// An issue is a finding about the code. An error means the check itself
// could not be carried out and aborts the run.
type Rule interface {
	Name() string
	Examine(src source.Source) ([]Issue, error)
}

// Base carries the name and logger every rule needs. Concrete rules embed
// it and call Examine first.
type Base struct {
	name   string
	logger *slog.Logger
}

// NewBase creates the shared part of a rule. A nil logger falls back to
// slog.Default().
func NewBase(name string, logger *slog.Logger) Base {
	if logger == nil {
		logger = slog.Default()
	}
	return Base{name: name, logger: logger}
}

// Name returns the rule name.
func (b Base) Name() string { return b.name }

// Logger returns the logger the rule reports progress to.
func (b Base) Logger() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// Examine logs that the rule is running and reports nothing.
func (b Base) Examine(_ source.Source) ([]Issue, error) {
	b.Logger().Info("examining", "rule", b.name)
	return []Issue{}, nil
}

// FortranChecker holds the tree logic of a Fortran rule. It is only ever
// handed a source which parsed.
type FortranChecker interface {
	Name() string
	ExamineFortran(src *source.FortranSource) ([]Issue, error)
}

type fortranRule struct {
	Base
	checker FortranChecker
}

// NewFortranRule adapts a checker into a Rule. The rule rejects sources
// which are not Fortran and turns a parse failure into a single issue
// without consulting the checker.
func NewFortranRule(checker FortranChecker, logger *slog.Logger) Rule {
	return &fortranRule{Base: NewBase(checker.Name(), logger), checker: checker}
}

// Checker returns the wrapped tree logic.
func (r *fortranRule) Checker() FortranChecker { return r.checker }

func (r *fortranRule) Examine(src source.Source) ([]Issue, error) {
	issues, err := r.Base.Examine(src)
	if err != nil {
		return nil, err
	}

	fortran, ok := src.(*source.FortranSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s passed to Fortran rule %s", ErrWrongSource, src.Name(), r.Name())
	}

	if treeErr := fortran.TreeError(); treeErr != nil {
		description := fmt.Sprintf("Unable to perform %s as source didn't parse: %s", r.Name(), treeErr)
		return append(issues, NewIssue(description, 0)), nil
	}

	found, err := r.checker.ExamineFortran(fortran)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
	}
	return append(issues, found...), nil
}
