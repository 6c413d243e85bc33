package lint_test

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

// recordingRule returns fixed issues and remembers the text it was shown.
type recordingRule struct {
	lint.Base
	issues []lint.Issue
	err    error

	mu   sync.Mutex
	seen []string
}

func newRecordingRule(name string, logger *slog.Logger, issues ...lint.Issue) *recordingRule {
	return &recordingRule{Base: lint.NewBase(name, logger), issues: issues}
}

func (r *recordingRule) Examine(src source.Source) ([]lint.Issue, error) {
	found, err := r.Base.Examine(src)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.seen = append(r.seen, src.Text())
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append(found, r.issues...), nil
}

func (r *recordingRule) Seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

// stubChecker is tree logic which counts its invocations.
type stubChecker struct {
	name   string
	calls  int
	issues []lint.Issue
	err    error
}

func (c *stubChecker) Name() string { return c.name }

func (c *stubChecker) ExamineFortran(_ *source.FortranSource) ([]lint.Issue, error) {
	c.calls++
	return c.issues, c.err
}

var errBoom = errors.New("boom")
