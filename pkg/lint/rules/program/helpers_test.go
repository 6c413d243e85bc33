package program_test

import (
	"testing"

	"github.com/leapstack-labs/stylist/internal/testutil"
	"github.com/leapstack-labs/stylist/pkg/lint"
	_ "github.com/leapstack-labs/stylist/pkg/lint/rules/program" // register rules
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/stretchr/testify/require"
)

// runRule builds a registered rule and returns the rendered issues it
// finds in text.
func runRule(t *testing.T, name string, opts map[string]any, text string) []string {
	t.Helper()
	rule, err := lint.NewRule(name, opts, testutil.NewTestLogger(t))
	require.NoError(t, err)

	src := source.NewFortranSource(source.NewStringReader(text))
	require.NoError(t, src.TreeError(), "test source must parse:\n%s", text)

	issues, err := rule.Examine(src)
	require.NoError(t, err)
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.String())
	}
	return out
}
