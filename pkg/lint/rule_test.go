package lint_test

import (
	"log/slog"
	"testing"

	"github.com/leapstack-labs/stylist/internal/testutil"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fortranSource(text string) *source.FortranSource {
	return source.NewFortranSource(source.NewStringReader(text))
}

func TestBase_Examine(t *testing.T) {
	logger, logs := testutil.NewCapturingLogger(slog.LevelInfo)
	base := lint.NewBase("TrailingWhitespace", logger)

	issues, err := base.Examine(source.NewPlainText(source.NewStringReader("anything")))
	require.NoError(t, err)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
	assert.Equal(t, "TrailingWhitespace", base.Name())
	assert.Contains(t, logs.String(), "rule=TrailingWhitespace")
}

func TestBase_NilLogger(t *testing.T) {
	base := lint.NewBase("quiet", nil)
	assert.NotNil(t, base.Logger())

	var zero lint.Base
	assert.NotNil(t, zero.Logger())
}

func TestFortranRule_RunsChecker(t *testing.T) {
	checker := &stubChecker{name: "Stub", issues: []lint.Issue{lint.NewIssue("found it", 2)}}
	rule := lint.NewFortranRule(checker, testutil.NewTestLogger(t))

	issues, err := rule.Examine(fortranSource("program p\nend program p\n"))
	require.NoError(t, err)
	assert.Equal(t, "Stub", rule.Name())
	assert.Equal(t, 1, checker.calls)
	require.Len(t, issues, 1)
	assert.Equal(t, "2: found it", issues[0].String())
}

func TestFortranRule_ParseFailure(t *testing.T) {
	checker := &stubChecker{name: "Stub"}
	rule := lint.NewFortranRule(checker, testutil.NewTestLogger(t))

	issues, err := rule.Examine(fortranSource("program p\n  x = 'oops\nend program p\n"))
	require.NoError(t, err)
	assert.Zero(t, checker.calls, "tree logic is skipped for unparsable source")
	require.Len(t, issues, 1)
	assert.Equal(t,
		"Unable to perform Stub as source didn't parse: at line 2: unterminated character literal",
		issues[0].String())
	_, hasLine := issues[0].Line()
	assert.False(t, hasLine)
}

func TestFortranRule_WrongSource(t *testing.T) {
	checker := &stubChecker{name: "Stub"}
	rule := lint.NewFortranRule(checker, testutil.NewTestLogger(t))

	tests := []struct {
		name string
		src  source.Source
	}{
		{name: "plain text", src: source.NewPlainText(source.NewStringReader("x"))},
		{name: "C source", src: source.NewCSource(source.NewStringReader("int x;"))},
		{name: "preprocessed text", src: source.NewFortranPreProcessor(source.NewStringReader("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rule.Examine(tt.src)
			assert.ErrorIs(t, err, lint.ErrWrongSource)
		})
	}
	assert.Zero(t, checker.calls)
}

func TestFortranRule_CheckerError(t *testing.T) {
	rule := lint.NewFortranRule(&stubChecker{name: "Stub", err: errBoom}, testutil.NewTestLogger(t))

	_, err := rule.Examine(fortranSource("program p\nend program p\n"))
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "rule Stub")
}
