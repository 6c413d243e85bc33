package lint_test

import (
	"log/slog"
	"testing"

	"github.com/leapstack-labs/stylist/internal/testutil"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sizedRule exposes the options it was built with.
type sizedRule struct {
	*recordingRule
	length int
	strict bool
}

func init() {
	lint.Register(lint.RuleSpec{
		Name:        "TestSized",
		Description: "Test rule taking options",
		Kind:        lint.RuleKindText,
		ConfigKeys:  []string{"length", "strict"},
		New: func(opts map[string]any, logger *slog.Logger) (lint.Rule, error) {
			return &sizedRule{
				recordingRule: newRecordingRule("TestSized", logger),
				length:        lint.GetIntOption(opts, "length", 79),
				strict:        lint.GetBoolOption(opts, "strict", false),
			}, nil
		},
	})
	lint.Register(lint.RuleSpec{
		Name:        "TestPlain",
		Description: "Test rule without options",
		Kind:        lint.RuleKindText,
		New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
			return newRecordingRule("TestPlain", logger), nil
		},
	})
}

func TestRegistry_Lookup(t *testing.T) {
	spec, ok := lint.LookupRule("TestSized")
	require.True(t, ok)
	assert.Equal(t, []string{"length", "strict"}, spec.ConfigKeys)

	_, ok = lint.LookupRule("NoSuchRule")
	assert.False(t, ok)

	assert.Contains(t, lint.RuleNames(), "TestPlain")
	assert.GreaterOrEqual(t, lint.Count(), 2)

	names := lint.RuleNames()
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i], "rules are sorted by name")
	}
}

func TestNewRule(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	rule, err := lint.NewRule("TestSized", map[string]any{"length": 40}, logger)
	require.NoError(t, err)
	sized, ok := rule.(*sizedRule)
	require.True(t, ok)
	assert.Equal(t, 40, sized.length)

	_, err = lint.NewRule("NoSuchRule", nil, logger)
	assert.ErrorIs(t, err, lint.ErrUnknownRule)

	_, err = lint.NewRule("TestPlain", map[string]any{"length": 1}, logger)
	assert.ErrorIs(t, err, lint.ErrUnknownOption)
}

func TestParseRuleDescription(t *testing.T) {
	tests := []struct {
		desc    string
		want    lint.RuleConfig
		wantErr bool
	}{
		{desc: "TestPlain", want: lint.RuleConfig{Name: "TestPlain"}},
		{desc: "  TestPlain() ", want: lint.RuleConfig{Name: "TestPlain"}},
		{
			desc: "TestSized(40, True)",
			want: lint.RuleConfig{Name: "TestSized", Options: map[string]any{"length": "40", "strict": "True"}},
		},
		{desc: "TestSized(40", wantErr: true},
		{desc: "TestSized(1, 2, 3)", wantErr: true},
		{desc: "NoSuchRule(1)", wantErr: true},
		{desc: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := lint.ParseRuleDescription(tt.desc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRuleDescription_PositionalOptions(t *testing.T) {
	cfg, err := lint.ParseRuleDescription("TestSized(40, True)")
	require.NoError(t, err)

	rule, err := lint.NewRule(cfg.Name, cfg.Options, testutil.NewTestLogger(t))
	require.NoError(t, err)
	sized := rule.(*sizedRule)
	assert.Equal(t, 40, sized.length)
	assert.True(t, sized.strict)
}

func TestBuildStyle(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	style, err := lint.BuildStyle("house", lint.StyleConfig{
		Description: "House style",
		Rules:       []lint.RuleConfig{{Name: "TestPlain"}, {Name: "TestSized", Options: map[string]any{"strict": true}}},
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"TestPlain", "TestSized"}, style.ListRules())
	assert.Equal(t, "House style", style.Description())

	_, err = lint.BuildStyle("broken", lint.StyleConfig{Rules: []lint.RuleConfig{{Name: "NoSuchRule"}}}, logger)
	require.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Contains(t, err.Error(), "style broken")
}

func TestSelectStyle(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	one := map[string]lint.StyleConfig{"only": {Rules: []lint.RuleConfig{{Name: "TestPlain"}}}}
	two := map[string]lint.StyleConfig{
		"first":  {Rules: []lint.RuleConfig{{Name: "TestPlain"}}},
		"second": {},
	}

	style, err := lint.SelectStyle(one, "", logger)
	require.NoError(t, err)
	assert.Equal(t, "only", style.Name())

	_, err = lint.SelectStyle(two, "", logger)
	require.ErrorIs(t, err, lint.ErrAmbiguousStyle)
	assert.Contains(t, err.Error(), "containing 2 styles")

	style, err = lint.SelectStyle(two, "second", logger)
	require.NoError(t, err)
	assert.Empty(t, style.ListRules())

	_, err = lint.SelectStyle(two, "third", logger)
	require.ErrorIs(t, err, lint.ErrUnknownStyle)
	assert.Contains(t, err.Error(), "first, second")

	assert.Equal(t, []string{"first", "second"}, lint.StyleNames(two))
}
