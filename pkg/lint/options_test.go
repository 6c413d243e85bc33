package lint_test

import (
	"testing"

	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/stretchr/testify/assert"
)

func TestGetIntOption(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want int
	}{
		{name: "nil options", opts: nil, want: 79},
		{name: "missing key", opts: map[string]any{}, want: 79},
		{name: "int", opts: map[string]any{"length": 40}, want: 40},
		{name: "float from JSON", opts: map[string]any{"length": 40.0}, want: 40},
		{name: "int64", opts: map[string]any{"length": int64(40)}, want: 40},
		{name: "numeric string", opts: map[string]any{"length": " 40 "}, want: 40},
		{name: "bad string", opts: map[string]any{"length": "forty"}, want: 79},
		{name: "wrong type", opts: map[string]any{"length": true}, want: 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.GetIntOption(tt.opts, "length", 79))
		})
	}
}

func TestGetBoolOption(t *testing.T) {
	assert.True(t, lint.GetBoolOption(map[string]any{"on": true}, "on", false))
	assert.True(t, lint.GetBoolOption(map[string]any{"on": "True"}, "on", false))
	assert.False(t, lint.GetBoolOption(map[string]any{"on": "nope"}, "on", false))
	assert.True(t, lint.GetBoolOption(nil, "on", true))
}

func TestGetStringSliceOption(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want []string
	}{
		{name: "default", opts: nil, want: []string{"x"}},
		{name: "string slice", opts: map[string]any{"ignore": []string{"a", "b"}}, want: []string{"a", "b"}},
		{name: "any slice from YAML", opts: map[string]any{"ignore": []any{"a", 1, "b"}}, want: []string{"a", "b"}},
		{name: "comma string", opts: map[string]any{"ignore": "a, b,,c"}, want: []string{"a", "b", "c"}},
		{name: "wrong type", opts: map[string]any{"ignore": 5}, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.GetStringSliceOption(tt.opts, "ignore", []string{"x"}))
		})
	}
}

func TestGetOptionGeneric(t *testing.T) {
	opts := map[string]any{"name": "value", "count": 3}
	assert.Equal(t, "value", lint.GetOption(opts, "name", ""))
	assert.Equal(t, "fallback", lint.GetOption(opts, "count", "fallback"))
	assert.Equal(t, "value", lint.GetStringOption(opts, "name", ""))
	assert.Equal(t, "fallback", lint.GetStringOption(opts, "count", "fallback"))
}

func TestValidateOptions(t *testing.T) {
	spec := lint.RuleSpec{Name: "Sized", ConfigKeys: []string{"length"}}
	assert.NoError(t, lint.ValidateOptions(spec, nil))
	assert.NoError(t, lint.ValidateOptions(spec, map[string]any{"length": 1}))
	assert.ErrorIs(t, lint.ValidateOptions(spec, map[string]any{"width": 1}), lint.ErrUnknownOption)
}
