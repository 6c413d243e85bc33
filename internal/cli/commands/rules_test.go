package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_ListAll(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	for _, name := range []string{"FortranCharacterset", "LimitLineLength", "MissingImplicit", "LabelledDoExit"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "length, ignore_leading_whitespace")
}

func TestRulesCommand_FilterByKind(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "--kind", lint.RuleKindFortran, "--format", "json")
	require.NoError(t, err)

	var rules []output.RuleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.Equal(t, lint.RuleKindFortran, r.Kind, r.Name)
	}

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, "MissingOnly")
	assert.NotContains(t, names, "TrailingWhitespace")
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "MissingOnly")
	require.NoError(t, err)
	assert.Contains(t, out, "MissingOnly")
	assert.Contains(t, out, "Options: ignore")

	out, _, err = execute(t, NewRulesCommand(), "--format", "json", "LimitLineLength")
	require.NoError(t, err)
	var rule output.RuleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rule))
	assert.Equal(t, []string{"length", "ignore_leading_whitespace"}, rule.Options)
}

func TestRulesCommand_UnknownRule(t *testing.T) {
	_, _, err := execute(t, NewRulesCommand(), "NoSuchRule")
	require.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Contains(t, err.Error(), "MissingImplicit")
}

func TestStylesCommand(t *testing.T) {
	out, _, err := execute(t, NewStylesCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "MissingPointerInit")

	out, _, err = execute(t, NewStylesCommand(), "--format", "json")
	require.NoError(t, err)
	var styles []styleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &styles))
	require.Len(t, styles, 1)
	assert.Equal(t, "default", styles[0].Name)
	assert.Equal(t, "FortranCharacterset", styles[0].Rules[0])
}
