package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/stylist/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"check", "rules", "styles", "tree", "init", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_ConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "stylist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`styles:
  spaces:
    rules:
      - TrailingWhitespace
`), 0o644))
	src := filepath.Join(dir, "a.f90")
	require.NoError(t, os.WriteFile(src, []byte("program a \n  implicit none\nend program a\n"), 0o644))

	out, errOut, err := run(t, "--config", cfgPath, "-v", "check", "--style", "spaces", src)
	require.Error(t, err)
	assert.Contains(t, errOut, src+": 1: Found trailing white space")
	assert.Contains(t, errOut, "using config file")
	assert.Contains(t, out, "Found 1 issue\n")

	_, _, err = run(t, "--config", cfgPath, "check", "--style", "default", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestRootCmd_InvalidOutputFlag(t *testing.T) {
	_, _, err := run(t, "--output", "markdown", "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markdown")
}

func TestRootCmd_Completion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}
