package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/stylist/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args against the default configuration and
// returns what it wrote to its output and error streams.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCommandsConstruct(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewCheckCommand(), use: "check FILE|DIR...", flags: []string{"style", "map-extension", "format", "watch"}},
		{cmd: NewRulesCommand(), use: "rules [rule-name]", flags: []string{"kind", "format"}},
		{cmd: NewStylesCommand(), use: "styles", flags: []string{"format"}},
		{cmd: NewTreeCommand(), use: "tree FILE", flags: []string{"map-extension"}},
		{cmd: NewInitCommand(), use: "init [directory]", flags: []string{"force"}},
		{cmd: NewVersionCommand("1.2.3"), use: "version"},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "stylist v1.2.3")
}

func TestGetConfig_FallsBackToDefaults(t *testing.T) {
	config.ResetConfig()
	cfg := getConfig()
	assert.Equal(t, config.DefaultOutput, cfg.OutputFormat)
	assert.Contains(t, cfg.Styles, config.DefaultStyle)
}
