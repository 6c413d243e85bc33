package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/stylist/internal/testutil"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stylist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultFilePipes(), cfg.FilePipes)
	assert.Equal(t, []string{DefaultStyle}, lint.StyleNames(cfg.Styles))
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
output: json
workers: 3
file_pipes:
  inc: fortran:fpp
styles:
  simple:
    description: Whitespace only
    rules:
      - TrailingWhitespace
      - LimitLineLength(100, true)
  structured:
    rules:
      - name: MissingOnly
        options:
          ignore: [iso_fortran_env]
  short: FortranCharacterset, LimitLineLength(80)
`)
	ResetConfig()

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "fortran:fpp", cfg.FilePipes["inc"])
	assert.Equal(t, "fortran:pfp", cfg.FilePipes["pf"], "defaults are kept")

	require.Equal(t, []string{"short", "simple", "structured"}, lint.StyleNames(cfg.Styles))

	simple := cfg.Styles["simple"]
	assert.Equal(t, "Whitespace only", simple.Description)
	assert.Equal(t, []lint.RuleConfig{
		{Name: "TrailingWhitespace"},
		{Name: "LimitLineLength", Options: map[string]any{"length": "100", "ignore_leading_whitespace": "true"}},
	}, simple.Rules)

	structured := cfg.Styles["structured"]
	require.Len(t, structured.Rules, 1)
	assert.Equal(t, "MissingOnly", structured.Rules[0].Name)
	assert.Equal(t, []any{"iso_fortran_env"}, structured.Rules[0].Options["ignore"])

	short := cfg.Styles["short"]
	assert.Equal(t, []lint.RuleConfig{
		{Name: "FortranCharacterset"},
		{Name: "LimitLineLength", Options: map[string]any{"length": "80"}},
	}, short.Rules)
}

func TestLoadConfig_SearchesParents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stylist.yml"), []byte("workers: 2\n"), 0o600))
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "stylist.yml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "output: json\nworkers: 3\n")
	t.Setenv("STYLIST_WORKERS", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	flags.Int("workers", 0, "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "text"}))

	ResetConfig()
	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat, "flag beats file")
	assert.Equal(t, 5, cfg.Workers, "env beats file")
	assert.False(t, cfg.Verbose, "unset flags do not override")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		errSubstr string
	}{
		{
			name:      "unknown rule",
			body:      "styles:\n  s:\n    rules: [NoSuchRule]\n",
			errSubstr: "NoSuchRule",
		},
		{
			name:      "unknown option",
			body:      "styles:\n  s:\n    rules:\n      - name: MissingOnly\n        options: {colour: red}\n",
			errSubstr: "colour",
		},
		{
			name:      "too many arguments",
			body:      "styles:\n  s: LimitLineLength(1, true, 3)\n",
			errSubstr: "at most 2 arguments",
		},
		{
			name:      "bad pipe",
			body:      "file_pipes:\n  inc: cobol\n",
			errSubstr: "file_pipes.inc",
		},
		{
			name:      "bad output",
			body:      "output: markdown\n",
			errSubstr: "unknown format",
		},
		{
			name:      "negative workers",
			body:      "workers: -1\n",
			errSubstr: "must not be negative",
		},
		{
			name:      "misspelt style key",
			body:      "styles:\n  s:\n    rule: [TrailingWhitespace]\n",
			errSubstr: "invalid keys: rule",
		},
		{
			name:      "rule without name",
			body:      "styles:\n  s:\n    rules:\n      - options: {length: 3}\n",
			errSubstr: "without a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, tt.body), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestSplitRules(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "A", want: []string{"A"}},
		{in: "A, B", want: []string{"A", "B"}},
		{in: "A(1, 2), B ,C(x)", want: []string{"A(1, 2)", "B", "C(x)"}},
		{in: " , A,, ", want: []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRules(tt.in))
		})
	}
}

func TestConfig_Factory(t *testing.T) {
	cfg := Default()
	cfg.FilePipes["inc"] = "fortran:fpp"

	factory, err := cfg.Factory("foo:text", ".BAR:fortran")
	require.NoError(t, err)

	for _, ext := range []string{"f90", "F90", "pf", "PF", "x90", "inc", "foo", "BAR"} {
		_, ok := factory.Pipe(ext)
		assert.True(t, ok, ext)
	}
	pipe, _ := factory.Pipe("PF")
	assert.Equal(t, "fortran:fpp:pfp", pipe.String())

	_, err = cfg.Factory("nocolon")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf testutil.LogBuffer
	quiet := NewLogger(&buf, false)
	quiet.Info("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	loud := NewLogger(&buf, true)
	loud.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(t.Context()))

	logger := NewLogger(&testutil.LogBuffer{}, true)
	assert.Same(t, logger, GetLogger(WithLogger(t.Context(), logger)))
}
