package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/stylist/internal/cli/config"
	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# stylist configuration
#
# Styles list their rules in the order they are applied. A rule is either
# "Name", "Name(arg, ...)" with arguments given in the order of the rule's
# options, or a mapping with "name" and "options". See "stylist rules".
`

// configFile is the layout written by init.
type configFile struct {
	Output    string                      `yaml:"output"`
	Workers   int                         `yaml:"workers"`
	FilePipes map[string]string           `yaml:"file_pipes"`
	Styles    map[string]lint.StyleConfig `yaml:"styles"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter configuration file",
		Long: `Write a stylist.yaml holding the default settings and the built in
default style, ready to be edited.`,
		Example: `  # Initialize in current directory
  stylist init

  # Force overwrite existing config
  stylist init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, "").Renderer
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	body, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	r.Success("Created " + path)
	return nil
}

func defaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(configFile{
		Output:    config.DefaultOutput,
		Workers:   config.DefaultWorkers,
		FilePipes: config.DefaultFilePipes(),
		Styles:    config.DefaultStyles(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
