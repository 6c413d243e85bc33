// Package config loads stylist's command line configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// stylist.yaml project file, STYLIST_ environment variables and finally
// flags set on the command line.
package config

import (
	"github.com/leapstack-labs/stylist/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool              `koanf:"verbose"`
	OutputFormat string            `koanf:"output"`
	Workers      int               `koanf:"workers"`
	FilePipes    map[string]string `koanf:"file_pipes"`

	// Styles are decoded separately: a rule may be written either as a
	// description string or as a {name, options} mapping.
	Styles map[string]lint.StyleConfig `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput  = "auto"
	DefaultWorkers = 0 // one per CPU
	DefaultStyle   = "default"
)

// ConfigFileNames are searched for, in order, when no file is named.
var ConfigFileNames = []string{"stylist.yaml", "stylist.yml"}

// DefaultFilePipes are the pipes added to the built in extension map.
// pFUnit and PSyclone algorithm sources are common enough to be expected.
func DefaultFilePipes() map[string]string {
	return map[string]string{
		"pf":  "fortran:pfp",
		"PF":  "fortran:fpp:pfp",
		"x90": "fortran:fpp",
		"X90": "fortran:fpp",
	}
}

// DefaultStyles is used when the configuration defines no style.
func DefaultStyles() map[string]lint.StyleConfig {
	return map[string]lint.StyleConfig{
		DefaultStyle: {
			Description: "Built in rules with their default options",
			Rules: []lint.RuleConfig{
				{Name: "FortranCharacterset"},
				{Name: "TrailingWhitespace"},
				{Name: "MissingImplicit"},
				{Name: "MissingOnly"},
				{Name: "IntrinsicModule"},
				{Name: "MissingPointerInit"},
				{Name: "MissingIntent"},
				{Name: "LabelledDoExit"},
				{Name: "AutoCharArrayIntent"},
			},
		},
	}
}
