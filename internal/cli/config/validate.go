package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/stylist/internal/cli/output"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

// Validate checks if the configuration is valid. Every problem found is
// reported.
func (c *Config) Validate() error {
	var errs []error
	if !output.Mode(c.OutputFormat).Valid() {
		errs = append(errs, fmt.Errorf("output: unknown format %q (want one of %v)", c.OutputFormat, output.Modes()))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}

	exts := make([]string, 0, len(c.FilePipes))
	for ext := range c.FilePipes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		if _, err := source.ParsePipe(c.FilePipes[ext]); err != nil {
			errs = append(errs, fmt.Errorf("file_pipes.%s: %w", ext, err))
		}
	}

	for _, name := range lint.StyleNames(c.Styles) {
		for _, rc := range c.Styles[name].Rules {
			spec, ok := lint.LookupRule(rc.Name)
			if !ok {
				errs = append(errs, fmt.Errorf("style %s: %w: %s", name, lint.ErrUnknownRule, rc.Name))
				continue
			}
			if err := lint.ValidateOptions(spec, rc.Options); err != nil {
				errs = append(errs, fmt.Errorf("style %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
