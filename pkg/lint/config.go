package lint

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ErrUnknownStyle is returned when a style name is not configured.
var ErrUnknownStyle = errors.New("style not found in configuration")

// ErrAmbiguousStyle is returned when no style is named and the
// configuration does not hold exactly one.
var ErrAmbiguousStyle = errors.New("cannot pick a default style")

// RuleConfig selects a rule and its options within a style.
type RuleConfig struct {
	Name    string         `koanf:"name" yaml:"name"`
	Options map[string]any `koanf:"options" yaml:"options,omitempty"`
}

// StyleConfig describes a style: a summary and its rules in order.
type StyleConfig struct {
	Description string       `koanf:"description" yaml:"description,omitempty"`
	Rules       []RuleConfig `koanf:"rules" yaml:"rules"`
}

// ParseRuleDescription parses the short form "Name" or "Name(arg, ...)".
// Positional arguments are assigned to the rule's ConfigKeys in order.
func ParseRuleDescription(desc string) (RuleConfig, error) {
	desc = strings.TrimSpace(desc)
	name, args, hasArgs := strings.Cut(desc, "(")
	name = strings.TrimSpace(name)
	if name == "" {
		return RuleConfig{}, fmt.Errorf("%w: empty rule description", ErrUnknownRule)
	}
	cfg := RuleConfig{Name: name}
	if !hasArgs {
		return cfg, nil
	}

	args, closed := strings.CutSuffix(strings.TrimSpace(args), ")")
	if !closed {
		return RuleConfig{}, fmt.Errorf("rule description %q: missing closing parenthesis", desc)
	}
	if strings.TrimSpace(args) == "" {
		return cfg, nil
	}

	spec, ok := LookupRule(name)
	if !ok {
		return RuleConfig{}, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	values := strings.Split(args, ",")
	if len(values) > len(spec.ConfigKeys) {
		return RuleConfig{}, fmt.Errorf("rule %s takes at most %d arguments, got %d",
			name, len(spec.ConfigKeys), len(values))
	}
	cfg.Options = make(map[string]any, len(values))
	for i, v := range values {
		cfg.Options[spec.ConfigKeys[i]] = strings.TrimSpace(v)
	}
	return cfg, nil
}

// BuildStyle creates a style from its configuration. Unknown rules and
// options are errors.
func BuildStyle(name string, cfg StyleConfig, logger *slog.Logger) (*Style, error) {
	rules := make([]Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		rule, err := NewRule(rc.Name, rc.Options, logger)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		rules = append(rules, rule)
	}
	return NewStyle(name, logger, rules...).WithDescription(cfg.Description), nil
}

// SelectStyle builds the named style. An empty name picks the only style
// configured.
func SelectStyle(styles map[string]StyleConfig, name string, logger *slog.Logger) (*Style, error) {
	if name == "" {
		if len(styles) != 1 {
			return nil, fmt.Errorf("%w from configuration containing %d styles", ErrAmbiguousStyle, len(styles))
		}
		for only := range styles {
			name = only
		}
	}
	cfg, ok := styles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownStyle, name, strings.Join(StyleNames(styles), ", "))
	}
	return BuildStyle(name, cfg, logger)
}

// StyleNames returns the configured style names, sorted.
func StyleNames(styles map[string]StyleConfig) []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
