package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/stylist/pkg/lint"
	_ "github.com/leapstack-labs/stylist/pkg/lint/rules" // rule arguments need registered rules
)

// decodeStyles converts the raw "styles" tree into style configurations.
// A style is either a mapping with "description" and "rules" or a bare
// rule list. Rules may be given as a list or as one comma separated
// string, and each rule as "Name(arg, ...)" or as {name, options}.
func decodeStyles(raw any) (map[string]lint.StyleConfig, error) {
	if raw == nil {
		return nil, nil
	}
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("styles: expected a mapping of style names, got %T", raw)
	}

	styles := make(map[string]lint.StyleConfig, len(tree))
	for name, value := range tree {
		cfg, err := decodeStyle(value)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		styles[name] = cfg
	}
	return styles, nil
}

func decodeStyle(value any) (lint.StyleConfig, error) {
	if _, ok := value.(map[string]any); !ok {
		value = map[string]any{"rules": value}
	}

	var cfg lint.StyleConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "koanf",
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(ruleListHook, ruleHook),
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(value); err != nil {
		return cfg, err
	}
	for _, rc := range cfg.Rules {
		if strings.TrimSpace(rc.Name) == "" {
			return cfg, fmt.Errorf("rule entry without a name: %v", rc.Options)
		}
	}
	return cfg, nil
}

var (
	ruleConfigType = reflect.TypeOf(lint.RuleConfig{})
	ruleListType   = reflect.TypeOf([]lint.RuleConfig(nil))
)

// ruleListHook splits a rule list written as one string.
func ruleListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || to != ruleListType {
		return data, nil
	}
	items := []any{}
	for _, desc := range splitRules(s) {
		items = append(items, desc)
	}
	return items, nil
}

// ruleHook expands a "Name(arg, ...)" rule description.
func ruleHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || to != ruleConfigType {
		return data, nil
	}
	rc, err := lint.ParseRuleDescription(s)
	if err != nil {
		return nil, err
	}
	out := map[string]any{"name": rc.Name}
	if rc.Options != nil {
		out["options"] = rc.Options
	}
	return out, nil
}

// splitRules splits a rule list on the commas outside parentheses.
func splitRules(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = appendRule(out, s[start:i])
				start = i + 1
			}
		}
	}
	return appendRule(out, s[start:])
}

func appendRule(out []string, desc string) []string {
	if desc = strings.TrimSpace(desc); desc != "" {
		out = append(out, desc)
	}
	return out
}
