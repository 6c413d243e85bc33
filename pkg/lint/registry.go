package lint

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRule is returned when a rule name is not registered.
var ErrUnknownRule = errors.New("unrecognised rule")

// Kinds of source a rule examines.
const (
	RuleKindText    = "text"
	RuleKindFortran = "fortran"
)

// RuleSpec describes a rule for discovery and builds instances of it.
type RuleSpec struct {
	Name        string   // Unique identifier used in configuration, e.g. "MissingImplicit"
	Description string   // One line summary
	Kind        string   // RuleKindText or RuleKindFortran
	ConfigKeys  []string // Options the rule accepts, in positional order

	// New builds a rule from its options. Options have been validated
	// against ConfigKeys.
	New func(opts map[string]any, logger *slog.Logger) (Rule, error)
}

// globalRegistry holds every rule registered at init time.
var globalRegistry = &Registry{
	rules: make(map[string]RuleSpec),
}

// Registry stores registered rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleSpec // keyed by name
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(spec RuleSpec) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[spec.Name] = spec
}

// LookupRule returns a rule by its name.
func LookupRule(name string) (RuleSpec, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	spec, ok := globalRegistry.rules[name]
	return spec, ok
}

// AllRules returns every registered rule sorted by name.
func AllRules() []RuleSpec {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	specs := make([]RuleSpec, 0, len(globalRegistry.rules))
	for _, spec := range globalRegistry.rules {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// RuleNames returns the names of every registered rule, sorted.
func RuleNames() []string {
	specs := AllRules()
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	return names
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// NewRule builds a registered rule with the given options.
func NewRule(name string, opts map[string]any, logger *slog.Logger) (Rule, error) {
	spec, ok := LookupRule(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s (known rules: %s)", ErrUnknownRule, name, strings.Join(RuleNames(), ", "))
	}
	if err := ValidateOptions(spec, opts); err != nil {
		return nil, err
	}
	return spec.New(opts, logger)
}
