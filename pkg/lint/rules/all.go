package rules

// Import all rule subpackages to register them with the global registry.
import (
	_ "github.com/leapstack-labs/stylist/pkg/lint/rules/program"
	_ "github.com/leapstack-labs/stylist/pkg/lint/rules/text"
)
