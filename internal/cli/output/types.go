package output

import "github.com/leapstack-labs/stylist/pkg/lint"

// CheckOutput is the JSON form of a check run.
type CheckOutput struct {
	Files  int          `json:"files"`
	Count  int          `json:"count"`
	Issues []lint.Issue `json:"issues"`
}

// RuleOutput is the JSON form of a registered rule.
type RuleOutput struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"`
}
