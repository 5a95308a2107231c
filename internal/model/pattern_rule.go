// Package model defines the core data structures for the triptally application.
package model

// PatternRule maps a description pattern to a spend category.
// Rules are read-only at classification time; edits are a configuration
// concern handled outside the matching engine.
type PatternRule struct {
	AmountMin  *float64 `yaml:"amount_min,omitempty"`
	AmountMax  *float64 `yaml:"amount_max,omitempty"`
	Name       string   `yaml:"name"`
	Pattern    string   `yaml:"pattern"`
	Category   Category `yaml:"category"`
	Priority   int      `yaml:"priority"`
	Confidence float64  `yaml:"confidence"`
	IsRegex    bool     `yaml:"regex,omitempty"`
}

// MatchesAmount reports whether the amount satisfies the rule's optional
// amount hint. Rules without a hint match any amount.
func (r *PatternRule) MatchesAmount(amount float64) bool {
	if r.AmountMin != nil && amount < *r.AmountMin {
		return false
	}
	if r.AmountMax != nil && amount > *r.AmountMax {
		return false
	}
	return true
}
