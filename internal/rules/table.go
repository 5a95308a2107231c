// Package rules provides the vendor pattern table used for categorization.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

// Table is a priority-ordered, read-only set of pattern rules. Rules are
// evaluated in descending priority order; within a priority, registration
// order is preserved so matching stays deterministic.
type Table struct {
	compiled map[int]*regexp.Regexp
	rules    []model.PatternRule
}

// NewTable validates and compiles a rule set. An empty or malformed table is
// a fatal configuration error: the categorizer cannot run without rules.
func NewTable(ruleList []model.PatternRule) (*Table, error) {
	if len(ruleList) == 0 {
		return nil, common.ErrEmptyRuleTable
	}

	t := &Table{
		rules:    make([]model.PatternRule, len(ruleList)),
		compiled: make(map[int]*regexp.Regexp),
	}
	copy(t.rules, ruleList)

	// Stable sort keeps registration order within equal priorities
	sort.SliceStable(t.rules, func(i, j int) bool {
		return t.rules[i].Priority > t.rules[j].Priority
	})

	for i := range t.rules {
		rule := &t.rules[i]
		if rule.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %q has no pattern", common.ErrInvalidRule, rule.Name)
		}
		if !rule.Category.IsValid() {
			return nil, fmt.Errorf("%w: rule %q has invalid category %q", common.ErrInvalidRule, rule.Name, rule.Category)
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			return nil, fmt.Errorf("%w: rule %q confidence %.2f out of range", common.ErrInvalidRule, rule.Name, rule.Confidence)
		}

		if rule.IsRegex {
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %v", common.ErrInvalidRule, rule.Name, err)
			}
			t.compiled[i] = re
		} else {
			// Substring patterns are matched against normalized text. A
			// pattern that normalizes to nothing would match every
			// description, so reject it outright.
			rule.Pattern = Normalize(rule.Pattern)
			if rule.Pattern == "" {
				return nil, fmt.Errorf("%w: rule %q pattern has no matchable text", common.ErrInvalidRule, rule.Name)
			}
		}
	}

	return t, nil
}

// Match evaluates a normalized description against the table and returns the
// winning rule. The first match in priority order wins; when several rules
// match at the same priority, the amount hint breaks the tie, but it never
// overrides a match at a higher priority.
func (t *Table) Match(normalized string, amount float64) (model.PatternRule, bool) {
	first := -1

	for i := range t.rules {
		if first >= 0 && t.rules[i].Priority != t.rules[first].Priority {
			break
		}
		if !t.matches(i, normalized) {
			continue
		}
		if t.rules[i].MatchesAmount(amount) {
			return t.rules[i], true
		}
		if first < 0 {
			first = i
		}
	}

	if first >= 0 {
		return t.rules[first], true
	}
	return model.PatternRule{}, false
}

func (t *Table) matches(i int, normalized string) bool {
	if re, ok := t.compiled[i]; ok {
		return re.MatchString(normalized)
	}
	return strings.Contains(normalized, t.rules[i].Pattern)
}

// Rules returns the table contents in evaluation order.
func (t *Table) Rules() []model.PatternRule {
	out := make([]model.PatternRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

var punctuation = regexp.MustCompile(`[^A-Z0-9 ]+`)

// Normalize case-folds a description, strips punctuation noise, and
// collapses whitespace runs so patterns match on clean text.
func Normalize(description string) string {
	s := strings.ToUpper(description)
	s = punctuation.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
