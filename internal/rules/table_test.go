package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase folds up", input: "united airlines", want: "UNITED AIRLINES"},
		{name: "punctuation stripped", input: "MCDONALD'S #4521", want: "MCDONALD S 4521"},
		{name: "whitespace collapses", input: "  UBER   *TRIP  ", want: "UBER TRIP"},
		{name: "empty stays empty", input: "", want: ""},
		{name: "only punctuation", input: "***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		rules   []model.PatternRule
	}{
		{
			name:    "empty table",
			rules:   nil,
			wantErr: common.ErrEmptyRuleTable,
		},
		{
			name: "missing pattern",
			rules: []model.PatternRule{
				{Name: "broken", Category: model.CategoryMeals, Confidence: 0.5},
			},
			wantErr: common.ErrInvalidRule,
		},
		{
			name: "invalid category",
			rules: []model.PatternRule{
				{Name: "broken", Pattern: "X", Category: "SNACKS", Confidence: 0.5},
			},
			wantErr: common.ErrInvalidRule,
		},
		{
			name: "confidence out of range",
			rules: []model.PatternRule{
				{Name: "broken", Pattern: "X", Category: model.CategoryMeals, Confidence: 1.5},
			},
			wantErr: common.ErrInvalidRule,
		},
		{
			name: "punctuation-only substring pattern",
			rules: []model.PatternRule{
				{Name: "broken", Pattern: "!!!", Category: model.CategoryMeals, Confidence: 0.5},
			},
			wantErr: common.ErrInvalidRule,
		},
		{
			name: "bad regex",
			rules: []model.PatternRule{
				{Name: "broken", Pattern: "[", Category: model.CategoryMeals, Confidence: 0.5, IsRegex: true},
			},
			wantErr: common.ErrInvalidRule,
		},
		{
			name: "valid table",
			rules: []model.PatternRule{
				{Name: "ok", Pattern: "X", Category: model.CategoryMeals, Confidence: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.rules)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTable_Match_PriorityOrder(t *testing.T) {
	table, err := NewTable([]model.PatternRule{
		{Name: "broad hotel", Pattern: "HOTEL", Category: model.CategoryHotel, Priority: 10, Confidence: 0.5},
		{Name: "exact vendor", Pattern: "HILTON", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95},
	})
	require.NoError(t, err)

	rule, ok := table.Match("HILTON HOTEL CHICAGO IL", 200)
	require.True(t, ok)
	assert.Equal(t, "exact vendor", rule.Name)
	assert.Equal(t, 0.95, rule.Confidence)
}

func TestTable_Match_StableWithinPriority(t *testing.T) {
	table, err := NewTable([]model.PatternRule{
		{Name: "first", Pattern: "ACME", Category: model.CategoryMeals, Priority: 50, Confidence: 0.6},
		{Name: "second", Pattern: "ACME", Category: model.CategoryTransport, Priority: 50, Confidence: 0.6},
	})
	require.NoError(t, err)

	// Registration order breaks the tie
	rule, ok := table.Match("ACME CO", 10)
	require.True(t, ok)
	assert.Equal(t, "first", rule.Name)
}

func TestTable_Match_AmountHint(t *testing.T) {
	table, err := NewTable([]model.PatternRule{
		{Name: "room", Pattern: "MARRIOTT", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95, AmountMin: floatPtr(75)},
		{Name: "incidental", Pattern: "MARRIOTT", Category: model.CategoryMeals, Priority: 100, Confidence: 0.9, AmountMax: floatPtr(75)},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		wantRule string
		amount   float64
	}{
		{name: "large charge is the room", amount: 450, wantRule: "room"},
		{name: "small charge is an incidental", amount: 22.50, wantRule: "incidental"},
		{name: "boundary goes to the room rule", amount: 75, wantRule: "room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := table.Match("MARRIOTT DOWNTOWN", tt.amount)
			require.True(t, ok)
			assert.Equal(t, tt.wantRule, rule.Name)
		})
	}
}

func TestTable_Match_AmountHintNeverOutranksPriority(t *testing.T) {
	table, err := NewTable([]model.PatternRule{
		{Name: "exact", Pattern: "MARRIOTT", Category: model.CategoryHotel, Priority: 100, Confidence: 0.95, AmountMin: floatPtr(500)},
		{Name: "broad", Pattern: "MARRIOTT", Category: model.CategoryMeals, Priority: 10, Confidence: 0.5},
	})
	require.NoError(t, err)

	// The higher-priority rule fails its amount hint, but the lower-priority
	// rule must not win; the first match at the top priority holds.
	rule, ok := table.Match("MARRIOTT DOWNTOWN", 40)
	require.True(t, ok)
	assert.Equal(t, "exact", rule.Name)
}

func TestTable_Match_NoMatch(t *testing.T) {
	table, err := NewTable(DefaultRules())
	require.NoError(t, err)

	_, ok := table.Match("XYZZY UNRECOGNIZABLE VENDOR", 10)
	assert.False(t, ok)
}

func TestTable_Match_RegexWordBoundary(t *testing.T) {
	table, err := NewTable(DefaultRules())
	require.NoError(t, err)

	rule, ok := table.Match(Normalize("UBER *TRIP HELP.UBER.COM"), 24.50)
	require.True(t, ok)
	assert.Equal(t, "Uber", rule.Name)

	// UBER inside a longer word must not match the word-boundary pattern
	_, ok = table.Match("TUBERVILLE FARMS", 12)
	assert.False(t, ok)
}

func TestDefaultRules_AllValid(t *testing.T) {
	table, err := NewTable(DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultRules()), table.Len())

	for _, rule := range table.Rules() {
		assert.True(t, rule.Category.IsValid(), "rule %q", rule.Name)
		assert.GreaterOrEqual(t, rule.Confidence, 0.0, "rule %q", rule.Name)
		assert.LessOrEqual(t, rule.Confidence, 1.0, "rule %q", rule.Name)
	}
}
