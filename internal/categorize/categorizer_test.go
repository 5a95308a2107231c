package categorize

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/rules"
)

func newTestCategorizer(t *testing.T) *Categorizer {
	t.Helper()
	table, err := rules.NewTable(rules.DefaultRules())
	require.NoError(t, err)
	c, err := New(table)
	require.NoError(t, err)
	return c
}

func txn(description string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          "t-" + description,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      amount,
		AccountID:   "acct-1",
	}
}

func TestNew_RequiresRules(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, common.ErrEmptyRuleTable)
}

func TestCategorize(t *testing.T) {
	c := newTestCategorizer(t)

	tests := []struct {
		name         string
		description  string
		wantCategory model.Category
		wantRule     string
		amount       float64
	}{
		{
			name:         "exact airline vendor",
			description:  "UNITED AIRLINES 0162341234567",
			amount:       455.30,
			wantCategory: model.CategoryAirfare,
			wantRule:     "United Airlines",
		},
		{
			name:         "rideshare with punctuation",
			description:  "UBER *TRIP HELP.UBER.COM",
			amount:       24.50,
			wantCategory: model.CategoryTransport,
			wantRule:     "Uber",
		},
		{
			name:         "hotel room charge",
			description:  "MARRIOTT CHICAGO DOWNTOWN",
			amount:       612.40,
			wantCategory: model.CategoryHotel,
			wantRule:     "Marriott",
		},
		{
			name:         "hotel incidental by amount",
			description:  "MARRIOTT CHICAGO DOWNTOWN",
			amount:       18.75,
			wantCategory: model.CategoryMeals,
			wantRule:     "Marriott incidental",
		},
		{
			name:         "conference registration",
			description:  "GOTO CONFERENCE REGISTRATION",
			amount:       1200,
			wantCategory: model.CategoryConference,
			wantRule:     "Conference registration",
		},
		{
			name:         "keyword fallback",
			description:  "JOE'S GRILL AUSTIN TX",
			amount:       42.10,
			wantCategory: model.CategoryMeals,
			wantRule:     "Restaurant keyword",
		},
		{
			name:         "unrecognized vendor",
			description:  "ZZYZX HOLDINGS LLC",
			amount:       99,
			wantCategory: model.CategoryUnknown,
			wantRule:     model.RuleUnmatched,
		},
		{
			name:         "empty description",
			description:  "",
			amount:       10,
			wantCategory: model.CategoryUnknown,
			wantRule:     model.RuleUnmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Categorize(txn(tt.description, tt.amount))

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantRule, got.MatchedRule)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			if tt.wantCategory == model.CategoryUnknown {
				assert.Zero(t, got.Confidence)
			} else {
				assert.Greater(t, got.Confidence, 0.0)
			}
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	c := newTestCategorizer(t)
	input := txn("DELTA AIR 00623481234", 389.20)

	first := c.Categorize(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Categorize(input))
	}
}

func TestCategorizeBatch_OrderAndWorkerIndependence(t *testing.T) {
	c := newTestCategorizer(t)
	ctx := context.Background()

	txns := []model.Transaction{
		txn("UNITED AIRLINES 016234", 455.30),
		txn("ZZYZX HOLDINGS LLC", 10),
		txn("HILTON GARDEN INN SEATTLE WA", 389),
		txn("UBER *TRIP", 18.20),
		txn("STARBUCKS #2201 SEATTLE WA", 6.45),
	}

	sequential, err := c.CategorizeBatch(ctx, txns, 1)
	require.NoError(t, err)
	require.Len(t, sequential, len(txns))

	for _, workers := range []int{2, 4, 16} {
		parallel, err := c.CategorizeBatch(ctx, txns, workers)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}

	// Output order mirrors input order
	for i := range txns {
		assert.Equal(t, txns[i].ID, sequential[i].ID)
	}
}

func TestCategorizeBatch_Empty(t *testing.T) {
	c := newTestCategorizer(t)

	got, err := c.CategorizeBatch(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCategorizeBatch_ContextCancellation(t *testing.T) {
	c := newTestCategorizer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txns := make([]model.Transaction, 1000)
	for i := range txns {
		txns[i] = txn("STARBUCKS", 5)
	}

	_, err := c.CategorizeBatch(ctx, txns, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
