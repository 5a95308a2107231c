package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptally/triptally/internal/categorize"
	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/purpose"
	"github.com/triptally/triptally/internal/rules"
	"github.com/triptally/triptally/internal/segment"
	"github.com/triptally/triptally/internal/storage"
	"github.com/triptally/triptally/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()

	store := testutil.SetupTestDB(t)

	table, err := rules.NewTable(rules.DefaultRules())
	require.NoError(t, err)
	categorizer, err := categorize.New(table)
	require.NoError(t, err)

	eng := New(store, categorizer, purpose.New(purpose.DefaultConfig()), segment.DefaultParams())
	return eng, store
}

func conferenceWeek(t *testing.T, store *storage.SQLiteStorage) {
	t.Helper()

	txns := []model.Transaction{
		testutil.NewTransaction("e1", testutil.Date(2024, 3, 10), "UNITED AIRLINES 0162341234", "", 455.30),
		testutil.NewTransaction("e2", testutil.Date(2024, 3, 10), "MARRIOTT AUSTIN TX", "AUSTIN TX", 780.00),
		testutil.NewTransaction("e3", testutil.Date(2024, 3, 11), "TECH SUMMIT REGISTRATION", "AUSTIN TX", 1200.00),
		testutil.NewTransaction("e4", testutil.Date(2024, 3, 12), "CHIPOTLE AUSTIN TX", "AUSTIN TX", 14.80),
		testutil.NewTransaction("e5", testutil.Date(2024, 3, 13), "UNITED AIRLINES 0162349999", "", 448.10),
	}
	require.NoError(t, store.SaveTransactions(context.Background(), txns))
}

func TestAnalyze_FullPipeline(t *testing.T) {
	eng, store := newTestEngine(t)
	conferenceWeek(t, store)

	result, err := eng.Analyze(context.Background(), Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Transactions)
	assert.Equal(t, 0, result.Unknown)
	require.Len(t, result.Trips, 1)

	trip := result.Trips[0]
	assert.Equal(t, testutil.Date(2024, 3, 10), trip.StartDate)
	assert.Equal(t, testutil.Date(2024, 3, 13), trip.EndDate)
	assert.Equal(t, "AUSTIN TX", trip.PrimaryLocation)
	assert.Contains(t, trip.BusinessPurpose, "Conference attendance")
	assert.True(t, trip.Ready)
	assert.Equal(t, 1, result.ReadyTrips)
	assert.InDelta(t, 2898.20, trip.TotalAmount, 0.001)
	assert.NotZero(t, trip.ID, "trips are persisted")
}

func TestAnalyze_EmptyDatabaseIsNoOp(t *testing.T) {
	eng, _ := newTestEngine(t)

	result, err := eng.Analyze(context.Background(), Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Transactions)
	assert.Empty(t, result.Trips)
}

func TestAnalyze_UnknownBlocksReadiness(t *testing.T) {
	eng, store := newTestEngine(t)

	txns := []model.Transaction{
		testutil.NewTransaction("u1", testutil.Date(2024, 3, 10), "DELTA AIR 006234", "", 410),
		testutil.NewTransaction("u2", testutil.Date(2024, 3, 11), "ZZYZX HOLDINGS LLC", "", 55),
	}
	require.NoError(t, store.SaveTransactions(context.Background(), txns))

	result, err := eng.Analyze(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Unknown)
	require.Len(t, result.Trips, 1)
	assert.False(t, result.Trips[0].Ready)
	assert.Equal(t, 0, result.ReadyTrips)
}

func TestAnalyze_Rerun_IsStable(t *testing.T) {
	eng, store := newTestEngine(t)
	conferenceWeek(t, store)

	first, err := eng.Analyze(context.Background(), Options{})
	require.NoError(t, err)
	second, err := eng.Analyze(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, second.Trips, len(first.Trips))
	assert.Equal(t, first.Trips[0].BusinessPurpose, second.Trips[0].BusinessPurpose)
	assert.Equal(t, first.Trips[0].TotalAmount, second.Trips[0].TotalAmount)
	assert.Equal(t, first.Trips[0].StartDate, second.Trips[0].StartDate)
}

func TestAnalyze_DateFilter(t *testing.T) {
	eng, store := newTestEngine(t)

	txns := []model.Transaction{
		testutil.NewTransaction("d1", testutil.Date(2024, 1, 10), "HILTON CHICAGO IL", "CHICAGO IL", 300),
		testutil.NewTransaction("d2", testutil.Date(2024, 6, 10), "HYATT DENVER CO", "DENVER CO", 280),
	}
	require.NoError(t, store.SaveTransactions(context.Background(), txns))

	start := testutil.Date(2024, 5, 1)
	result, err := eng.Analyze(context.Background(), Options{StartDate: &start})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Transactions)
	require.Len(t, result.Trips, 1)
	assert.Equal(t, "DENVER CO", result.Trips[0].PrimaryLocation)
}
