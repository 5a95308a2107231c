// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database and registers
// cleanup with the test.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Date builds a UTC midnight date for test fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewTransaction builds a transaction with a deterministic ID and hash.
func NewTransaction(id string, date time.Time, description, location string, amount float64) model.Transaction {
	txn := model.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Location:    location,
		AccountID:   "acct-test",
		Amount:      amount,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}
