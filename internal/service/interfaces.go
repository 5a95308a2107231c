// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/triptally/triptally/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	AccountID string
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence layer. The analysis core
// never touches it directly; the caller passes data in and persists results.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionCount(ctx context.Context) (int, error)

	// Categorization results
	SaveCategorizations(ctx context.Context, categorized []model.CategorizedTransaction) error
	GetCategorizedTransactions(ctx context.Context, filter TransactionFilter) ([]model.CategorizedTransaction, error)

	// Trip operations. Trips are recomputed wholesale, so ReplaceTrips
	// atomically swaps the stored set for the covered account.
	ReplaceTrips(ctx context.Context, accountID string, trips []model.Trip) error
	GetTrips(ctx context.Context, accountID string) ([]model.Trip, error)
	GetTripByID(ctx context.Context, id int64) (*model.Trip, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionFetcher retrieves raw transactions from a bank-link provider.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetAccounts(ctx context.Context) ([]string, error)
}

// ReportWriter exports finished trip reports to an external destination.
type ReportWriter interface {
	WriteTrips(ctx context.Context, trips []model.Trip) error
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
