package plaid

import (
	"context"
	"time"

	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/service"
)

// MockClient is a test double for the Plaid transaction fetcher.
type MockClient struct {
	Transactions []model.Transaction
	Accounts     []string
	Err          error
}

// GetTransactions returns the canned transactions within the date range.
func (m *MockClient) GetTransactions(_ context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var out []model.Transaction
	for _, txn := range m.Transactions {
		if txn.Date.Before(startDate) || txn.Date.After(endDate) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

// GetAccounts returns the canned account IDs.
func (m *MockClient) GetAccounts(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}

var _ service.TransactionFetcher = (*MockClient)(nil)
