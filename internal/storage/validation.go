package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/triptally/triptally/internal/model"
)

// Validation errors.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("invalid date range")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: context cannot be nil", ErrInvalidInput)
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, name)
	}
	return nil
}

func validateTransactions(transactions []model.Transaction) error {
	for i := range transactions {
		txn := &transactions[i]
		if txn.ID == "" {
			return fmt.Errorf("%w: transaction %d has no ID", ErrInvalidInput, i)
		}
		if txn.Date.IsZero() {
			return fmt.Errorf("%w: transaction %s has no date", ErrInvalidInput, txn.ID)
		}
	}
	return nil
}

func validateTrips(trips []model.Trip) error {
	seen := make(map[string]bool)
	for i := range trips {
		trip := &trips[i]
		if len(trip.Transactions) == 0 {
			return fmt.Errorf("%w: trip %d has no member transactions", ErrInvalidInput, i)
		}
		if trip.EndDate.Before(trip.StartDate) {
			return fmt.Errorf("%w: trip %d ends before it starts", ErrInvalidDateRange, i)
		}
		for _, txn := range trip.Transactions {
			if seen[txn.ID] {
				return fmt.Errorf("%w: transaction %s appears in more than one trip", ErrInvalidInput, txn.ID)
			}
			seen[txn.ID] = true
		}
	}
	return nil
}
