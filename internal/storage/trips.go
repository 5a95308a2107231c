package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

// ReplaceTrips atomically replaces the stored trip set for an account.
// Trips are recomputed wholesale whenever the underlying transactions or
// segmentation parameters change; there is no incremental update path.
func (s *SQLiteStorage) ReplaceTrips(ctx context.Context, accountID string, trips []model.Trip) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrips(trips); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if accountID == "" {
		if _, err := tx.ExecContext(ctx, "DELETE FROM trips"); err != nil {
			return fmt.Errorf("failed to clear trips: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE account_id = ?", accountID); err != nil {
			return fmt.Errorf("failed to clear trips for account %s: %w", accountID, err)
		}
	}

	tripStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trips (
			account_id, start_date, end_date, primary_location,
			total_amount, business_purpose, confidence, ready
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip statement: %w", err)
	}
	defer func() { _ = tripStmt.Close() }()

	memberStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trip_members (trip_id, transaction_id, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare member statement: %w", err)
	}
	defer func() { _ = memberStmt.Close() }()

	for i := range trips {
		trip := &trips[i]
		result, err := tripStmt.ExecContext(ctx,
			accountID, trip.StartDate, trip.EndDate, trip.PrimaryLocation,
			trip.TotalAmount, trip.BusinessPurpose, trip.Confidence, trip.Ready,
		)
		if err != nil {
			return fmt.Errorf("failed to save trip %d: %w", i, err)
		}

		tripID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get trip ID: %w", err)
		}
		trip.ID = tripID

		for pos, txn := range trip.Transactions {
			if _, err := memberStmt.ExecContext(ctx, tripID, txn.ID, pos); err != nil {
				// UNIQUE(transaction_id) trips here when a transaction is
				// assigned to more than one trip
				return fmt.Errorf("%w: transaction %s: %v", common.ErrDuplicateMember, txn.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetTrips returns stored trips in start-date order with their members.
func (s *SQLiteStorage) GetTrips(ctx context.Context, accountID string) ([]model.Trip, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, start_date, end_date, primary_location,
		       total_amount, business_purpose, confidence, ready
		FROM trips`
	var args []any
	if accountID != "" {
		query += " WHERE account_id = ?"
		args = append(args, accountID)
	}
	query += " ORDER BY start_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trips []model.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		members, err := s.getTripMembers(ctx, trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Transactions = members
	}

	return trips, nil
}

// GetTripByID returns one trip with members, or common.ErrNotFound.
func (s *SQLiteStorage) GetTripByID(ctx context.Context, id int64) (*model.Trip, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, primary_location,
		       total_amount, business_purpose, confidence, ready
		FROM trips WHERE id = ?
	`, id)

	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trip %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	members, err := s.getTripMembers(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Transactions = members

	return &trip, nil
}

func (s *SQLiteStorage) getTripMembers(ctx context.Context, tripID int64) ([]model.CategorizedTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.hash, t.date, t.description, t.location, t.amount, t.account_id,
		       c.category, c.confidence, c.matched_rule
		FROM trip_members m
		JOIN transactions t ON t.id = m.transaction_id
		JOIN categorizations c ON c.transaction_id = t.id
		WHERE m.trip_id = ?
		ORDER BY m.position
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []model.CategorizedTransaction
	for rows.Next() {
		var ct model.CategorizedTransaction
		var location, accountID sql.NullString
		var category string
		if err := rows.Scan(
			&ct.ID, &ct.Hash, &ct.Date, &ct.Description, &location,
			&ct.Amount, &accountID, &category, &ct.Confidence, &ct.MatchedRule,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		ct.Location = location.String
		ct.AccountID = accountID.String
		ct.Category = model.Category(category)
		members = append(members, ct)
	}

	return members, rows.Err()
}

func scanTrip(row rowScanner) (model.Trip, error) {
	var trip model.Trip
	var location, purpose sql.NullString
	if err := row.Scan(
		&trip.ID, &trip.StartDate, &trip.EndDate, &location,
		&trip.TotalAmount, &purpose, &trip.Confidence, &trip.Ready,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trip, err
		}
		return trip, fmt.Errorf("failed to scan trip: %w", err)
	}
	trip.PrimaryLocation = location.String
	trip.BusinessPurpose = purpose.String
	return trip, nil
}
