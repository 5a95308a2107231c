package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/service"
)

// SaveTransactions saves multiple transactions, skipping duplicates by hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, description, location, amount, account_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		txn := &transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.Date, txn.Description,
			txn.Location, txn.Amount, txn.AccountID,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactions returns transactions matching the filter, oldest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, hash, date, description, location, amount, account_id FROM transactions`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY date, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// GetTransactionByID returns one transaction or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, date, description, location, amount, account_id
		FROM transactions WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactionCount returns the total number of stored transactions.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// SaveCategorizations upserts categorization results. Recategorization with
// the same rule table is idempotent, so replacing rows is safe.
func (s *SQLiteStorage) SaveCategorizations(ctx context.Context, categorized []model.CategorizedTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categorizations (transaction_id, category, confidence, matched_rule)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			category = excluded.category,
			confidence = excluded.confidence,
			matched_rule = excluded.matched_rule,
			categorized_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range categorized {
		ct := &categorized[i]
		if _, err := stmt.ExecContext(ctx,
			ct.ID, string(ct.Category), ct.Confidence, ct.MatchedRule,
		); err != nil {
			return fmt.Errorf("failed to save categorization for %s: %w", ct.ID, err)
		}
	}

	return tx.Commit()
}

// GetCategorizedTransactions returns transactions joined with their stored
// categorization, oldest first.
func (s *SQLiteStorage) GetCategorizedTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.CategorizedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.hash, t.date, t.description, t.location, t.amount, t.account_id,
		       c.category, c.confidence, c.matched_rule
		FROM transactions t
		JOIN categorizations c ON c.transaction_id = t.id`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "t.account_id = ?")
		args = append(args, filter.AccountID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date, t.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categorized transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.CategorizedTransaction
	for rows.Next() {
		var ct model.CategorizedTransaction
		var location, accountID sql.NullString
		var category string
		if err := rows.Scan(
			&ct.ID, &ct.Hash, &ct.Date, &ct.Description, &location,
			&ct.Amount, &accountID, &category, &ct.Confidence, &ct.MatchedRule,
		); err != nil {
			return nil, fmt.Errorf("failed to scan categorized transaction: %w", err)
		}
		ct.Location = location.String
		ct.AccountID = accountID.String
		ct.Category = model.Category(category)
		results = append(results, ct)
	}

	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var txn model.Transaction
	var location, accountID sql.NullString
	if err := row.Scan(
		&txn.ID, &txn.Hash, &txn.Date, &txn.Description,
		&location, &txn.Amount, &accountID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return txn, err
		}
		return txn, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Location = location.String
	txn.AccountID = accountID.String
	return txn, nil
}
