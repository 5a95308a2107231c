// Package ingest parses raw bank statement exports into transactions.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/triptally/triptally/internal/model"
)

// CSVParser parses Chase-style CSV statement exports.
type CSVParser struct{}

// NewCSVParser creates a new CSV statement parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// ParseFile parses a CSV statement and returns the expense transactions.
// Credits and malformed rows are skipped with a warning; only debits become
// expenses, stored with positive amounts.
func (p *CSVParser) ParseFile(_ context.Context, reader io.Reader, accountID string) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	dateIdx, descIdx, amountIdx := columnIndexes(header)

	var transactions []model.Transaction
	line := 1
	for {
		line++
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping unreadable CSV row", "line", line, "error", err)
			continue
		}
		if len(row) <= dateIdx || len(row) <= descIdx || len(row) <= amountIdx {
			slog.Warn("Skipping short CSV row", "line", line)
			continue
		}

		date, err := time.Parse("01/02/2006", strings.TrimSpace(row[dateIdx]))
		if err != nil {
			slog.Warn("Skipping row with unparseable date", "line", line, "date", row[dateIdx])
			continue
		}

		amount, err := parseAmount(row[amountIdx])
		if err != nil {
			slog.Warn("Skipping row with unparseable amount", "line", line, "amount", row[amountIdx])
			continue
		}

		// Chase exports debits as negative amounts; credits are not expenses
		if amount >= 0 {
			continue
		}
		amount = -amount

		description := strings.TrimSpace(row[descIdx])
		txn := model.Transaction{
			Date:        date,
			Description: description,
			Location:    ExtractLocation(description),
			Amount:      amount,
			AccountID:   accountID,
		}
		txn.Hash = txn.GenerateHash()
		txn.ID = "csv-" + txn.Hash[:16]

		transactions = append(transactions, txn)
	}

	slog.Info("Parsed CSV statement",
		"rows", line-1,
		"transactions", len(transactions))

	return transactions, nil
}

// columnIndexes locates the date, description, and amount columns. Exports
// without a recognized header fall back to the standard column order.
func columnIndexes(header []string) (dateIdx, descIdx, amountIdx int) {
	dateIdx, descIdx, amountIdx = 0, 1, 2
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Transaction Date", "Date":
			dateIdx = i
		case "Description":
			descIdx = i
		case "Amount":
			amountIdx = i
		}
	}
	return dateIdx, descIdx, amountIdx
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
