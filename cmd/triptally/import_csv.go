package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/triptally/triptally/internal/ingest"
	"github.com/triptally/triptally/internal/model"
)

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv [files...]",
		Short: "Import transactions from CSV statement exports",
		Long: `Import credit card transactions from CSV files exported from your bank.

Examples:
  # Import single file
  triptally import-csv ~/Downloads/chase_jan_2024.csv

  # Import all CSV files in a directory
  triptally import-csv ~/Downloads/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().Bool("dry-run", false, "Preview import without saving")
	cmd.Flags().String("account", "csv", "Account ID to record for imported transactions")

	return cmd
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	accountID, _ := cmd.Flags().GetString("account")

	files, err := expandFileArgs(args)
	if err != nil {
		return err
	}

	parser := ingest.NewCSVParser()
	var all []model.Transaction
	seen := make(map[string]bool)

	for _, filePath := range files {
		slog.Info("Processing file", "file", filepath.Base(filePath))

		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f, accountID)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for _, txn := range transactions {
			if seen[txn.Hash] {
				continue
			}
			seen[txn.Hash] = true
			all = append(all, txn)
			added++
		}

		slog.Info("Parsed file", "file", filepath.Base(filePath), "transactions", added)
	}

	if len(all) == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(files))
	}

	if dryRun {
		slog.Info("Dry run mode - not saving to database", "transactions", len(all))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, all); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info("Import complete", "transactions", len(all), "files", len(files))

	return nil
}

// expandFileArgs expands glob patterns and verifies direct paths.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}

	return files, nil
}
