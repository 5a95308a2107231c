package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import credit card transactions from OFX or QFX (Quicken) files exported
from your bank.

Examples:
  # Import single file
  triptally import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  triptally import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().Bool("dry-run", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFileArgs(args)
	if err != nil {
		return err
	}

	parser := ofx.NewParser()
	var all []model.Transaction
	seen := make(map[string]bool)

	for _, filePath := range files {
		slog.Info("Processing file", "file", filepath.Base(filePath))

		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
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
