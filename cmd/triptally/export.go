package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trips to Google Sheets",
		Long: `Export the trips from the last analysis to a Google Sheets spreadsheet.

Each trip becomes a summary row followed by its member transactions, ready to
copy into an expense report.`,
		RunE: runExport,
	}

	cmd.Flags().String("account", "", "Only export trips for this account")
	cmd.Flags().Bool("ready-only", false, "Only export trips ready for submission")
	cmd.Flags().String("spreadsheet-id", "", "Write to an existing spreadsheet instead of creating one")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	accountID, _ := cmd.Flags().GetString("account")
	trips, err := store.GetTrips(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load trips: %w", err)
	}

	if readyOnly, _ := cmd.Flags().GetBool("ready-only"); readyOnly {
		filtered := trips[:0]
		for _, trip := range trips {
			if trip.Ready {
				filtered = append(filtered, trip)
			}
		}
		trips = filtered
	}

	if len(trips) == 0 {
		return fmt.Errorf("no trips to export. Run 'triptally analyze' first")
	}

	cfg := sheets.DefaultConfig()
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	cfg.SpreadsheetName = viper.GetString("sheets.spreadsheet_name")

	if cfg.ClientID == "" && cfg.ServiceAccountPath == "" {
		if envErr := cfg.LoadFromEnv(); envErr != nil {
			return envErr
		}
	}
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = "Travel Expense Report"
	}

	// Fall back to the cached token from 'auth sheets' for the refresh token
	if cfg.RefreshToken == "" && cfg.ServiceAccountPath == "" {
		if token, tokenErr := sheets.LoadToken(sheetsTokenFile()); tokenErr == nil {
			cfg.RefreshToken = token.RefreshToken
		}
	}

	if id, _ := cmd.Flags().GetString("spreadsheet-id"); id != "" {
		cfg.SpreadsheetID = id
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default().With("component", "sheets"))
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.WriteTrips(ctx, trips); err != nil {
		return fmt.Errorf("failed to export trips: %w", err)
	}

	slog.Info("Export complete", "trips", len(trips))

	return nil
}
