package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/plaid"
	"github.com/triptally/triptally/internal/service"
)

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch transactions from Plaid",
		Long: `Fetch credit card transactions from your connected Plaid accounts.

Transactions are stored in the local database for analysis. Duplicates are
skipped automatically.`,
		RunE: runFetch,
	}

	cmd.Flags().StringP("start-date", "s", "", "Start date (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "End date (format: 2006-01-02)")
	cmd.Flags().IntP("days", "d", 90, "Number of days to fetch (used if start/end dates not specified)")
	cmd.Flags().Bool("list-accounts", false, "List available accounts without fetching")
	cmd.Flags().Bool("dry-run", false, "Show what would be fetched without saving")

	return cmd
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list-accounts"); list {
		return listAccounts(ctx, client)
	}

	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")
	days, _ := cmd.Flags().GetInt("days")

	startDate, endDate, err := parseDateRange(startStr, endStr, days)
	if err != nil {
		return err
	}

	slog.Info("Fetching transactions",
		"start", startDate.Format("2006-01-02"),
		"end", endDate.Format("2006-01-02"))

	transactions, err := client.GetTransactions(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	slog.Info("Fetched transactions", "count", len(transactions))

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		slog.Info("Dry run mode - not saving to database")
		for _, txn := range transactions {
			slog.Info("Would save",
				"date", txn.Date.Format("2006-01-02"),
				"amount", txn.Amount,
				"description", txn.Description)
		}
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info("Saved transactions to database", "count", len(transactions))

	return nil
}

func plaidClientFromConfig() (*plaid.Client, error) {
	cfg := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	}
	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}

	client, err := plaid.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Plaid client: %w", err)
	}
	return client, nil
}

func listAccounts(ctx context.Context, fetcher service.TransactionFetcher) error {
	accounts, err := fetcher.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	slog.Info("Available accounts", "count", len(accounts))
	for _, id := range accounts {
		fmt.Println(id)
	}

	return nil
}
