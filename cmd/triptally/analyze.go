package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/engine"
	"github.com/triptally/triptally/internal/purpose"
	"github.com/triptally/triptally/internal/report"
	"github.com/triptally/triptally/internal/segment"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Categorize expenses, detect trips, and draft business purposes",
		Long: `Run the full analysis pipeline over stored transactions.

Transactions are categorized against the pattern rule table, grouped into
trips by date adjacency and location, and each trip gets a drafted business
purpose with a confidence score and a submission-ready verdict.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("start-date", "s", "", "Only analyze transactions on or after this date (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "Only analyze transactions on or before this date (format: 2006-01-02)")
	cmd.Flags().String("account", "", "Only analyze transactions from this account")
	cmd.Flags().Int("max-gap", segment.DefaultParams().MaxGapDays, "Maximum quiet days between expenses within one trip")
	cmd.Flags().Int("location-window", segment.DefaultParams().LocationWindowDays, "Day window within which differing locations still merge")
	cmd.Flags().IntP("workers", "w", 4, "Number of categorization workers")
	cmd.Flags().StringP("output", "o", "", "Write a plain-text report to this file")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	_ = viper.BindPFlag("segment.max_gap_days", cmd.Flags().Lookup("max-gap"))
	_ = viper.BindPFlag("segment.location_window_days", cmd.Flags().Lookup("location-window"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	categorizer, err := initCategorizer()
	if err != nil {
		return err
	}

	params := segment.Params{
		MaxGapDays:         viper.GetInt("segment.max_gap_days"),
		LocationWindowDays: viper.GetInt("segment.location_window_days"),
	}

	synthesizer := purpose.New(purposeConfigFromViper())

	eng := engine.New(store, categorizer, synthesizer, params)

	opts := engine.Options{}

	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")
	if startStr != "" || endStr != "" {
		start, end, err := parseDateRange(startStr, endStr, 0)
		if err != nil {
			return err
		}
		if startStr != "" {
			opts.StartDate = &start
		}
		if endStr != "" {
			opts.EndDate = &end
		}
	}

	opts.AccountID, _ = cmd.Flags().GetString("account")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	opts.ShowProgress = !noProgress

	result, err := eng.Analyze(ctx, opts)
	if err != nil {
		return err
	}

	if result.Transactions == 0 {
		slog.Info("No transactions matched; nothing to analyze")
		return nil
	}

	fmt.Print(report.RenderTrips(result.Trips))

	if result.Unknown > 0 {
		slog.Warn("Some transactions could not be categorized",
			"unknown", result.Unknown,
			"total", result.Transactions)
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(report.PlainReport(result.Trips)), 0600); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		slog.Info("Wrote report", "file", outputPath)
	}

	return nil
}

func purposeConfigFromViper() purpose.Config {
	cfg := purpose.DefaultConfig()
	if viper.IsSet("purpose.ready_threshold") {
		cfg.ReadyThreshold = viper.GetFloat64("purpose.ready_threshold")
	}
	if viper.IsSet("purpose.unknown_penalty") {
		cfg.UnknownPenalty = viper.GetFloat64("purpose.unknown_penalty")
	}
	if viper.IsSet("purpose.client_meal_amount") {
		cfg.ClientMealAmount = viper.GetFloat64("purpose.client_meal_amount")
	}
	return cfg
}
