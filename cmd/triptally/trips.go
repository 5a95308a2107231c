package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triptally/triptally/internal/report"
)

func tripsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Show the trips from the last analysis",
		RunE:  runTrips,
	}

	cmd.Flags().String("account", "", "Only show trips for this account")
	cmd.Flags().Bool("ready-only", false, "Only show trips ready for submission")

	return cmd
}

func runTrips(cmd *cobra.Command, _ []string) error {
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
		fmt.Println("No trips found. Run 'triptally analyze' first.")
		return nil
	}

	fmt.Print(report.RenderTrips(trips))

	return nil
}
