package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/triptally/triptally/internal/purpose"
)

func purposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purpose",
		Short: "Check and improve business purpose statements",
	}

	cmd.AddCommand(purposeCheckCmd())
	cmd.AddCommand(purposeSuggestCmd())

	return cmd
}

func purposeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [purpose]",
		Short: "Validate a business purpose statement",
		Long: `Validate a business purpose statement against common expense policy
pitfalls: too short, too vague, or personal-sounding wording.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			statement := strings.Join(args, " ")
			validation := purpose.ValidatePurpose(statement)

			if validation.Valid {
				fmt.Println("OK: purpose looks acceptable")
				return nil
			}

			fmt.Printf("Problem: %s\n", validation.Message)
			if len(validation.Suggestions) > 0 {
				fmt.Println("Try something like:")
				for _, s := range validation.Suggestions {
					fmt.Printf("  - %s\n", s)
				}
			}

			return nil
		},
	}
}

func purposeSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [location]",
		Short: "Suggest business purposes for a trip location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			location := strings.Join(args, " ")
			suggestions := purpose.SuggestByLocation(location)

			if len(suggestions) == 0 {
				fmt.Println("No suggestions for that location.")
				return nil
			}

			for _, s := range suggestions {
				fmt.Printf("  - %s\n", s)
			}

			return nil
		},
	}
}
