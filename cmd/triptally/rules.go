package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/config"
	"github.com/triptally/triptally/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the categorization rule table",
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesCheckCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active categorization rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := loadRuleTable(config.ExpandPath(viper.GetString("rules.path")))
			if err != nil {
				return err
			}

			fmt.Printf("%-30s %-15s %8s %10s\n", "RULE", "CATEGORY", "PRIORITY", "CONFIDENCE")
			for _, rule := range table.Rules() {
				fmt.Printf("%-30s %-15s %8d %10.2f\n", rule.Name, rule.Category, rule.Priority, rule.Confidence)
			}
			fmt.Printf("\n%d rules\n", table.Len())

			return nil
		},
	}
}

func rulesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a rule table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ruleList, err := rules.LoadFile(config.ExpandPath(args[0]))
			if err != nil {
				return fmt.Errorf("failed to load rule table: %w", err)
			}

			table, err := rules.NewTable(ruleList)
			if err != nil {
				return fmt.Errorf("invalid rule table: %w", err)
			}

			fmt.Printf("OK: %d valid rules\n", table.Len())
			return nil
		},
	}
}

func loadRuleTable(path string) (*rules.Table, error) {
	ruleList, err := rules.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule table: %w", err)
	}

	table, err := rules.NewTable(ruleList)
	if err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	return table, nil
}
