package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Plaid and Google Sheets.`,
	}

	cmd.AddCommand(authPlaidCmd())
	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authPlaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Connect a bank account via Plaid Link",
		Long: `Connect your bank account using Plaid Link.

This command creates a Link token for the Plaid Link flow. After completing
Link in your browser or the Plaid quickstart, exchange the resulting public
token with:

  triptally auth plaid --public-token public-sandbox-xxx

The access token is printed for you to add to your config file.`,
		RunE: runAuthPlaid,
	}

	cmd.Flags().String("env", "", "Plaid environment (sandbox/production)")
	cmd.Flags().String("public-token", "", "Public token from Plaid Link to exchange for an access token")

	return cmd
}

func runAuthPlaid(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if flagEnv, _ := cmd.Flags().GetString("env"); flagEnv != "" {
		viper.Set("plaid.environment", flagEnv)
	}

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	if publicToken, _ := cmd.Flags().GetString("public-token"); publicToken != "" {
		accessToken, itemID, err := client.ExchangePublicToken(ctx, publicToken)
		if err != nil {
			return fmt.Errorf("failed to exchange public token: %w", err)
		}

		slog.Info("Linked account", "item_id", itemID)
		fmt.Println("Add this to your config file under plaid.access_token:")
		fmt.Println(accessToken)
		return nil
	}

	linkToken, err := client.CreateLinkToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to create link token: %w", err)
	}

	slog.Info("Created Plaid Link token")
	fmt.Println("Use this token to initialize Plaid Link:")
	fmt.Println(linkToken)
	fmt.Println()
	fmt.Println("After linking, run: triptally auth plaid --public-token <token>")

	return nil
}

func authSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets via OAuth2.

Opens a browser-based consent flow and caches the resulting token for the
export command.`,
		RunE: runAuthSheets,
	}
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("google sheets credentials missing. Please add sheets.client_id and sheets.client_secret to the config file")
	}

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    sheetsTokenFile(),
	})
	if err != nil {
		return fmt.Errorf("failed to authenticate with Google Sheets: %w", err)
	}

	slog.Info("Google Sheets authentication complete", "expires", token.Expiry)

	return nil
}

func sheetsTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sheets-token.json"
	}
	return filepath.Join(home, ".config", "triptally", "sheets-token.json")
}
