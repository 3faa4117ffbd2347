package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/soa/internal/cli"
	"github.com/ledgerline/soa/internal/config"
	"github.com/ledgerline/soa/internal/sheets"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify Google Sheets credentials and spreadsheet access",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("failed to load sheets config: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render("Google Sheets access check"))

			store, err := sheets.NewStore(cmd.Context(), *sheetsConfig, nil)
			if err != nil {
				fmt.Println(cli.ErrorStyle.Render("✗ " + err.Error()))
				fmt.Println(cli.SubtleStyle.Render("Place a service account key at one of: cred.json, credentials.json, ./credentials/cred.json"))
				fmt.Println(cli.SubtleStyle.Render("and share the spreadsheet with the key's client_email."))
				return err
			}

			info, err := store.CheckAccess(cmd.Context())
			if err != nil {
				fmt.Println(cli.ErrorStyle.Render("✗ spreadsheet not accessible: " + err.Error()))
				fmt.Println(cli.WarningStyle.Render("Share " + sheetsConfig.SpreadsheetURL() + " with " + store.ServiceAccount() + " (Editor)"))
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ credentials valid, spreadsheet accessible"))
			fmt.Println(cli.LabelStyle.Render("Title:") + info.SpreadsheetTitle)
			fmt.Println(cli.LabelStyle.Render("Service account:") + info.ServiceAccount)
			fmt.Println(cli.LabelStyle.Render("Worksheets:") + fmt.Sprintf("%d", info.WorksheetCount))
			fmt.Println(cli.SubtleStyle.Render(info.SpreadsheetURL))

			return nil
		},
	}
}
