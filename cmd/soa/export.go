package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgerline/soa/internal/cli"
	"github.com/ledgerline/soa/internal/config"
	"github.com/ledgerline/soa/internal/sheets"
	"github.com/ledgerline/soa/internal/statement"
)

func exportCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compute a statement from a JSON file and write it to Google Sheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := loadStatementFile(filePath)
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("failed to load sheets config: %w", err)
			}

			logger := slog.Default()
			builder := statement.NewBuilder(config.MonthlyRate(), logger)
			rows, summary := builder.Build(file.Invoices, file.Payments)
			if summary.Error != "" {
				return fmt.Errorf("statement preparation failed: %s", summary.Error)
			}

			store, err := sheets.NewStore(cmd.Context(), *sheetsConfig, logger)
			if err != nil {
				fmt.Println(cli.ErrorStyle.Render("✗ " + err.Error()))
				return err
			}

			result, err := store.CreateStatement(cmd.Context(), rows)
			if err != nil {
				return fmt.Errorf("failed to write statement: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ wrote %d rows to %s", result.RowsWritten, result.WorksheetName)))
			fmt.Println(cli.LabelStyle.Render("Invoices:") + fmt.Sprintf("%d", summary.InvoicesCount))
			fmt.Println(cli.LabelStyle.Render("Payments:") + fmt.Sprintf("%d", summary.PaymentsCount))
			fmt.Println(cli.LabelStyle.Render("Net outstanding:") + fmt.Sprintf("%.2f", summary.NetOutstanding))
			fmt.Println(cli.SubtleStyle.Render(result.SpreadsheetURL))

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "JSON file with invoices and payments (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
