package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/soa/internal/cli"
	"github.com/ledgerline/soa/internal/config"
	"github.com/ledgerline/soa/internal/statement"
)

func previewCmd() *cobra.Command {
	var (
		filePath string
		rate     float64
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute a statement from a JSON file and print it without writing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := loadStatementFile(filePath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("rate") {
				rate = config.MonthlyRate()
			}

			builder := statement.NewBuilder(rate, slog.Default())
			rows, summary := builder.Build(file.Invoices, file.Payments)
			if summary.Error != "" {
				fmt.Println(cli.ErrorStyle.Render("statement preparation failed: " + summary.Error))
				return fmt.Errorf("statement preparation failed: %s", summary.Error)
			}

			for _, row := range rows {
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = fmt.Sprintf("%v", cell)
				}
				fmt.Println(strings.Join(cells, "\t"))
			}

			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Summary"))
			fmt.Println(cli.LabelStyle.Render("Invoices:") + fmt.Sprintf("%d", summary.InvoicesCount))
			fmt.Println(cli.LabelStyle.Render("Payments:") + fmt.Sprintf("%d", summary.PaymentsCount))
			fmt.Println(cli.LabelStyle.Render("Total balance due:") + fmt.Sprintf("%.2f", summary.TotalBalanceDue))
			fmt.Println(cli.LabelStyle.Render("Total interest:") + fmt.Sprintf("%.2f", summary.TotalInterest))
			fmt.Println(cli.LabelStyle.Render("Net outstanding:") + fmt.Sprintf("%.2f", summary.NetOutstanding))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d rows at %v%% per month", summary.RowsWritten, rate)))

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "JSON file with invoices and payments (required)")
	cmd.Flags().Float64Var(&rate, "rate", statement.DefaultMonthlyRate, "monthly interest rate percent")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
