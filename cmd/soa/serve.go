package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerline/soa/internal/config"
	"github.com/ledgerline/soa/internal/server"
	"github.com/ledgerline/soa/internal/service"
	"github.com/ledgerline/soa/internal/sheets"
	"github.com/ledgerline/soa/internal/statement"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement of accounts HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				port, _ := cmd.Flags().GetInt("port")
				viper.Set("server.port", port)
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("failed to load sheets config: %w", err)
			}

			logger := slog.Default()
			builder := statement.NewBuilder(config.MonthlyRate(), logger)

			// The store is built per request so a credentials file dropped
			// in after startup is picked up without a restart.
			provider := func(ctx context.Context) (service.StatementStore, error) {
				return sheets.NewStore(ctx, *sheetsConfig, logger)
			}

			srv := server.New(server.Config{
				Port:          config.Port(),
				SpreadsheetID: sheetsConfig.SpreadsheetID,
			}, builder, provider, logger)

			logger.Info("statement of accounts service starting",
				"port", config.Port(),
				"monthly_rate", builder.MonthlyRate(),
				"spreadsheet_id", sheetsConfig.SpreadsheetID)

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "HTTP listen port")

	return cmd
}
