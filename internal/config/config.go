package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/ledgerline/soa/internal/sheets"
	"github.com/ledgerline/soa/internal/statement"
)

// DefaultPort is the HTTP listen port when nothing else is configured.
const DefaultPort = 8000

// LoadSheetsConfig loads Google Sheets configuration from Viper and
// environment variables. It follows this precedence:
// 1. Viper configuration (from config file or SOA_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.credentials_path"); v != "" {
		config.CredentialsPath = ExpandPath(v)
	}
	if v := viper.GetInt("sheets.batch_size"); v > 0 {
		config.BatchSize = v
	}
	if v := viper.GetInt64("sheets.sheet_cols"); v > 0 {
		config.SheetCols = v
	}

	// Override with direct environment variables if not set
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.CredentialsPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"); v != "" {
			config.CredentialsPath = ExpandPath(v)
		}
	}
	if v := os.Getenv("DEFAULT_SHEET_COLS"); v != "" && !viper.IsSet("sheets.sheet_cols") {
		if cols, err := strconv.ParseInt(v, 10, 64); err == nil && cols > 0 {
			config.SheetCols = cols
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// MonthlyRate returns the configured monthly interest rate (percent per
// 30-day period), falling back to the MONTHLY_INTEREST_RATE environment
// variable and finally the built-in default.
func MonthlyRate() float64 {
	if viper.IsSet("interest.monthly_rate") {
		return viper.GetFloat64("interest.monthly_rate")
	}
	if v := os.Getenv("MONTHLY_INTEREST_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			return rate
		}
	}
	return statement.DefaultMonthlyRate
}

// Port returns the configured HTTP listen port, falling back to the PORT
// environment variable and finally the default.
func Port() int {
	if viper.IsSet("server.port") {
		return viper.GetInt("server.port")
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}
	return DefaultPort
}
