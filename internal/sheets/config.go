// Package sheets provides the Google Sheets statement store.
package sheets

import (
	"fmt"
	"time"
)

// DefaultCredentialPaths are the locations probed for a service account key
// when no explicit path is configured, in order.
var DefaultCredentialPaths = []string{
	"cred.json",
	"./cred.json",
	"../cred.json",
	"service-account-credentials.json",
	"credentials.json",
	"./credentials/cred.json",
}

// Config holds the configuration for the Google Sheets statement store.
type Config struct {
	SpreadsheetID   string
	CredentialsPath string
	CredentialPaths []string
	BatchSize       int
	SheetCols       int64
	RetryAttempts   int
	RetryDelay      time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CredentialPaths: DefaultCredentialPaths,
		BatchSize:       100,
		SheetCols:       15,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is required")
	}

	if c.CredentialsPath == "" && len(c.CredentialPaths) == 0 {
		return fmt.Errorf("no credential paths configured")
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	if c.SheetCols <= 0 {
		return fmt.Errorf("sheet columns must be positive")
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}

	return nil
}

// SpreadsheetURL returns the browser URL for the configured spreadsheet.
func (c *Config) SpreadsheetURL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", c.SpreadsheetID)
}
