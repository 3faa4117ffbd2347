package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       100,
				SheetCols:       15,
				RetryAttempts:   3,
				RetryDelay:      time.Second,
			},
			wantErr: false,
		},
		{
			name: "explicit credentials path only",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialsPath: "/path/to/key.json",
				BatchSize:       100,
				SheetCols:       15,
			},
			wantErr: false,
		},
		{
			name: "missing spreadsheet id",
			config: Config{
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       100,
				SheetCols:       15,
			},
			wantErr: true,
			errMsg:  "spreadsheet ID is required",
		},
		{
			name: "no credential paths",
			config: Config{
				SpreadsheetID: "sheet-id",
				BatchSize:     100,
				SheetCols:     15,
			},
			wantErr: true,
			errMsg:  "no credential paths configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       0,
				SheetCols:       15,
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "invalid sheet columns",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       100,
				SheetCols:       0,
			},
			wantErr: true,
			errMsg:  "sheet columns must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       100,
				SheetCols:       15,
				RetryAttempts:   -1,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
		{
			name: "negative retry delay",
			config: Config{
				SpreadsheetID:   "sheet-id",
				CredentialPaths: DefaultCredentialPaths,
				BatchSize:       100,
				SheetCols:       15,
				RetryDelay:      -time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 100, config.BatchSize)
	assert.Equal(t, int64(15), config.SheetCols)
	assert.Equal(t, DefaultCredentialPaths, config.CredentialPaths)
	assert.Equal(t, 3, config.RetryAttempts)
}

func TestConfig_SpreadsheetURL(t *testing.T) {
	config := Config{SpreadsheetID: "abc123"}
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/edit", config.SpreadsheetURL())
}
