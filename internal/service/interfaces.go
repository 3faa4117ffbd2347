// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"
)

// StatementStore defines the contract for the spreadsheet-backed statement
// store. The statement rows it consumes are the linear row sequence
// produced by the statement builder, written top-to-bottom.
type StatementStore interface {
	// CreateStatement writes rows into a freshly created, timestamp-named
	// worksheet and reports where they landed.
	CreateStatement(ctx context.Context, rows [][]any) (*WriteResult, error)

	// AppendStatement appends rows after the existing content of a named
	// worksheet.
	AppendStatement(ctx context.Context, worksheetName string, rows [][]any) (*WriteResult, error)

	// ReadStatement returns up to maxRows rows of a named worksheet.
	ReadStatement(ctx context.Context, worksheetName string, maxRows int) (*WorksheetData, error)

	// ListStatements returns the titles of all worksheets in the spreadsheet.
	ListStatements(ctx context.Context) ([]string, error)

	// CheckAccess verifies the spreadsheet is reachable with the configured
	// credentials.
	CheckAccess(ctx context.Context) (*AccessInfo, error)
}

// WriteResult describes where a statement write landed.
type WriteResult struct {
	WorksheetName  string
	SpreadsheetURL string
	WorksheetID    int64
	RowsWritten    int
}

// WorksheetData holds rows read back from a worksheet.
type WorksheetData struct {
	Worksheet string
	Rows      [][]any
	TotalRows int
}

// AccessInfo reports the outcome of a credentials/spreadsheet access check.
type AccessInfo struct {
	SpreadsheetTitle string
	SpreadsheetID    string
	SpreadsheetURL   string
	ServiceAccount   string
	WorksheetCount   int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
