package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerline/soa/internal/model"
)

// statementFile is the on-disk input format for preview and export: the
// same shape the write_statement endpoint accepts.
type statementFile struct {
	Invoices []model.Record `json:"invoices"`
	Payments []model.Record `json:"payments"`
}

func loadStatementFile(path string) (*statementFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file statementFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid statement file %s: %w", path, err)
	}

	return &file, nil
}
