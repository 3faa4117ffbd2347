package server

import "github.com/ledgerline/soa/internal/model"

// StatementRequest is the request body shared by the write and append
// endpoints. Records keep whatever keys the producer sent; the statement
// builder resolves the inconsistent naming.
type StatementRequest struct {
	WorksheetName string         `json:"worksheet_name,omitempty"`
	Invoices      []model.Record `json:"invoices"`
	Payments      []model.Record `json:"payments"`
}

// previewLimit caps how many rows simulated-mode responses echo back.
const previewLimit = 10

// readLimit caps how many rows the read endpoint returns.
const readLimit = 50
