// Package model defines the domain types shared across the application.
package model

// Record is a loosely-typed invoice or payment as received from upstream
// producers. Producers are inconsistent about key naming: the same logical
// field can arrive as "Balance Due" or "Balance_Due". Record preserves
// whatever keys were sent; resolution happens at read time via Field.
type Record map[string]any

// Field returns the value of the first candidate key that is present and
// non-empty. Nil values and empty strings count as absent. Returns def when
// no candidate matches.
func (r Record) Field(def any, keys ...string) any {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return def
}

// Invoice field key pairs, space-separated variant first.
var (
	KeyDateFormatted    = []string{"Date Formatted", "Date_Formatted"}
	KeyReferenceNumber  = []string{"Reference Number", "Reference_Number"}
	KeyTotalFormatted   = []string{"Total Formatted", "Total_Formatted"}
	KeyBalanceFormatted = []string{"Balance Formatted", "Balance_Formatted"}
	KeyStatus           = []string{"Status"}
	KeyAge              = []string{"Age"}
	KeyInvoiceID        = []string{"Invoice ID", "Invoice_ID"}
	KeyBalanceDue       = []string{"Balance Due", "Balance_Due"}
)

// Payment field key pairs.
var (
	KeyPaymentID    = []string{"Payment ID", "Payment_ID"}
	KeyPaidAmount   = []string{"Paid Amount", "Paid_Amount"}
	KeyUnusedAmount = []string{"Unused Amount", "Unused_Amount"}
)
