// Package statement computes statement-of-accounts rows and summary totals
// from loosely-typed invoice and payment records. The computation is pure
// and stateless: no I/O, no shared state, and by contract it never fails —
// bad records degrade to defaults and whole-batch problems degrade to an
// empty statement with an error annotation.
package statement

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/soa/internal/model"
)

// DefaultMonthlyRate is the interest rate (percent per 30-day period)
// applied when the caller does not configure one.
const DefaultMonthlyRate = 1.5

const separatorWidth = 80

// Builder computes statements with a fixed monthly interest rate.
type Builder struct {
	logger      *slog.Logger
	now         func() time.Time
	monthlyRate float64
}

// NewBuilder returns a Builder applying monthlyRate percent per 30-day
// period. A nil logger falls back to slog.Default.
func NewBuilder(monthlyRate float64, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		monthlyRate: monthlyRate,
		logger:      logger,
		now:         time.Now,
	}
}

// MonthlyRate returns the rate this builder applies.
func (b *Builder) MonthlyRate() float64 {
	return b.monthlyRate
}

// Build computes the ordered sheet rows and summary for the given invoices
// and payments. Nil collections are treated as empty. Build never returns
// an error: per-record problems are logged and defaulted, and an unexpected
// failure yields an empty row set plus a summary carrying the error.
func (b *Builder) Build(invoices, payments []model.Record) (rows [][]any, summary Summary) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("error preparing statement data", "error", r)
			rows = [][]any{}
			summary = Summary{
				Error:        fmt.Sprint(r),
				StatusCounts: NewStatusCounts(),
			}
		}
	}()

	if invoices == nil {
		invoices = []model.Record{}
	}
	if payments == nil {
		payments = []model.Record{}
	}

	b.logger.Info("processing statement",
		"invoices", len(invoices),
		"payments", len(payments))

	var totalPaid, totalUnused float64
	for _, pay := range payments {
		totalPaid += SafeFloat(pay.Field(0, model.KeyPaidAmount...), 0, b.logger)
		totalUnused += SafeFloat(pay.Field(0, model.KeyUnusedAmount...), 0, b.logger)
	}

	statuses := NewStatusCounts()
	for _, inv := range invoices {
		statuses.Add(b.statusLabel(inv))
	}

	separator := strings.Repeat("=", separatorWidth)

	// Header(6) + invoice header(2) + invoices + separator(3) +
	// payment header(2) + payments + separator(3) + summary(10) +
	// statuses + footer(6)
	estimated := 32 + len(invoices) + len(payments) + statuses.Len()
	rows = make([][]any, 0, estimated)

	rows = append(rows,
		[]any{"STATEMENT OF ACCOUNTS"},
		[]any{fmt.Sprintf("Generated on: %s", b.now().Format("2006-01-02 15:04:05"))},
		[]any{fmt.Sprintf("Interest rate (per month): %v%%", b.monthlyRate)},
		[]any{""},
		[]any{separator},
		[]any{""},
	)

	rows = append(rows,
		[]any{"INVOICES SECTION"},
		[]any{"Date", "Reference", "Total", "Balance", "Interest", "Total Balance", "Status", "Age", "Invoice ID", "Balance Due"},
	)

	var totalBalanceDue, totalInterest, totalTotalBalance float64
	for _, inv := range invoices {
		balanceDue := SafeFloat(inv.Field(0, model.KeyBalanceDue...), 0, b.logger)
		ageDays := SafeInt(inv.Field(0, model.KeyAge...), 0, b.logger)
		if ageDays < 0 {
			ageDays = 0
		}

		totalBalanceDue += balanceDue

		interest := b.interestFor(inv, balanceDue, ageDays)
		totalBalance := balanceDue + interest

		totalInterest += interest
		totalTotalBalance += totalBalance

		// Interest, total balance and balance due stay raw floats; no
		// rounding or currency formatting.
		rows = append(rows, []any{
			asText(inv.Field("", model.KeyDateFormatted...)),
			asText(inv.Field("", model.KeyReferenceNumber...)),
			asText(inv.Field("", model.KeyTotalFormatted...)),
			asText(inv.Field("", model.KeyBalanceFormatted...)),
			interest,
			totalBalance,
			asText(inv.Field("", model.KeyStatus...)),
			strconv.Itoa(ageDays),
			asText(inv.Field("", model.KeyInvoiceID...)),
			balanceDue,
		})
	}

	rows = append(rows, []any{""}, []any{separator}, []any{""})

	rows = append(rows,
		[]any{"PAYMENTS SECTION"},
		[]any{"Payment ID", "Paid Amount", "Unused Amount"},
	)

	for _, pay := range payments {
		rows = append(rows, []any{
			asText(pay.Field("", model.KeyPaymentID...)),
			SafeFloat(pay.Field(0, model.KeyPaidAmount...), 0, b.logger),
			SafeFloat(pay.Field(0, model.KeyUnusedAmount...), 0, b.logger),
		})
	}

	rows = append(rows, []any{""}, []any{separator}, []any{""})

	netOutstanding := totalBalanceDue - (totalPaid - totalUnused)
	rows = append(rows,
		[]any{"FINANCIAL SUMMARY"},
		[]any{""},
		[]any{"Total Balance Due:", totalBalanceDue},
		[]any{"Total Interest:", totalInterest},
		[]any{"Total (Balance + Interest):", totalTotalBalance},
		[]any{"Total Paid Amount:", totalPaid},
		[]any{"Total Unused Amount:", totalUnused},
		[]any{"Net Outstanding (Balance - Paid + Unused):", netOutstanding},
		[]any{""},
		[]any{"INVOICE STATUS BREAKDOWN:"},
	)

	for _, label := range statuses.Labels() {
		rows = append(rows, []any{label + ":", statuses.Get(label)})
	}

	rows = append(rows,
		[]any{""},
		[]any{fmt.Sprintf("Total Invoices: %d", len(invoices))},
		[]any{fmt.Sprintf("Total Payments: %d", len(payments))},
		[]any{fmt.Sprintf("Total Records: %d", len(invoices)+len(payments))},
		[]any{""},
		[]any{separator},
	)

	summary = Summary{
		TotalBalanceDue:          totalBalanceDue,
		TotalInterest:            totalInterest,
		TotalBalancePlusInterest: totalTotalBalance,
		TotalPaidAmount:          totalPaid,
		TotalUnusedAmount:        totalUnused,
		NetOutstanding:           netOutstanding,
		StatusCounts:             statuses,
		InvoicesCount:            len(invoices),
		PaymentsCount:            len(payments),
		RowsWritten:              len(rows),
	}

	b.logger.Info("statement preparation complete", "rows", len(rows))

	return rows, summary
}

// interestFor computes monthly-compound interest accrued over fractional
// months (age in days divided by 30, deliberately not calendar months). A
// non-finite power result degrades to zero interest for that invoice.
func (b *Builder) interestFor(inv model.Record, balanceDue float64, ageDays int) float64 {
	months := float64(ageDays) / 30.0
	factor := math.Pow(1+b.monthlyRate/100.0, months)
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		b.logger.Warn("could not compute interest for invoice",
			"invoice_id", asText(inv.Field("?", model.KeyInvoiceID...)),
			"age_days", ageDays)
		return 0
	}
	return balanceDue * (factor - 1.0)
}

func (b *Builder) statusLabel(inv model.Record) string {
	label := strings.TrimSpace(asText(inv.Field("Unknown", model.KeyStatus...)))
	if label == "" {
		return "Unknown"
	}
	return label
}

func asText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
