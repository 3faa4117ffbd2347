package statement

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/soa/internal/model"
)

func testBuilder(rate float64) *Builder {
	b := NewBuilder(rate, discardLogger())
	b.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return b
}

func TestBuild_NilInputsTreatedAsEmpty(t *testing.T) {
	b := testBuilder(1.5)

	rows, summary := b.Build(nil, nil)

	assert.Empty(t, summary.Error)
	assert.Equal(t, 0, summary.InvoicesCount)
	assert.Equal(t, 0, summary.PaymentsCount)
	assert.Zero(t, summary.TotalBalanceDue)
	assert.Zero(t, summary.NetOutstanding)
	assert.Equal(t, 0, summary.StatusCounts.Len())
	assert.Equal(t, len(rows), summary.RowsWritten)
	assert.NotEmpty(t, rows) // header and summary scaffolding is always emitted
}

func TestBuild_InterestComputation(t *testing.T) {
	b := testBuilder(1.5)

	rows, summary := b.Build([]model.Record{
		{"Balance Due": 1000.0, "Age": 30, "Status": "Overdue", "Invoice ID": "INV-001"},
	}, nil)

	// 1000 * (1.015^1 - 1) = 15.0
	assert.InDelta(t, 15.0, summary.TotalInterest, 1e-9)
	assert.InDelta(t, 1000.0, summary.TotalBalanceDue, 1e-9)
	assert.InDelta(t, 1015.0, summary.TotalBalancePlusInterest, 1e-9)

	invoiceRow := rows[8] // 6 header rows, section title, column header
	require.Len(t, invoiceRow, 10)
	assert.InDelta(t, 15.0, invoiceRow[4].(float64), 1e-9)
	assert.InDelta(t, 1015.0, invoiceRow[5].(float64), 1e-9)
	assert.Equal(t, "30", invoiceRow[7])
	assert.Equal(t, "INV-001", invoiceRow[8])
	assert.InDelta(t, 1000.0, invoiceRow[9].(float64), 1e-9)
}

func TestBuild_FractionalMonths(t *testing.T) {
	b := testBuilder(1.5)

	_, summary := b.Build([]model.Record{
		{"Balance Due": 1000.0, "Age": 45},
	}, nil)

	want := 1000.0 * (math.Pow(1.015, 1.5) - 1)
	assert.InDelta(t, want, summary.TotalInterest, 1e-9)
}

func TestBuild_NegativeAgeClamped(t *testing.T) {
	b := testBuilder(1.5)

	rows, summary := b.Build([]model.Record{
		{"Balance Due": 500.0, "Age": -10},
	}, nil)

	assert.Zero(t, summary.TotalInterest)
	assert.InDelta(t, 500.0, summary.TotalBalancePlusInterest, 1e-9)

	invoiceRow := rows[8]
	assert.Equal(t, "0", invoiceRow[7])
}

func TestBuild_DualKeyEquivalence(t *testing.T) {
	b := testBuilder(1.5)

	_, spaced := b.Build([]model.Record{
		{"Balance Due": 1000.0, "Age": 60, "Status": "Sent"},
	}, nil)
	_, underscored := b.Build([]model.Record{
		{"Balance_Due": 1000.0, "Age": 60, "Status": "Sent"},
	}, nil)

	assert.Equal(t, spaced.TotalInterest, underscored.TotalInterest)
	assert.Equal(t, spaced.TotalBalancePlusInterest, underscored.TotalBalancePlusInterest)
}

func TestBuild_StringAmountsCoerced(t *testing.T) {
	b := testBuilder(1.5)

	_, summary := b.Build(
		[]model.Record{{"Balance Due": "₹1,234.50", "Age": "0"}},
		[]model.Record{{"Paid Amount": "$300", "Unused Amount": "abc"}},
	)

	assert.InDelta(t, 1234.50, summary.TotalBalanceDue, 1e-9)
	assert.InDelta(t, 300.0, summary.TotalPaidAmount, 1e-9)
	assert.Zero(t, summary.TotalUnusedAmount) // unparsable degrades to 0
}

func TestBuild_StatusCounts(t *testing.T) {
	b := testBuilder(1.5)

	_, summary := b.Build([]model.Record{
		{"Status": "Overdue"},
		{"Status": "Paid"},
		{"Status": "Overdue"},
		{"Status": "   "}, // blank after trimming
		{},                // missing entirely
	}, nil)

	assert.Equal(t, []string{"Overdue", "Paid", "Unknown"}, summary.StatusCounts.Labels())
	assert.Equal(t, 2, summary.StatusCounts.Get("Overdue"))
	assert.Equal(t, 1, summary.StatusCounts.Get("Paid"))
	assert.Equal(t, 2, summary.StatusCounts.Get("Unknown"))
	assert.Equal(t, summary.InvoicesCount, summary.StatusCounts.Total())
}

func TestBuild_NetOutstanding(t *testing.T) {
	b := testBuilder(1.5)

	_, summary := b.Build(
		[]model.Record{{"Balance Due": 500.0, "Age": 0}},
		[]model.Record{{"Paid Amount": 300.0, "Unused Amount": 50.0}},
	)

	// 500 - (300 - 50) = 250
	assert.InDelta(t, 250.0, summary.NetOutstanding, 1e-9)
}

func TestBuild_RowOrder(t *testing.T) {
	b := testBuilder(2.0)

	invoices := []model.Record{
		{"Date Formatted": "01/02/2024", "Reference Number": "REF-9", "Total Formatted": "₹1,000.00",
			"Balance Formatted": "₹1,000.00", "Status": "Overdue", "Age": 30,
			"Invoice ID": "INV-9", "Balance Due": 1000.0},
	}
	payments := []model.Record{
		{"Payment ID": "PAY-1", "Paid Amount": 200.0, "Unused Amount": 10.0},
	}

	rows, summary := b.Build(invoices, payments)

	separator := strings.Repeat("=", 80)

	assert.Equal(t, []any{"STATEMENT OF ACCOUNTS"}, rows[0])
	assert.Equal(t, []any{"Generated on: 2024-03-15 10:30:00"}, rows[1])
	assert.Equal(t, []any{"Interest rate (per month): 2%"}, rows[2])
	assert.Equal(t, []any{""}, rows[3])
	assert.Equal(t, []any{separator}, rows[4])
	assert.Equal(t, []any{""}, rows[5])

	assert.Equal(t, []any{"INVOICES SECTION"}, rows[6])
	assert.Equal(t, []any{"Date", "Reference", "Total", "Balance", "Interest", "Total Balance", "Status", "Age", "Invoice ID", "Balance Due"}, rows[7])
	assert.Equal(t, "01/02/2024", rows[8][0])
	assert.Equal(t, "REF-9", rows[8][1])

	assert.Equal(t, []any{""}, rows[9])
	assert.Equal(t, []any{separator}, rows[10])
	assert.Equal(t, []any{""}, rows[11])

	assert.Equal(t, []any{"PAYMENTS SECTION"}, rows[12])
	assert.Equal(t, []any{"Payment ID", "Paid Amount", "Unused Amount"}, rows[13])
	assert.Equal(t, []any{"PAY-1", 200.0, 10.0}, rows[14])

	assert.Equal(t, []any{""}, rows[15])
	assert.Equal(t, []any{separator}, rows[16])
	assert.Equal(t, []any{""}, rows[17])

	assert.Equal(t, []any{"FINANCIAL SUMMARY"}, rows[18])
	assert.Equal(t, []any{""}, rows[19])
	assert.Equal(t, "Total Balance Due:", rows[20][0])
	assert.Equal(t, "Total Interest:", rows[21][0])
	assert.Equal(t, "Total (Balance + Interest):", rows[22][0])
	assert.Equal(t, "Total Paid Amount:", rows[23][0])
	assert.Equal(t, "Total Unused Amount:", rows[24][0])
	assert.Equal(t, "Net Outstanding (Balance - Paid + Unused):", rows[25][0])
	assert.Equal(t, []any{""}, rows[26])
	assert.Equal(t, []any{"INVOICE STATUS BREAKDOWN:"}, rows[27])
	assert.Equal(t, []any{"Overdue:", 1}, rows[28])
	assert.Equal(t, []any{""}, rows[29])
	assert.Equal(t, []any{"Total Invoices: 1"}, rows[30])
	assert.Equal(t, []any{"Total Payments: 1"}, rows[31])
	assert.Equal(t, []any{"Total Records: 2"}, rows[32])
	assert.Equal(t, []any{""}, rows[33])
	assert.Equal(t, []any{separator}, rows[34])

	assert.Len(t, rows, 35)
	assert.Equal(t, 35, summary.RowsWritten)
}

func TestBuild_RowsWrittenDeterministic(t *testing.T) {
	b := testBuilder(1.5)

	invoices := []model.Record{
		{"Balance Due": 100.0, "Age": 10, "Status": "Sent"},
		{"Balance Due": 250.0, "Age": 95, "Status": "Overdue"},
	}
	payments := []model.Record{
		{"Payment ID": "P-1", "Paid Amount": 50.0},
	}

	rows1, summary1 := b.Build(invoices, payments)
	rows2, summary2 := b.Build(invoices, payments)

	assert.Equal(t, len(rows1), summary1.RowsWritten)
	assert.Equal(t, summary1.RowsWritten, summary2.RowsWritten)
	assert.Equal(t, rows1, rows2)
	assert.Equal(t, summary1, summary2)
}

func TestBuild_DuplicateInvoicesSummedIndependently(t *testing.T) {
	b := testBuilder(1.5)

	inv := model.Record{"Balance Due": 100.0, "Age": 0, "Invoice ID": "INV-D"}
	_, summary := b.Build([]model.Record{inv, inv}, nil)

	assert.InDelta(t, 200.0, summary.TotalBalanceDue, 1e-9)
	assert.Equal(t, 2, summary.InvoicesCount)
}

func TestBuild_NonFiniteInterestDegradesToZero(t *testing.T) {
	b := testBuilder(1.5)

	// math.MaxInt age drives the exponent far past float range.
	_, summary := b.Build([]model.Record{
		{"Balance Due": 1000.0, "Age": math.MaxInt32},
	}, nil)

	assert.Zero(t, summary.TotalInterest)
	assert.InDelta(t, 1000.0, summary.TotalBalancePlusInterest, 1e-9)
	assert.Empty(t, summary.Error)
}
