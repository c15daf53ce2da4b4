package billing

import (
	"testing"
	"time"

	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthOf(t *testing.T, y int, m time.Month) period.Range {
	t.Helper()
	rng, err := period.Resolve(period.ScopeMonthly, time.Date(y, m, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return rng
}

func TestBuildLineTotalsSumToSubtotal(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	cust := &models.Customer{Name: "Asha", Address: "12 Dairy Lane", Phone: "9876543210"}

	entries := []models.MilkEntry{
		{Liter: 2, Price: 100, Date: rng.Start},
		{Liter: 1.5, Price: 82.5, Date: rng.Start.AddDate(0, 0, 3)},
		{Liter: 0.5, Price: 27.33, Date: rng.Start.AddDate(0, 0, 10)},
		{Liter: 3, Price: 149.99, Date: rng.Start.AddDate(0, 0, 20)},
	}

	bill := Build(cust, entries, rng, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	require.Len(t, bill.Lines, 4)

	sum := decimal.Zero
	for _, line := range bill.Lines {
		lt, err := decimal.NewFromString(line.Total)
		require.NoError(t, err)
		sum = sum.Add(lt)
	}
	subtotal, err := decimal.NewFromString(bill.Summary.Subtotal)
	require.NoError(t, err)
	assert.True(t, sum.Equal(subtotal), "sum(line.total)=%s subtotal=%s", sum, subtotal)

	// zero tax: invoice total equals subtotal
	assert.Equal(t, bill.Summary.Subtotal, bill.Summary.InvoiceTotal)
	assert.Equal(t, "0.00", bill.Summary.Tax)
}

func TestBuildDerivesRateFromStoredPrice(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	entries := []models.MilkEntry{{Liter: 2, Price: 110, Date: rng.Start}}

	bill := Build(&models.Customer{}, entries, rng, time.Now())
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, "55.00", bill.Lines[0].Rate)
	assert.Equal(t, "110.00", bill.Lines[0].Total)
	assert.Equal(t, "2", bill.Lines[0].Quantity)
}

func TestBuildZeroLiterEntryGetsZeroRate(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	entries := []models.MilkEntry{{Liter: 0, Price: 50, Date: rng.Start}}

	bill := Build(&models.Customer{}, entries, rng, time.Now())
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, "0.00", bill.Lines[0].Rate)
}

func TestBuildFiltersToRange(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	entries := []models.MilkEntry{
		{Liter: 2, Price: 100, Date: rng.Start},
		{Liter: 2, Price: 100, Date: rng.End}, // March, excluded
	}

	bill := Build(&models.Customer{}, entries, rng, time.Now())
	assert.Len(t, bill.Lines, 1)
	assert.Equal(t, "100.00", bill.Summary.Subtotal)
}

func TestBuildEmpty(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	bill := Build(&models.Customer{Name: "Ravi"}, nil, rng, time.Now())
	assert.Empty(t, bill.Lines)
	assert.Equal(t, "0.00", bill.Summary.Subtotal)
	assert.Equal(t, "0.00", bill.Summary.InvoiceTotal)
}

func TestBuildHeaderFields(t *testing.T) {
	rng := monthOf(t, 2024, time.February)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	bill := Build(&models.Customer{Name: "Asha"}, nil, rng, now)
	assert.Equal(t, "Feb 2024", bill.BillPeriod)
	assert.Equal(t, "01/03/2024", bill.InvoiceDate)
	// due 15 days after the period ends (period ends 1 March)
	assert.Equal(t, "16/03/2024", bill.DueDate)
	assert.Regexp(t, `^INV-\d+$`, bill.InvoiceNo)
	assert.Equal(t, "Asha", bill.BillTo.Name)
}
