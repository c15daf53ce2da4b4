// Package billing turns a customer's milk entries for a period into an
// itemized bill, renders it to PDF and serves the stored files.
package billing

import (
	"fmt"
	"time"

	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"

	"github.com/shopspring/decimal"
)

// Line totals, subtotal and invoice total are decimal strings so the
// sum(line.total) == subtotal invariant holds exactly; float rendering
// differences would break it on long bills.
type BillLine struct {
	Date        string `json:"date"` // "15 Feb"
	Description string `json:"item_description"`
	Quantity    string `json:"quantity"` // liters
	Rate        string `json:"rate"`     // price per liter, derived
	Total       string `json:"total"`
}

type BillTo struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type BillSummary struct {
	Subtotal     string `json:"subtotal"`
	Tax          string `json:"tax"`
	InvoiceTotal string `json:"invoice_total"`
}

type Bill struct {
	InvoiceNo   string      `json:"invoice_no"`
	InvoiceDate string      `json:"invoice_date"` // "02/01/2006"
	BillPeriod  string      `json:"bill_period"`  // "Feb 2024"
	DueDate     string      `json:"due_date"`
	BillTo      BillTo      `json:"bill_to"`
	Lines       []BillLine  `json:"itemized_details"`
	Summary     BillSummary `json:"summary"`
}

const dueDays = 15

// Build constructs the bill for a customer from entries already filtered
// to rng. The per-liter rate is derived from the stored price, never from
// the vendor's current rate.
func Build(cust *models.Customer, entries []models.MilkEntry, rng period.Range, now time.Time) Bill {
	lines := make([]BillLine, 0, len(entries))
	subtotal := decimal.Zero

	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		price := decimal.NewFromFloat(e.Price)
		liter := decimal.NewFromFloat(e.Liter)

		rate := decimal.Zero
		if !liter.IsZero() {
			rate = price.DivRound(liter, 2)
		}

		lines = append(lines, BillLine{
			Date:        e.Date.Format("2 Jan"),
			Description: "Cow Milk",
			Quantity:    liter.String(),
			Rate:        rate.StringFixed(2),
			Total:       price.StringFixed(2),
		})
		subtotal = subtotal.Add(price.Round(2))
	}

	tax := decimal.Zero
	total := subtotal.Add(tax)

	return Bill{
		InvoiceNo:   fmt.Sprintf("INV-%d", now.UnixMilli()),
		InvoiceDate: now.Format("02/01/2006"),
		BillPeriod:  rng.Start.Format("Jan 2006"),
		DueDate:     rng.End.AddDate(0, 0, dueDays).Format("02/01/2006"),
		BillTo: BillTo{
			Name:          cust.Name,
			Address:       cust.Address,
			ContactNumber: cust.Phone,
		},
		Lines: lines,
		Summary: BillSummary{
			Subtotal:     subtotal.StringFixed(2),
			Tax:          tax.StringFixed(2),
			InvoiceTotal: total.StringFixed(2),
		},
	}
}
