// Package report is the single aggregation engine for milk entries and
// sales. The old system recomputed these sums ad hoc in half a dozen
// screens; every total in the API now comes from Summarize.
package report

import (
	"math"
	"sort"

	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"
)

type Summary struct {
	TotalLiters float64 `json:"total_liters"`
	MilkCost    float64 `json:"milk_cost"`
	SalesTotal  float64 `json:"sales_total"`
	Net         float64 `json:"net"`        // sales - milk cost
	MarginPct   float64 `json:"margin_pct"` // net / sales * 100, 0 when sales is 0
	MilkEntries int     `json:"milk_entries"`
	SaleCount   int     `json:"sale_count"`
}

// safe maps NaN and infinities to zero so a single bad record cannot
// poison a whole report.
func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Summarize filters both lists by rng (inclusive start, exclusive end on
// the entry's Date) and sums them. Milk cost sums the stored Price, never
// liters times a current rate, so late rate changes don't rewrite totals.
func Summarize(entries []models.MilkEntry, sales []models.Sale, rng period.Range) Summary {
	var s Summary

	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		s.TotalLiters += safe(e.Liter)
		s.MilkCost += safe(e.Price)
		s.MilkEntries++
	}

	for _, sale := range sales {
		if !rng.Contains(sale.Date) {
			continue
		}
		s.SalesTotal += safe(sale.Total)
		s.SaleCount++
	}

	s.Net = s.SalesTotal - s.MilkCost
	if s.SalesTotal != 0 {
		s.MarginPct = s.Net / s.SalesTotal * 100
	}
	return s
}

// UnpaidBalance is the customer-facing outstanding amount: unpaid milk
// prices plus unpaid sale totals.
func UnpaidBalance(entries []models.MilkEntry, sales []models.Sale) float64 {
	var total float64
	for _, e := range entries {
		if e.Status == models.PaymentStatusUnpaid {
			total += safe(e.Price)
		}
	}
	for _, sale := range sales {
		if sale.Status == models.PaymentStatusUnpaid {
			total += safe(sale.Total)
		}
	}
	return total
}

// MonthlyBucket is one month of a per-month breakdown.
type MonthlyBucket struct {
	Month       string  `json:"month"` // "2024-02"
	TotalLiters float64 `json:"total_liters"`
	MilkCost    float64 `json:"milk_cost"`
	SalesTotal  float64 `json:"sales_total"`
}

// GroupByMonth buckets entries and sales by calendar month of their Date,
// returned in ascending month order.
func GroupByMonth(entries []models.MilkEntry, sales []models.Sale) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)

	bucket := func(key string) *MonthlyBucket {
		if b, ok := byMonth[key]; ok {
			return b
		}
		b := &MonthlyBucket{Month: key}
		byMonth[key] = b
		return b
	}

	for _, e := range entries {
		b := bucket(e.Date.Format("2006-01"))
		b.TotalLiters += safe(e.Liter)
		b.MilkCost += safe(e.Price)
	}
	for _, s := range sales {
		b := bucket(s.Date.Format("2006-01"))
		b.SalesTotal += safe(s.Total)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	// months sort correctly as strings in "2006-01" form
	sort.Strings(keys)

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMonth[k])
	}
	return out
}
