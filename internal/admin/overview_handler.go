package admin

import (
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MilkRate struct {
	VendorID   uint     `json:"vendor_id"`
	VendorName string   `json:"vendor_name"`
	VendorCode string   `json:"vendor_code"`
	Price      *float64 `json:"price"`
}

// GET /api/admin/milk-rates
// Per-vendor default milk rate overview.
func MilkRatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vendors []models.Vendor
		if err := database.DB.Order("name asc").Find(&vendors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list milk rates")
		}

		rates := make([]MilkRate, 0, len(vendors))
		for _, v := range vendors {
			rates = append(rates, MilkRate{
				VendorID:   v.ID,
				VendorName: v.Name,
				VendorCode: v.VendorCode,
				Price:      v.DefaultMilkPrice,
			})
		}
		return c.JSON(rates)
	}
}

type CustomerPaymentSummary struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalPaid    float64 `json:"total_paid"`
	TotalUnpaid  float64 `json:"total_unpaid"`
}

// GET /api/admin/customer-payments
// Paid/unpaid sale totals grouped by registered customer. Walk-in sales
// have no customer record and are excluded.
func CustomerPaymentsOverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sales []models.Sale
		if err := database.DB.Preload("Customer").
			Where("customer_id IS NOT NULL").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customer payments")
		}

		byCustomer := make(map[uint]*CustomerPaymentSummary)
		order := make([]uint, 0)
		for _, s := range sales {
			if s.CustomerID == nil {
				continue
			}
			sum, ok := byCustomer[*s.CustomerID]
			if !ok {
				sum = &CustomerPaymentSummary{
					CustomerID:   *s.CustomerID,
					CustomerName: s.BuyerLabel(),
				}
				byCustomer[*s.CustomerID] = sum
				order = append(order, *s.CustomerID)
			}
			if s.Status == models.PaymentStatusPaid {
				sum.TotalPaid += s.Total
			} else {
				sum.TotalUnpaid += s.Total
			}
		}

		out := make([]CustomerPaymentSummary, 0, len(order))
		for _, id := range order {
			out = append(out, *byCustomer[id])
		}
		return c.JSON(out)
	}
}
