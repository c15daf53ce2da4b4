package sale

import (
	"time"

	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type CreateSaleRequest struct {
	VendorID     *uint    `json:"vendor_id"`
	ProductID    uint     `json:"product_id"`
	CustomerID   *uint    `json:"customer_id"`
	CustomerName string   `json:"customer_name"`
	Quantity     float64  `json:"quantity"`
	Total        *float64 `json:"total"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Status       string   `json:"status"`
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

func validStatus(s string) bool {
	return models.PaymentStatus(s) == models.PaymentStatusPaid || models.PaymentStatus(s) == models.PaymentStatusUnpaid
}

// POST /api/sales
// The buyer is either a registered customer or a walk-in name, never both.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
		}
		if body.CustomerID == nil && body.CustomerName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id or customer_name is required")
		}
		if body.CustomerID != nil && body.CustomerName != "" {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id and customer_name are mutually exclusive")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		var vendorID uint
		switch {
		case actorType == models.ActorVendor:
			vendorID = actorID
		case body.VendorID != nil:
			vendorID = *body.VendorID
		default:
			return fiber.NewError(fiber.StatusBadRequest, "vendor_id is required")
		}

		var product models.Product
		if err := database.DB.First(&product, body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		if product.VendorID != nil && *product.VendorID != vendorID {
			return fiber.NewError(fiber.StatusForbidden, "Product belongs to another vendor")
		}

		if body.CustomerID != nil {
			var cust models.Customer
			if err := database.DB.First(&cust, *body.CustomerID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Customer not found")
			}
			if cust.VendorID != nil && *cust.VendorID != vendorID {
				return fiber.NewError(fiber.StatusForbidden, "Customer belongs to another vendor")
			}
		}

		date := time.Now().UTC()
		if body.Date != "" {
			date, err = time.ParseInLocation("2006-01-02", body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
		}

		total := body.Quantity * product.Price
		if body.Total != nil {
			if *body.Total < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "total cannot be negative")
			}
			total = *body.Total
		}

		status := models.PaymentStatusUnpaid
		if body.Status != "" {
			if !validStatus(body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
			}
			status = models.PaymentStatus(body.Status)
		}

		sale := models.Sale{
			VendorID:     vendorID,
			ProductID:    body.ProductID,
			CustomerID:   body.CustomerID,
			CustomerName: body.CustomerName,
			Quantity:     body.Quantity,
			Total:        total,
			Date:         date,
			Status:       status,
		}
		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create sale")
		}
		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}

// GET /api/sales?period=&date=&customer=&status=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, err := period.FromQuery(c.Query("period"), c.Query("date"), time.Now().UTC())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dbq := database.DB.Preload("Product").Preload("Customer").
			Where("date >= ? AND date < ?", rng.Start, rng.End)

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor {
			dbq = dbq.Where("vendor_id = ?", actorID)
		}
		if customer := c.QueryInt("customer"); customer > 0 {
			dbq = dbq.Where("customer_id = ?", customer)
		}
		if status := c.Query("status"); status != "" {
			if !validStatus(status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
			}
			dbq = dbq.Where("status = ?", status)
		}

		var sales []models.Sale
		if err := dbq.Order("date asc").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}
		return c.JSON(sales)
	}
}

type UpdateSaleRequest struct {
	ProductID *uint    `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
	Total     *float64 `json:"total"`
	Status    *string  `json:"status"`
	Date      *string  `json:"date"`
}

// PUT /api/sales/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := database.DB.First(&sale, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor && sale.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Sale belongs to another vendor")
		}

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID != nil {
			var product models.Product
			if err := database.DB.First(&product, *body.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			if product.VendorID != nil && *product.VendorID != sale.VendorID {
				return fiber.NewError(fiber.StatusForbidden, "Product belongs to another vendor")
			}
			sale.ProductID = *body.ProductID
		}
		if body.Quantity != nil {
			if *body.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
			}
			sale.Quantity = *body.Quantity
		}
		if body.Total != nil {
			if *body.Total < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "total cannot be negative")
			}
			sale.Total = *body.Total
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
			}
			sale.Status = models.PaymentStatus(*body.Status)
		}
		if body.Date != nil {
			date, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			sale.Date = date
		}

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update sale")
		}
		return c.JSON(sale)
	}
}

// PUT /api/sales/:id/status
func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if !validStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
		}

		var sale models.Sale
		if err := database.DB.First(&sale, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor && sale.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Sale belongs to another vendor")
		}

		sale.Status = models.PaymentStatus(body.Status)
		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update sale status")
		}
		return c.JSON(sale)
	}
}

// DELETE /api/sales/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := database.DB.First(&sale, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor && sale.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Sale belongs to another vendor")
		}

		if err := database.DB.Delete(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete sale")
		}
		return c.JSON(fiber.Map{"message": "Sale deleted"})
	}
}
