package milk

import (
	"time"

	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type CreateMilkRequest struct {
	CustomerID uint     `json:"customer_id"`
	VendorID   *uint    `json:"vendor_id"`
	Session    string   `json:"session"`
	Liter      float64  `json:"liter"`
	Price      *float64 `json:"price"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Status     string   `json:"status"`
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

func validSession(s string) bool {
	return models.MilkSession(s) == models.SessionMorning || models.MilkSession(s) == models.SessionEvening
}

func validStatus(s string) bool {
	return models.PaymentStatus(s) == models.PaymentStatusPaid || models.PaymentStatus(s) == models.PaymentStatusUnpaid
}

// POST /api/milk
// Price defaults to liter times the vendor's current rate and is stored;
// it is never recomputed when the rate changes later.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMilkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustomerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id is required")
		}
		if !validSession(body.Session) {
			return fiber.NewError(fiber.StatusBadRequest, "session must be morning or evening")
		}
		if body.Liter <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "liter must be positive")
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

		var vendor models.Vendor
		if err := database.DB.First(&vendor, vendorID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}

		var cust models.Customer
		if err := database.DB.First(&cust, body.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		if cust.VendorID != nil && *cust.VendorID != vendorID {
			return fiber.NewError(fiber.StatusForbidden, "Customer belongs to another vendor")
		}

		date := time.Now().UTC()
		if body.Date != "" {
			date, err = time.ParseInLocation("2006-01-02", body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
		}

		var price float64
		switch {
		case body.Price != nil:
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			price = *body.Price
		case vendor.DefaultMilkPrice != nil:
			price = body.Liter * *vendor.DefaultMilkPrice
		default:
			return fiber.NewError(fiber.StatusBadRequest, "price is required when the vendor has no default milk price")
		}

		status := models.PaymentStatusUnpaid
		if body.Status != "" {
			if !validStatus(body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
			}
			status = models.PaymentStatus(body.Status)
		}

		entry := models.MilkEntry{
			VendorID:   vendorID,
			CustomerID: body.CustomerID,
			Session:    models.MilkSession(body.Session),
			Liter:      body.Liter,
			Price:      price,
			Date:       date,
			Status:     status,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create milk entry")
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// GET /api/milk?period=&date=&session=
// Admins see everything; vendor tokens are pinned to their own entries.
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng, err := period.FromQuery(c.Query("period"), c.Query("date"), time.Now().UTC())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dbq := database.DB.Preload("Customer").Where("date >= ? AND date < ?", rng.Start, rng.End)

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor {
			dbq = dbq.Where("vendor_id = ?", actorID)
		}
		if session := c.Query("session"); session != "" && session != "All Sessions" {
			dbq = dbq.Where("session = ?", session)
		}

		var entries []models.MilkEntry
		if err := dbq.Order("date asc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list milk entries")
		}
		return c.JSON(entries)
	}
}

type UpdateMilkRequest struct {
	Session *string  `json:"session"`
	Liter   *float64 `json:"liter"`
	Price   *float64 `json:"price"`
	Status  *string  `json:"status"`
	Date    *string  `json:"date"`
}

// PUT /api/milk/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var entry models.MilkEntry
		if err := database.DB.First(&entry, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Milk entry not found")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor && entry.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Milk entry belongs to another vendor")
		}

		var body UpdateMilkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Session != nil {
			if !validSession(*body.Session) {
				return fiber.NewError(fiber.StatusBadRequest, "session must be morning or evening")
			}
			entry.Session = models.MilkSession(*body.Session)
		}
		if body.Liter != nil {
			if *body.Liter <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "liter must be positive")
			}
			entry.Liter = *body.Liter
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			entry.Price = *body.Price
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be paid or unpaid")
			}
			entry.Status = models.PaymentStatus(*body.Status)
		}
		if body.Date != nil {
			d, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			entry.Date = d
		}

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update milk entry")
		}
		return c.JSON(entry)
	}
}

// DELETE /api/milk/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var entry models.MilkEntry
		if err := database.DB.First(&entry, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Milk entry not found")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		if actorType == models.ActorVendor && entry.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Milk entry belongs to another vendor")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete milk entry")
		}
		return c.JSON(fiber.Map{"message": "Milk entry deleted"})
	}
}
