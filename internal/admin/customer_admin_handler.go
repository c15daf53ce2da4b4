package admin

import (
	"crypto/sha256"
	"encoding/hex"

	"dairyline-backend/internal/audit"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/customers (all customers with vendor info)
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Preload("Vendor").Order("created_at desc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}
		return c.JSON(customers)
	}
}

// PUT /api/admin/customers/:id/deactivate
func DeactivateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		cust.Active = false
		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate customer")
		}

		actorType, actorID, actorName := actorOpts(c)
		_ = audit.WriteLog(audit.LogOptions{
			ActorType: actorType, ActorID: actorID, ActorName: actorName,
			EntityType: "customer", EntityID: cust.ID,
			Action:      models.AuditActionUpdate,
			Description: "deactivated customer " + cust.Name,
			After:       fiber.Map{"active": false},
		})
		return c.JSON(fiber.Map{"message": "Customer account deactivated successfully."})
	}
}

type ResetPINRequest struct {
	PIN string `json:"pin"`
}

// PUT /api/admin/customers/:id/pin
func ResetCustomerPINHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var body ResetPINRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.PIN) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "PIN must be at least 4 digits")
		}

		var cust models.Customer
		if err := database.DB.First(&cust, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		sum := sha256.Sum256([]byte(body.PIN))
		cust.PINHash = hex.EncodeToString(sum[:])
		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reset customer PIN")
		}
		return c.JSON(fiber.Map{"message": "Customer PIN reset successfully."})
	}
}
