package admin

import (
	"errors"

	"dairyline-backend/internal/audit"
	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/vendor"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

func actorOpts(c *fiber.Ctx) (models.ActorType, uint, string) {
	actorType, actorID, name, err := auth.Actor(c)
	if err != nil {
		return models.ActorAdmin, 0, ""
	}
	return actorType, actorID, name
}

// GET /api/admin/vendors (admin dashboard)
func ListVendorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Vendor{})
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var vendors []models.Vendor
		if err := dbq.Order("created_at desc").Find(&vendors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list vendors")
		}
		return c.JSON(vendors)
	}
}

// PUT /api/admin/vendors/:id/approve (idempotent)
func ApproveVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		v, changed, err := vendor.Approve(database.DB, id)
		if errors.Is(err, vendor.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not approve vendor")
		}

		message := "Vendor approved"
		if !changed {
			message = "Vendor already approved"
		} else {
			actorType, actorID, actorName := actorOpts(c)
			_ = audit.WriteLog(audit.LogOptions{
				ActorType: actorType, ActorID: actorID, ActorName: actorName,
				EntityType: "vendor", EntityID: v.ID,
				Action:      models.AuditActionUpdate,
				Description: "approved vendor " + v.Name,
				After:       fiber.Map{"status": v.Status},
			})
		}
		return c.JSON(fiber.Map{"message": message, "vendor": v})
	}
}

// PUT /api/admin/vendors/:id/deactivate
func DeactivateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		v, changed, err := vendor.Deactivate(database.DB, id)
		if errors.Is(err, vendor.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate vendor")
		}

		if changed {
			actorType, actorID, actorName := actorOpts(c)
			_ = audit.WriteLog(audit.LogOptions{
				ActorType: actorType, ActorID: actorID, ActorName: actorName,
				EntityType: "vendor", EntityID: v.ID,
				Action:      models.AuditActionUpdate,
				Description: "deactivated vendor " + v.Name,
				After:       fiber.Map{"status": v.Status},
			})
		}
		return c.JSON(fiber.Map{"message": "Vendor account deactivated successfully.", "vendor": v})
	}
}

// DELETE /api/admin/vendors/:id/decline (pending vendors only)
func DeclineVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		err = vendor.Decline(database.DB, id)
		if errors.Is(err, vendor.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		if errors.Is(err, vendor.ErrNotPending) {
			return fiber.NewError(fiber.StatusBadRequest, "Only pending vendors can be declined")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decline vendor")
		}
		return c.JSON(fiber.Map{"message": "Vendor declined and removed"})
	}
}

// DELETE /api/admin/vendors/:id
// Removes the vendor and its milk entries in one transaction.
func DeleteVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		err = vendor.Delete(database.DB, id)
		if errors.Is(err, vendor.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete vendor")
		}

		actorType, actorID, actorName := actorOpts(c)
		_ = audit.WriteLog(audit.LogOptions{
			ActorType: actorType, ActorID: actorID, ActorName: actorName,
			EntityType: "vendor", EntityID: id,
			Action:      models.AuditActionDelete,
			Description: "deleted vendor and related milk entries",
		})
		return c.JSON(fiber.Map{"message": "Vendor and related data deleted successfully"})
	}
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// PUT /api/admin/vendors/:id/password
func ResetVendorPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Password is required")
		}

		var v models.Vendor
		if err := database.DB.First(&v, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}
		v.PasswordHash = string(hash)
		if err := database.DB.Save(&v).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reset vendor password")
		}
		return c.JSON(fiber.Map{"message": "Vendor password reset successfully."})
	}
}
