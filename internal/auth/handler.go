package auth

import (
	"strings"

	"dairyline-backend/internal/config"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VendorLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin
// Bootstrap endpoint; refuses once an admin exists.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		var count int64
		database.DB.Model(&models.AdminUser{}).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin account already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		admin := models.AdminUser{Username: body.Username, PasswordHash: string(hash)}
		if err := database.DB.Create(&admin).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create admin")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
		})
	}
}

// POST /api/auth/admin/login
func AdminLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdminLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing username or password")
		}

		var admin models.AdminUser
		if err := database.DB.Where("username = ?", body.Username).First(&admin).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		token, err := GenerateToken(cfg.JWTSecret, models.ActorAdmin, admin.ID, admin.Username, AdminTokenTTL)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"username": admin.Username,
		})
	}
}

// POST /api/vendors/login
// Only approved vendors may log in; others get 403 with their status.
func VendorLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VendorLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing email or password")
		}

		var vendor models.Vendor
		if err := database.DB.Where("email = ?", body.Email).First(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if vendor.Status != models.VendorStatusApproved {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":  "Your account is not approved yet.",
				"status": vendor.Status,
			})
		}

		token, err := GenerateToken(cfg.JWTSecret, models.ActorVendor, vendor.ID, vendor.Name, DefaultTokenTTL)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"vendor": fiber.Map{
				"id":                 vendor.ID,
				"name":               vendor.Name,
				"email":              vendor.Email,
				"status":             vendor.Status,
				"vendor_code":        vendor.VendorCode,
				"default_milk_price": vendor.DefaultMilkPrice,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorType, actorID, name, err := Actor(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"actor_type": actorType,
			"actor_id":   actorID,
			"name":       name,
		})
	}
}
