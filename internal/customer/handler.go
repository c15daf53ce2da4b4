package customer

import (
	"strings"
	"time"

	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/codes"
	"dairyline-backend/internal/config"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"
	"dairyline-backend/internal/report"
	"dairyline-backend/internal/sms"

	"github.com/gofiber/fiber/v2"
)

type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	VendorID *uint  `json:"vendor_id"`
	PIN      string `json:"pin"`
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

// requireVendorOwnership lets admins and the customer's own token through;
// vendor tokens only reach customers assigned to them.
func requireVendorOwnership(c *fiber.Ctx, cust *models.Customer) error {
	actorType, actorID, _, err := auth.Actor(c)
	if err != nil {
		return err
	}
	if actorType == models.ActorVendor {
		if cust.VendorID == nil || *cust.VendorID != actorID {
			return fiber.NewError(fiber.StatusForbidden, "Customer belongs to another vendor")
		}
	}
	return nil
}

// POST /api/customers
// Vendor entry form: vendors create customers under themselves; admins may
// pass any vendor_id.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if body.Name == "" || body.Phone == "" || body.Address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, phone and address are required")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		vendorID := body.VendorID
		if actorType == models.ActorVendor {
			vendorID = &actorID
		}

		cust := models.Customer{
			Name:         body.Name,
			Phone:        body.Phone,
			Address:      body.Address,
			VendorID:     vendorID,
			Active:       true,
			CustomerCode: codes.Gen("CUS"),
		}
		if body.PIN != "" {
			cust.PINHash = hashValue(body.PIN)
		}

		if err := database.DB.Create(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not create customer (phone may already be registered)")
		}
		return c.Status(fiber.StatusCreated).JSON(cust)
	}
}

// POST /api/customers/register (public self-registration)
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if body.Name == "" || body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and phone are required")
		}

		cust := models.Customer{
			Name:         body.Name,
			Phone:        body.Phone,
			Address:      body.Address,
			VendorID:     body.VendorID,
			Active:       true,
			CustomerCode: codes.Gen("CUS"),
		}
		if body.PIN != "" {
			cust.PINHash = hashValue(body.PIN)
		}

		if err := database.DB.Create(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not register customer (phone may already be registered)")
		}
		return c.Status(fiber.StatusCreated).JSON(cust)
	}
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	VendorID *uint   `json:"vendor_id"`
}

// PUT /api/customers/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		if err := requireVendorOwnership(c, &cust); err != nil {
			return err
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			cust.Name = name
		}
		if body.Phone != nil {
			phone := strings.TrimSpace(*body.Phone)
			if phone == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Phone cannot be empty")
			}
			cust.Phone = phone
		}
		if body.Address != nil {
			cust.Address = *body.Address
		}
		if body.VendorID != nil {
			cust.VendorID = body.VendorID
		}

		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}
		return c.JSON(cust)
	}
}

// DELETE /api/customers/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		if err := requireVendorOwnership(c, &cust); err != nil {
			return err
		}
		if err := database.DB.Delete(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove customer")
		}
		return c.JSON(fiber.Map{"message": "Customer removed"})
	}
}

// GET /api/customers/:id/milk-summary?period=&date=
// Lifetime totals by default; period narrows the window.
func MilkSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := auth.RequireCustomerSelf(c, id); err != nil {
			return err
		}

		var cust models.Customer
		if err := database.DB.First(&cust, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		if err := requireVendorOwnership(c, &cust); err != nil {
			return err
		}

		scopeStr := c.Query("period")
		if scopeStr == "" {
			scopeStr = string(period.ScopeAll)
		}
		rng, err := period.FromQuery(scopeStr, c.Query("date"), time.Now().UTC())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var entries []models.MilkEntry
		database.DB.Where("customer_id = ? AND date >= ? AND date < ?", id, rng.Start, rng.End).Find(&entries)

		s := report.Summarize(entries, nil, rng)
		return c.JSON(fiber.Map{
			"total_liters": s.TotalLiters,
			"total_cost":   s.MilkCost,
		})
	}
}

type SendOTPRequest struct {
	Mobile string `json:"mobile"`
}

// POST /api/customers/send-otp
// Demo mode (OTP_DEMO=true) echoes the code back for local development.
func SendOTPHandler(cfg *config.Config, provider *sms.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SendOTPRequest
		if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Mobile) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing mobile")
		}

		var cust models.Customer
		if err := database.DB.Where("phone = ?", strings.TrimSpace(body.Mobile)).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not registered")
		}
		if !cust.Active {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}

		otp, err := generateOTP()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate OTP")
		}

		expiry := time.Now().Add(otpTTL)
		cust.OTPHash = hashValue(otp)
		cust.OTPExpiry = &expiry
		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store OTP")
		}

		if err := provider.Send(cust.Phone, "Your verification code is "+otp); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to send OTP")
		}

		resp := fiber.Map{"ok": true}
		if cfg.OTPDemo {
			resp["demo_otp"] = otp
		}
		return c.JSON(resp)
	}
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// POST /api/customers/verify-otp
// A valid code marks the customer verified, clears the OTP and issues a
// customer token.
func VerifyOTPHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VerifyOTPRequest
		if err := c.BodyParser(&body); err != nil || body.Mobile == "" || body.OTP == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing mobile or otp")
		}

		var cust models.Customer
		if err := database.DB.Preload("Vendor").Where("phone = ?", strings.TrimSpace(body.Mobile)).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired otp")
		}
		if !otpValid(cust.OTPHash, cust.OTPExpiry, body.OTP, time.Now()) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired otp")
		}

		cust.Verified = true
		cust.OTPHash = ""
		cust.OTPExpiry = nil
		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}

		token, err := auth.GenerateToken(cfg.JWTSecret, models.ActorCustomer, cust.ID, cust.Name, auth.DefaultTokenTTL)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"customer": cust,
		})
	}
}

// POST /api/customers/login
// Email/password and mobile/PIN logins are gone; OTP is the only flow.
func LoginHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest,
			"Password login is deprecated. Use /send-otp and /verify-otp for mobile authentication.")
	}
}
