package customer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vendor{}, &models.Customer{}, &models.MilkEntry{}))
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return app, db
}

func asVendor(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(auth.CtxActorTypeKey, models.ActorVendor)
		c.Locals(auth.CtxActorIDKey, id)
		c.Locals(auth.CtxActorNameKey, "Test Dairy")
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func seedVendors(t *testing.T, db *gorm.DB) (*models.Vendor, *models.Vendor) {
	t.Helper()
	owner := &models.Vendor{
		Name: "Owner Dairy", Email: "owner@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-OWNER1",
	}
	intruder := &models.Vendor{
		Name: "Other Dairy", Email: "other@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-OTHER1",
	}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(intruder).Error)
	return owner, intruder
}

func TestUpdateRejectsForeignVendor(t *testing.T) {
	app, db := setupApp(t)
	owner, intruder := seedVendors(t, db)

	cust := models.Customer{
		Name: "Asha", Phone: "9000000001", VendorID: &owner.ID,
		Active: true, CustomerCode: "CUS-TEST01",
	}
	require.NoError(t, db.Create(&cust).Error)

	app.Put("/customers/:id", asVendor(intruder.ID), UpdateHandler())

	resp := doJSON(t, app, "PUT", "/customers/1", fiber.Map{"name": "Hijacked"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var got models.Customer
	require.NoError(t, db.First(&got, cust.ID).Error)
	assert.Equal(t, "Asha", got.Name)
}

func TestUpdateAllowsOwningVendor(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := seedVendors(t, db)

	cust := models.Customer{
		Name: "Asha", Phone: "9000000002", VendorID: &owner.ID,
		Active: true, CustomerCode: "CUS-TEST02",
	}
	require.NoError(t, db.Create(&cust).Error)

	app.Put("/customers/:id", asVendor(owner.ID), UpdateHandler())

	resp := doJSON(t, app, "PUT", "/customers/1", fiber.Map{"name": "Asha Devi"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Customer
	require.NoError(t, db.First(&got, cust.ID).Error)
	assert.Equal(t, "Asha Devi", got.Name)
}

func TestDeleteRejectsForeignVendor(t *testing.T) {
	app, db := setupApp(t)
	owner, intruder := seedVendors(t, db)

	cust := models.Customer{
		Name: "Binu", Phone: "9000000003", VendorID: &owner.ID,
		Active: true, CustomerCode: "CUS-TEST03",
	}
	require.NoError(t, db.Create(&cust).Error)

	app.Delete("/customers/:id", asVendor(intruder.ID), DeleteHandler())

	resp := doJSON(t, app, "DELETE", "/customers/1", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", cust.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMilkSummaryRejectsForeignVendor(t *testing.T) {
	app, db := setupApp(t)
	owner, intruder := seedVendors(t, db)

	cust := models.Customer{
		Name: "Chitra", Phone: "9000000004", VendorID: &owner.ID,
		Active: true, CustomerCode: "CUS-TEST04",
	}
	require.NoError(t, db.Create(&cust).Error)

	app.Get("/customers/:id/milk-summary", asVendor(intruder.ID), MilkSummaryHandler())

	resp := doJSON(t, app, "GET", "/customers/1/milk-summary", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
