package milk

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

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateDefaultsPriceFromVendorRate(t *testing.T) {
	app, db := setupApp(t)

	rate := 55.0
	v := models.Vendor{
		Name: "Test Dairy", Email: "dairy@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-TEST01",
		DefaultMilkPrice: &rate,
	}
	require.NoError(t, db.Create(&v).Error)
	cust := models.Customer{Name: "Asha", Phone: "9000000001", VendorID: &v.ID}
	require.NoError(t, db.Create(&cust).Error)

	app.Post("/milk", asVendor(v.ID), CreateHandler())

	resp := postJSON(t, app, "/milk", fiber.Map{
		"customer_id": cust.ID,
		"session":     "morning",
		"liter":       2.0,
		"date":        "2026-03-05",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry models.MilkEntry
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, 110.0, entry.Price)
	assert.Equal(t, v.ID, entry.VendorID)
	assert.Equal(t, models.PaymentStatusUnpaid, entry.Status)
}

func TestCreateRequiresPriceWithoutVendorRate(t *testing.T) {
	app, db := setupApp(t)

	v := models.Vendor{
		Name: "No Rate Dairy", Email: "norate@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-TEST02",
	}
	require.NoError(t, db.Create(&v).Error)
	cust := models.Customer{Name: "Binu", Phone: "9000000002", VendorID: &v.ID}
	require.NoError(t, db.Create(&cust).Error)

	app.Post("/milk", asVendor(v.ID), CreateHandler())

	resp := postJSON(t, app, "/milk", fiber.Map{
		"customer_id": cust.ID,
		"session":     "evening",
		"liter":       1.0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.MilkEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectsForeignCustomer(t *testing.T) {
	app, db := setupApp(t)

	rate := 50.0
	mine := models.Vendor{
		Name: "Mine", Email: "mine@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-TEST03",
		DefaultMilkPrice: &rate,
	}
	other := models.Vendor{
		Name: "Other", Email: "other@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-TEST04",
	}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&other).Error)
	cust := models.Customer{Name: "Chitra", Phone: "9000000003", VendorID: &other.ID}
	require.NoError(t, db.Create(&cust).Error)

	app.Post("/milk", asVendor(mine.ID), CreateHandler())

	resp := postJSON(t, app, "/milk", fiber.Map{
		"customer_id": cust.ID,
		"session":     "morning",
		"liter":       1.0,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
