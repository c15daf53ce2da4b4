package billing

import (
	"net/http/httptest"
	"testing"
	"time"

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

func TestGetBillVendorScoping(t *testing.T) {
	app, db := setupApp(t)

	owner := models.Vendor{
		Name: "Owner Dairy", Email: "owner@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-OWNER2",
	}
	intruder := models.Vendor{
		Name: "Other Dairy", Email: "other@example.com", PasswordHash: "x",
		Status: models.VendorStatusApproved, VendorCode: "VND-OTHER2",
	}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&intruder).Error)

	cust := models.Customer{
		Name: "Asha", Phone: "9000000010", VendorID: &owner.ID,
		Active: true, CustomerCode: "CUS-BILL01",
	}
	require.NoError(t, db.Create(&cust).Error)
	entry := models.MilkEntry{
		VendorID: owner.ID, CustomerID: cust.ID,
		Session: models.SessionMorning, Liter: 2, Price: 110,
		Date: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&entry).Error)

	app.Get("/owner/:id/bill", asVendor(owner.ID), GetBillHandler())
	app.Get("/other/:id/bill", asVendor(intruder.ID), GetBillHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/other/1/bill", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/owner/1/bill", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
