package billing

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/config"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/period"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

func billForCustomer(c *fiber.Ctx, customerID uint) (*Bill, error) {
	var cust models.Customer
	if err := database.DB.First(&cust, customerID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Customer not found")
	}

	// vendor tokens only bill their own customers
	actorType, actorID, _, err := auth.Actor(c)
	if err != nil {
		return nil, err
	}
	if actorType == models.ActorVendor {
		if cust.VendorID == nil || *cust.VendorID != actorID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Customer belongs to another vendor")
		}
	}

	scopeStr := c.Query("period")
	if scopeStr == "" {
		scopeStr = string(period.ScopeMonthly)
	}
	rng, err := period.FromQuery(scopeStr, c.Query("date"), time.Now().UTC())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var entries []models.MilkEntry
	if err := database.DB.
		Where("customer_id = ? AND date >= ? AND date < ?", customerID, rng.Start, rng.End).
		Order("date asc").Find(&entries).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load milk entries")
	}

	bill := Build(&cust, entries, rng, time.Now().UTC())
	return &bill, nil
}

// GET /api/milk/customer/:id/bill?period=monthly
func GetBillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := auth.RequireCustomerSelf(c, customerID); err != nil {
			return err
		}

		bill, err := billForCustomer(c, customerID)
		if err != nil {
			return err
		}
		return c.JSON(bill)
	}
}

// POST /api/milk/customer/:id/bill/pdf?period=monthly
// Renders the bill server-side, stores the PDF and returns its download
// URL.
func RenderBillPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := auth.RequireCustomerSelf(c, customerID); err != nil {
			return err
		}

		bill, err := billForCustomer(c, customerID)
		if err != nil {
			return err
		}

		pdf, err := RenderPDF(c.Context(), bill)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render bill PDF")
		}

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not prepare upload directory")
		}
		filename := "bill-" + uuid.NewString() + ".pdf"
		if err := os.WriteFile(filepath.Join(cfg.UploadDir, filename), pdf, 0o644); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store bill PDF")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"invoice_no": bill.InvoiceNo,
			"filename":   filename,
			"file_url":   "/api/milk/download/" + filename,
		})
	}
}

// POST /api/milk/upload-bill (multipart field "bill_pdf")
// Kept for clients that still generate the PDF themselves.
func UploadBillHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("bill_pdf")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
		}
		if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
			return fiber.NewError(fiber.StatusBadRequest, "Only PDF files are accepted")
		}

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not prepare upload directory")
		}
		filename := "bill-" + uuid.NewString() + ".pdf"
		if err := c.SaveFile(file, filepath.Join(cfg.UploadDir, filename)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store file")
		}

		return c.JSON(fiber.Map{
			"message":  "File uploaded successfully",
			"filename": filename,
			"file_url": "/api/milk/download/" + filename,
		})
	}
}

// GET /api/milk/download/:filename
func DownloadBillHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")
		// keep requests inside the upload dir
		if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
		}

		path := filepath.Join(cfg.UploadDir, filename)
		if _, err := os.Stat(path); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "File not found")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendFile(path)
	}
}
