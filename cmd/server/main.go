package main

import (
	"log"
	"strings"

	"dairyline-backend/internal/admin"
	"dairyline-backend/internal/audit"
	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/billing"
	"dairyline-backend/internal/config"
	"dairyline-backend/internal/customer"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/milk"
	"dairyline-backend/internal/models"
	"dairyline-backend/internal/product"
	"dairyline-backend/internal/sale"
	"dairyline-backend/internal/sms"
	"dairyline-backend/internal/vendor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	smsProvider := sms.NewProvider(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/admin/login", auth.AdminLoginHandler(cfg))
	api.Post("/vendors/register", vendor.RegisterHandler())
	api.Post("/vendors/login", auth.VendorLoginHandler(cfg))
	api.Post("/customers/register", customer.RegisterHandler())
	api.Post("/customers/send-otp", customer.SendOTPHandler(cfg, smsProvider))
	api.Post("/customers/verify-otp", customer.VerifyOTPHandler(cfg))
	api.Post("/customers/login", customer.LoginHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireActor(models.ActorAdmin))

	// Vendor moderation
	adminRoutes.Get("/vendors", admin.ListVendorsHandler())
	adminRoutes.Put("/vendors/:id/approve", admin.ApproveVendorHandler())
	adminRoutes.Put("/vendors/:id/deactivate", admin.DeactivateVendorHandler())
	adminRoutes.Delete("/vendors/:id/decline", admin.DeclineVendorHandler())
	adminRoutes.Delete("/vendors/:id", admin.DeleteVendorHandler())
	adminRoutes.Put("/vendors/:id/password", admin.ResetVendorPasswordHandler())

	// Customer moderation
	adminRoutes.Get("/customers", admin.ListCustomersHandler())
	adminRoutes.Put("/customers/:id/deactivate", admin.DeactivateCustomerHandler())
	adminRoutes.Put("/customers/:id/pin", admin.ResetCustomerPINHandler())

	// Cross-vendor overviews
	adminRoutes.Get("/milk-rates", admin.MilkRatesHandler())
	adminRoutes.Get("/customer-payments", admin.CustomerPaymentsOverviewHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Vendor operations (admins can act on any vendor, vendor tokens on
	// their own)
	ops := protected.Group("")
	ops.Use(auth.RequireActor(models.ActorAdmin, models.ActorVendor))

	ops.Get("/vendors/:id", vendor.GetVendorHandler())
	ops.Get("/vendors/:id/price", vendor.GetPriceHandler())
	ops.Put("/vendors/:id/price", vendor.UpdatePriceHandler())
	ops.Get("/vendors/:id/customers", vendor.ListCustomersHandler())
	ops.Get("/vendors/:id/customers/count", vendor.CustomerCountHandler())
	ops.Get("/vendors/:id/milk", vendor.ListMilkHandler())
	ops.Get("/vendors/:id/milk/today", vendor.TodayMilkHandler())
	ops.Get("/vendors/:id/milk/daily-total", vendor.DailyTotalHandler())
	ops.Get("/vendors/:id/milk/total-cost", vendor.TotalCostHandler())
	ops.Get("/vendors/:id/summary", vendor.SummaryHandler())
	ops.Get("/vendors/:id/reports/monthly", vendor.MonthlyReportHandler())
	ops.Get("/vendors/:id/customer-payments", vendor.CustomerPaymentsHandler())

	// Customer management
	ops.Post("/customers", customer.CreateHandler())
	ops.Put("/customers/:id", customer.UpdateHandler())
	ops.Delete("/customers/:id", customer.DeleteHandler())

	// Milk entries
	ops.Post("/milk", milk.CreateHandler())
	ops.Get("/milk", milk.ListHandler())
	ops.Put("/milk/:id", milk.UpdateHandler())
	ops.Delete("/milk/:id", milk.DeleteHandler())

	// Sales
	ops.Post("/sales", sale.CreateHandler())
	ops.Get("/sales", sale.ListHandler())
	ops.Put("/sales/:id", sale.UpdateHandler())
	ops.Put("/sales/:id/status", sale.UpdateStatusHandler())
	ops.Delete("/sales/:id", sale.DeleteHandler())

	// Products
	ops.Post("/products", product.CreateHandler())
	ops.Get("/products", product.ListHandler())
	ops.Put("/products/:id", product.UpdateHandler())
	ops.Delete("/products/:id", product.DeleteHandler())

	// Customer-facing history and billing. Customer tokens are pinned to
	// their own records inside the handlers.
	protected.Get("/vendors/:id/customers/:customerId/entries", vendor.CustomerEntriesHandler())
	protected.Get("/vendors/:id/customers/:customerId/balance", vendor.CustomerBalanceHandler())
	protected.Get("/vendors/:id/customers/:customerId/report", vendor.CustomerMonthReportHandler())
	protected.Get("/customers/:id/milk-summary", customer.MilkSummaryHandler())
	protected.Get("/milk/customer/:id/bill", billing.GetBillHandler())
	protected.Post("/milk/customer/:id/bill/pdf", billing.RenderBillPDFHandler(cfg))
	protected.Post("/milk/upload-bill", billing.UploadBillHandler(cfg))
	protected.Get("/milk/download/:filename", billing.DownloadBillHandler(cfg))

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
