package product

import (
	"dairyline-backend/internal/auth"
	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	VendorID *uint   `json:"vendor_id"`
	Name     string  `json:"name"`
	Capacity float64 `json:"capacity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return uint(id), nil
}

func validUnit(u string) bool {
	return models.ProductUnit(u) == models.UnitLiter || models.ProductUnit(u) == models.UnitKg
}

// POST /api/products
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "capacity must be positive")
		}
		if !validUnit(body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "unit must be liter or kg")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
		}

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		vendorID := body.VendorID
		if actorType == models.ActorVendor {
			vendorID = &actorID
		}

		product := models.Product{
			VendorID: vendorID,
			Name:     body.Name,
			Capacity: body.Capacity,
			Unit:     models.ProductUnit(body.Unit),
			Price:    body.Price,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}
		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products?vendor=
// Vendors see shared products plus their own.
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		actorType, actorID, _, err := auth.Actor(c)
		if err != nil {
			return err
		}
		switch {
		case actorType == models.ActorVendor:
			dbq = dbq.Where("vendor_id IS NULL OR vendor_id = ?", actorID)
		default:
			if vendor := c.QueryInt("vendor"); vendor > 0 {
				dbq = dbq.Where("vendor_id = ?", vendor)
			}
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}
		return c.JSON(products)
	}
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Capacity *float64 `json:"capacity"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price"`
}

func loadScoped(c *fiber.Ctx, id uint) (*models.Product, error) {
	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Product not found")
	}

	actorType, actorID, _, err := auth.Actor(c)
	if err != nil {
		return nil, err
	}
	if actorType == models.ActorVendor {
		if product.VendorID == nil || *product.VendorID != actorID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Product belongs to another vendor")
		}
	}
	return &product, nil
}

// PUT /api/products/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		product, err := loadScoped(c, id)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			if *body.Name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			product.Name = *body.Name
		}
		if body.Capacity != nil {
			if *body.Capacity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "capacity must be positive")
			}
			product.Capacity = *body.Capacity
		}
		if body.Unit != nil {
			if !validUnit(*body.Unit) {
				return fiber.NewError(fiber.StatusBadRequest, "unit must be liter or kg")
			}
			product.Unit = models.ProductUnit(*body.Unit)
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			product.Price = *body.Price
		}

		if err := database.DB.Save(product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}
		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		product, err := loadScoped(c, id)
		if err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.Sale{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check product usage")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Product has recorded sales and cannot be deleted")
		}

		if err := database.DB.Delete(product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		return c.JSON(fiber.Map{"message": "Product deleted"})
	}
}
