package audit

import (
	"fmt"

	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/audit-logs?entity_type=vendor&entity_id=1&actor_type=admin
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityIDStr := c.Query("entity_id"); entityIDStr != "" {
			var entityID uint
			if _, err := fmt.Sscan(entityIDStr, &entityID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "entity_id is invalid")
			}
			dbq = dbq.Where("entity_id = ?", entityID)
		}
		if actorType := c.Query("actor_type"); actorType != "" {
			dbq = dbq.Where("actor_type = ?", actorType)
		}

		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}
		return c.JSON(logs)
	}
}
