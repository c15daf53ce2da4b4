package audit

import (
	"encoding/json"
	"fmt"

	"dairyline-backend/internal/database"
	"dairyline-backend/internal/models"
)

type LogOptions struct {
	ActorType   models.ActorType
	ActorID     uint
	ActorName   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns want the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		ActorType:   opts.ActorType,
		ActorID:     opts.ActorID,
		ActorName:   opts.ActorName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}
	return nil
}
