package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type ActorType string

const (
	ActorAdmin    ActorType = "admin"
	ActorVendor   ActorType = "vendor"
	ActorCustomer ActorType = "customer"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ActorType ActorType `gorm:"size:20;index" json:"actor_type"`
	ActorID   uint      `gorm:"index" json:"actor_id"`
	ActorName string    `gorm:"size:100" json:"actor_name"` // denormalized

	// "vendor", "customer", "milk_entry", "product", "sale"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Snapshots as JSON
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
