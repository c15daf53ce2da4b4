package models

import "time"

type VendorStatus string

const (
	VendorStatusPending     VendorStatus = "pending"
	VendorStatusApproved    VendorStatus = "approved"
	VendorStatusDeactivated VendorStatus = "deactivated"
)

type Vendor struct {
	ID           uint         `gorm:"primaryKey"`
	Name         string       `gorm:"size:100;not null"`
	Email        string       `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string       `gorm:"size:255;not null"`
	Phone        string       `gorm:"size:50"`
	Address      string       `gorm:"size:255"`
	Status       VendorStatus `gorm:"size:20;not null;default:pending;index"`
	// Per-liter rate used to prefill new milk entries. Optional.
	DefaultMilkPrice *float64
	VendorCode       string `gorm:"size:20;uniqueIndex;not null"` // VND-XXXXXX
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Customers []Customer
}
