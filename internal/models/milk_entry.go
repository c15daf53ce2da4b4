package models

import "time"

type MilkSession string

const (
	SessionMorning MilkSession = "morning"
	SessionEvening MilkSession = "evening"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// MilkEntry is one recorded delivery. Price is computed from the vendor's
// per-liter rate when the entry is created and is never recomputed, so a
// later rate change does not rewrite history.
type MilkEntry struct {
	ID         uint `gorm:"primaryKey"`
	VendorID   uint `gorm:"index;not null"`
	Vendor     Vendor
	CustomerID uint `gorm:"index;not null"`
	Customer   Customer
	Session    MilkSession   `gorm:"size:10;not null"`
	Liter      float64       `gorm:"not null"`
	Price      float64       `gorm:"not null"`
	Date       time.Time     `gorm:"index;not null"`
	Status     PaymentStatus `gorm:"size:10;not null;default:unpaid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
