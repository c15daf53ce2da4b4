package models

import "time"

type ProductUnit string

const (
	UnitLiter ProductUnit = "liter"
	UnitKg    ProductUnit = "kg"
)

type Product struct {
	ID        uint `gorm:"primaryKey"`
	VendorID  *uint
	Vendor    *Vendor
	Name      string      `gorm:"size:100;not null"`
	Capacity  float64     `gorm:"not null"`
	Unit      ProductUnit `gorm:"size:10;not null"`
	Price     float64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
