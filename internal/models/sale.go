package models

import "time"

// Sale is a product-based transaction. The buyer is either a registered
// customer (CustomerID set) or a walk-in (CustomerName set); exactly one of
// the two must be present.
type Sale struct {
	ID        uint `gorm:"primaryKey"`
	VendorID  uint `gorm:"index;not null"`
	Vendor    Vendor
	ProductID uint `gorm:"index;not null"`
	Product   Product

	CustomerID   *uint `gorm:"index"`
	Customer     *Customer
	CustomerName string `gorm:"size:100"` // walk-in buyer

	Quantity  float64       `gorm:"not null"`
	Total     float64       `gorm:"not null"`
	Date      time.Time     `gorm:"index;not null"`
	Status    PaymentStatus `gorm:"size:10;not null;default:unpaid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuyerLabel returns the display name of whoever bought the sale.
func (s *Sale) BuyerLabel() string {
	if s.Customer != nil {
		return s.Customer.Name
	}
	return s.CustomerName
}
