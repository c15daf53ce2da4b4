package models

import "time"

type Customer struct {
	ID       uint `gorm:"primaryKey"`
	VendorID *uint
	Vendor   *Vendor
	Name     string `gorm:"size:100;not null"`
	Phone    string `gorm:"size:50;uniqueIndex;not null"`
	Address  string `gorm:"size:255"`

	// Mobile OTP login (sha256 hex digests, never the raw values)
	PINHash   string `gorm:"size:64"`
	OTPHash   string `gorm:"size:64"`
	OTPExpiry *time.Time
	Verified  bool `gorm:"not null;default:false"`
	Active    bool `gorm:"not null;default:true"`

	CustomerCode string `gorm:"size:20;uniqueIndex;not null"` // CUS-XXXXXX
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
