package models

import (
	"time"

	"gorm.io/gorm"
)

type AssetStatus string

const (
	StatusAvailable        AssetStatus = "available"
	StatusPendingSignature AssetStatus = "pending_for_signature"
	StatusInUse            AssetStatus = "in_use"
	StatusMaintenance      AssetStatus = "maintenance"
	StatusRetired          AssetStatus = "retired"
)

// ParseAssetStatus maps a filter value to a known status. The empty string
// and unknown values both mean "no filter" on read paths.
func ParseAssetStatus(s string) (AssetStatus, bool) {
	switch AssetStatus(s) {
	case StatusAvailable, StatusPendingSignature, StatusInUse, StatusMaintenance, StatusRetired:
		return AssetStatus(s), true
	}
	return "", false
}

type Asset struct {
	gorm.Model
	AssetID      string `gorm:"uniqueIndex;size:50;not null"` // org-visible code, e.g. LAP-001
	AssetTag     string `gorm:"size:50"`                      // finance-assigned tag
	Type         string `gorm:"size:50;not null"`             // laptop, monitor, server...
	Brand        string `gorm:"size:100;not null"`
	ModelName    string `gorm:"size:100;not null;column:model"`
	SerialNumber string `gorm:"size:100;index"`

	Department string `gorm:"size:50;not null"`
	Location   string `gorm:"size:100"`

	PurchaseDate   time.Time `gorm:"not null"`
	WarrantyExpiry time.Time `gorm:"not null"`
	PurchaseCost   string    `gorm:"size:20"`

	Condition string      `gorm:"size:50;default:'Good'"`
	Notes     string      `gorm:"type:text"`
	Status    AssetStatus `gorm:"type:varchar(30);not null;default:'available'"`

	// Set iff status is pending_for_signature or in_use.
	AssignedUserID *uint
	AssignedUser   *User
}
