package models

import "time"

// AssetIssuance is one custody record. ReturnDate nil means the issuance is
// still active; at most one active issuance may exist per asset. Closed rows
// are kept forever as history.
type AssetIssuance struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	AssetID uint `gorm:"not null;index"`
	Asset   Asset
	UserID  uint `gorm:"not null;index"`
	User    User

	IssuedDate         time.Time `gorm:"not null"`
	ExpectedReturnDate *time.Time
	ReturnDate         *time.Time

	Notes    string `gorm:"type:text"`
	IssuedBy string `gorm:"size:100"`
}
