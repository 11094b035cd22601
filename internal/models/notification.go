package models

import "time"

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Type    string `gorm:"size:50;not null" json:"type"` // "signature_pending", "issuance_cancelled", "warranty_expiry"
	Title   string `gorm:"size:200;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	AssetID *uint `json:"asset_id"`
	UserID  *uint `json:"user_id"`

	IsRead bool `gorm:"not null;default:false" json:"is_read"`
}
