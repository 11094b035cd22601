package models

import "time"

// AuditLog is append-only: rows are created by every state-changing
// operation and never updated or deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	Action       string `gorm:"size:100;not null"` // "create", "update", "assign", "status_change", ...
	ResourceType string `gorm:"size:50;not null"`  // "asset", "user", "issuance", "document"
	ResourceID   uint   `gorm:"not null"`
	ResourceName string `gorm:"size:255"`

	UserID   uint   `gorm:"not null"`
	UserName string `gorm:"size:255"`
	UserRole string `gorm:"size:50"`

	Description string `gorm:"type:text"`
	Details     string `gorm:"type:text"`
	OldValues   string `gorm:"type:text"` // JSON snapshot of changed fields
	NewValues   string `gorm:"type:text"`

	IPAddress string `gorm:"size:45"`
	UserAgent string `gorm:"type:text"`
}
