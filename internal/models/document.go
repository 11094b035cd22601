package models

import (
	"time"

	"gorm.io/gorm"
)

type DocumentType string

const (
	DocDeclarationForm DocumentType = "declaration_form"
	DocITOrientation   DocumentType = "it_orientation"
	DocHandoverForm    DocumentType = "handover_form"
)

// RequiredDocumentTypes is the fixed set of compliance forms created for
// every issuance. All of them must be signed before handover completes.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{DocDeclarationForm, DocITOrientation, DocHandoverForm}
}

func ParseDocumentType(s string) (DocumentType, bool) {
	switch DocumentType(s) {
	case DocDeclarationForm, DocITOrientation, DocHandoverForm:
		return DocumentType(s), true
	}
	return "", false
}

type DocumentStatus string

const (
	DocPending   DocumentStatus = "pending"
	DocSigned    DocumentStatus = "signed"
	DocExpired   DocumentStatus = "expired"
	DocCancelled DocumentStatus = "cancelled"
)

// AssetDocument is a signable compliance artifact. Documents are created in
// cohorts of exactly the required types when an issuance opens, and each one
// is mutated at most once afterwards (sign, cancel or expiry).
type AssetDocument struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	AssetID    uint `gorm:"not null;index"`
	UserID     uint `gorm:"not null;index"`
	IssuanceID uint `gorm:"not null;index"`

	DocumentType DocumentType   `gorm:"type:varchar(30);not null"`
	Status       DocumentStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	DocumentData  string `gorm:"type:text"` // submitted form data, JSON
	SignatureData string `gorm:"type:text"` // base64 signature payload
	IPAddress     string `gorm:"size:45"`
	UserAgent     string `gorm:"type:text"`

	SignedAt  *time.Time
	ExpiresAt time.Time `gorm:"not null"`
}

type DocumentTemplate struct {
	gorm.Model
	DocumentType    DocumentType `gorm:"type:varchar(30);uniqueIndex;not null"`
	TemplateName    string       `gorm:"size:200;not null"`
	TemplateContent string       `gorm:"type:text"`
	FieldsSchema    string       `gorm:"type:text"` // JSON array of form fields
	IsActive        bool         `gorm:"not null;default:true"`
	Version         string       `gorm:"size:20"`
}
