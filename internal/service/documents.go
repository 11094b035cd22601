package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

// SignDocument records a signature on a pending document. If the signing
// window has elapsed the document is marked expired and the signature is
// rejected. When the last non-cancelled document of the cohort is signed,
// the asset moves from pending_for_signature to in_use in the same
// transaction.
func (s *Service) SignDocument(documentID uint, signature string, formData map[string]any, actor Actor) (*models.AssetDocument, error) {
	var doc models.AssetDocument
	expired := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: document %d", ErrNotFound, documentID)
			}
			return err
		}
		if doc.Status != models.DocPending {
			return fmt.Errorf("%w: document %d is %s", ErrInvalidState, doc.ID, doc.Status)
		}

		now := time.Now().UTC()
		if now.After(doc.ExpiresAt) {
			// The expiry transition commits even though the sign fails.
			expired = true
			doc.Status = models.DocExpired
			return tx.Save(&doc).Error
		}

		doc.Status = models.DocSigned
		doc.SignedAt = &now
		doc.SignatureData = signature
		doc.IPAddress = actor.IPAddress
		doc.UserAgent = actor.UserAgent
		if formData != nil {
			b, err := json.Marshal(formData)
			if err != nil {
				return err
			}
			doc.DocumentData = string(b)
		}
		if err := tx.Save(&doc).Error; err != nil {
			return err
		}

		var asset models.Asset
		if err := tx.First(&asset, doc.AssetID).Error; err != nil {
			return err
		}

		if err := RecordAudit(tx, actor, AuditEntry{
			Action:       "sign",
			ResourceType: "document",
			ResourceID:   doc.ID,
			ResourceName: string(doc.DocumentType),
			Description:  fmt.Sprintf("Signed %s for asset %s", doc.DocumentType, asset.AssetID),
			NewValues:    map[string]any{"status": string(models.DocSigned)},
		}); err != nil {
			return err
		}

		done, err := cohortComplete(tx, doc.IssuanceID)
		if err != nil {
			return err
		}
		if done && asset.Status == models.StatusPendingSignature {
			asset.Status = models.StatusInUse
			if err := tx.Save(&asset).Error; err != nil {
				return err
			}
			if err := RecordAudit(tx, actor, AuditEntry{
				Action:       "status_change",
				ResourceType: "asset",
				ResourceID:   asset.ID,
				ResourceName: asset.AssetID,
				Description:  fmt.Sprintf("All documents signed; asset %s is now in use", asset.AssetID),
				OldValues:    map[string]any{"status": string(models.StatusPendingSignature)},
				NewValues:    map[string]any{"status": string(models.StatusInUse)},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, fmt.Errorf("%w: document %d", ErrExpired, doc.ID)
	}
	return &doc, nil
}

// cohortComplete reports whether every non-cancelled document of the
// issuance cohort is signed. An expired sibling keeps the cohort incomplete
// forever; the issuance has to be cancelled and reopened.
func cohortComplete(tx *gorm.DB, issuanceID uint) (bool, error) {
	var docs []models.AssetDocument
	if err := tx.Where("issuance_id = ?", issuanceID).Find(&docs).Error; err != nil {
		return false, err
	}
	if len(docs) == 0 {
		return false, nil
	}
	for _, d := range docs {
		if d.Status == models.DocCancelled {
			continue
		}
		if d.Status != models.DocSigned {
			return false, nil
		}
	}
	return true, nil
}

// cancelPendingDocuments voids the still-pending documents of a cohort.
// Idempotent: already cancelled, signed or expired documents are untouched.
func cancelPendingDocuments(tx *gorm.DB, issuanceID uint) error {
	return tx.Model(&models.AssetDocument{}).
		Where("issuance_id = ? AND status = ?", issuanceID, models.DocPending).
		Update("status", models.DocCancelled).Error
}

// AssetDocuments lists every document ever created for an asset.
func (s *Service) AssetDocuments(assetID uint) ([]models.AssetDocument, error) {
	var docs []models.AssetDocument
	err := s.db.Where("asset_id = ?", assetID).
		Order("created_at desc, id desc").
		Find(&docs).Error
	return docs, err
}

// PendingDocuments lists the documents a user still has to sign.
func (s *Service) PendingDocuments(userID uint) ([]models.AssetDocument, error) {
	var docs []models.AssetDocument
	err := s.db.Where("user_id = ? AND status = ?", userID, models.DocPending).
		Order("expires_at asc").
		Find(&docs).Error
	return docs, err
}
