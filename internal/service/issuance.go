package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

type IssueRequest struct {
	UserID             uint
	ExpectedReturnDate *time.Time
	Notes              string
	IssuedBy           string
}

// IssueAsset starts a handover: it moves an available asset to
// pending_for_signature, opens the issuance ledger record and creates the
// pending compliance documents for the receiving user. The asset mirrors the
// holder's department while assigned.
func (s *Service) IssueAsset(assetID uint, req IssueRequest, actor Actor) (*models.AssetIssuance, error) {
	var issuance models.AssetIssuance

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
			}
			return err
		}
		if asset.Status != models.StatusAvailable {
			return fmt.Errorf("%w: asset %s is %s, not available", ErrInvalidState, asset.AssetID, asset.Status)
		}

		var user models.User
		if err := tx.First(&user, req.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, req.UserID)
			}
			return err
		}

		// Defense in depth: the status guard above should make a duplicate
		// active issuance unreachable, but the ledger enforces it as well.
		var active int64
		if err := tx.Model(&models.AssetIssuance{}).
			Where("asset_id = ? AND return_date IS NULL", asset.ID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: asset %s already has an active issuance", ErrConflict, asset.AssetID)
		}

		now := time.Now().UTC()
		issuance = models.AssetIssuance{
			AssetID:            asset.ID,
			UserID:             user.ID,
			IssuedDate:         now,
			ExpectedReturnDate: req.ExpectedReturnDate,
			Notes:              req.Notes,
			IssuedBy:           req.IssuedBy,
		}
		if err := tx.Create(&issuance).Error; err != nil {
			return err
		}

		for _, docType := range models.RequiredDocumentTypes() {
			doc := models.AssetDocument{
				AssetID:      asset.ID,
				UserID:       user.ID,
				IssuanceID:   issuance.ID,
				DocumentType: docType,
				Status:       models.DocPending,
				ExpiresAt:    now.Add(SigningWindow),
			}
			if err := tx.Create(&doc).Error; err != nil {
				return err
			}
		}

		asset.Status = models.StatusPendingSignature
		asset.AssignedUserID = &user.ID
		asset.Department = user.Department
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		notification := models.Notification{
			Type:    "signature_pending",
			Title:   "Documents awaiting your signature",
			Message: fmt.Sprintf("Asset %s has been assigned to you. Sign the required documents within %d days to complete the handover.", asset.AssetID, int(SigningWindow.Hours()/24)),
			AssetID: &asset.ID,
			UserID:  &user.ID,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "assign",
			ResourceType: "asset",
			ResourceID:   asset.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Issued asset %s to %s, pending signature", asset.AssetID, user.FullName),
			NewValues: map[string]any{
				"status":        string(models.StatusPendingSignature),
				"assigned_user": user.ID,
				"department":    user.Department,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return &issuance, nil
}

// ReturnAsset closes the active issuance and makes the asset available
// again. The asset's department resets to the default custodial department;
// the holder's department is not restored.
func (s *Service) ReturnAsset(assetID uint, actor Actor) (*models.AssetIssuance, error) {
	var issuance models.AssetIssuance

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
			}
			return err
		}

		if err := tx.Where("asset_id = ? AND return_date IS NULL", asset.ID).
			Order("issued_date desc").
			First(&issuance).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %s", ErrNoActiveIssuance, asset.AssetID)
			}
			return err
		}
		if asset.Status != models.StatusInUse {
			return fmt.Errorf("%w: asset %s is %s; cancel the issuance instead", ErrInvalidState, asset.AssetID, asset.Status)
		}

		now := time.Now().UTC()
		issuance.ReturnDate = &now
		if err := tx.Save(&issuance).Error; err != nil {
			return err
		}

		asset.Status = models.StatusAvailable
		asset.AssignedUserID = nil
		asset.Department = models.DefaultDepartment
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "return",
			ResourceType: "asset",
			ResourceID:   asset.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Asset %s returned", asset.AssetID),
			NewValues: map[string]any{
				"status":     string(models.StatusAvailable),
				"department": models.DefaultDepartment,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return &issuance, nil
}

// CancelIssuance aborts a handover before or after signing completes. The
// ledger record is closed with the reason, every still-pending document in
// the cohort is cancelled, and the asset becomes available again. Signed
// documents are left untouched as valid history.
func (s *Service) CancelIssuance(issuanceID uint, reason string, actor Actor) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var issuance models.AssetIssuance
		if err := tx.First(&issuance, issuanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: issuance %d", ErrNotFound, issuanceID)
			}
			return err
		}
		if issuance.ReturnDate != nil {
			return fmt.Errorf("%w: issuance %d is already closed", ErrInvalidState, issuanceID)
		}

		var asset models.Asset
		if err := tx.First(&asset, issuance.AssetID).Error; err != nil {
			return err
		}
		if asset.Status != models.StatusPendingSignature && asset.Status != models.StatusInUse {
			return fmt.Errorf("%w: asset %s is %s", ErrInvalidState, asset.AssetID, asset.Status)
		}

		now := time.Now().UTC()
		issuance.ReturnDate = &now
		if issuance.Notes != "" {
			issuance.Notes += "\n"
		}
		issuance.Notes += "CANCELLED: " + reason
		if err := tx.Save(&issuance).Error; err != nil {
			return err
		}

		if err := cancelPendingDocuments(tx, issuance.ID); err != nil {
			return err
		}

		asset.Status = models.StatusAvailable
		asset.AssignedUserID = nil
		asset.Department = models.DefaultDepartment
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		notification := models.Notification{
			Type:    "issuance_cancelled",
			Title:   "Asset issuance cancelled",
			Message: fmt.Sprintf("The issuance of asset %s was cancelled: %s", asset.AssetID, reason),
			AssetID: &asset.ID,
			UserID:  &issuance.UserID,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "cancel_issuance",
			ResourceType: "issuance",
			ResourceID:   issuance.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Cancelled issuance of asset %s: %s", asset.AssetID, reason),
			NewValues: map[string]any{
				"status":      string(models.StatusAvailable),
				"return_date": now,
			},
		})
	})
}

// closeActiveIssuance closes an asset's open issuance, if any, recording the
// reason on the ledger row and voiding the cohort's unsigned documents. Used
// when something other than a return or an explicit cancellation takes the
// asset out of the workflow.
func closeActiveIssuance(tx *gorm.DB, assetID uint, reason string) error {
	var issuance models.AssetIssuance
	err := tx.Where("asset_id = ? AND return_date IS NULL", assetID).
		First(&issuance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	issuance.ReturnDate = &now
	if issuance.Notes != "" {
		issuance.Notes += "\n"
	}
	issuance.Notes += "CANCELLED: " + reason
	if err := tx.Save(&issuance).Error; err != nil {
		return err
	}
	return cancelPendingDocuments(tx, issuance.ID)
}

// ActiveIssuance returns the single open issuance for an asset, or nil.
func (s *Service) ActiveIssuance(assetID uint) (*models.AssetIssuance, error) {
	var issuance models.AssetIssuance
	err := s.db.Preload("User").
		Where("asset_id = ? AND return_date IS NULL", assetID).
		First(&issuance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issuance, nil
}

// IssuanceHistory lists all issuances for an asset, newest first.
func (s *Service) IssuanceHistory(assetID uint) ([]models.AssetIssuance, error) {
	var exists int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", assetID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
	}
	var issuances []models.AssetIssuance
	err := s.db.Preload("User").
		Where("asset_id = ?", assetID).
		Order("issued_date desc").
		Find(&issuances).Error
	return issuances, err
}
