package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

// CreateAsset registers a new asset. The org-visible asset code and, when
// present, the serial number must be unique.
func (s *Service) CreateAsset(asset *models.Asset, actor Actor) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).Where("asset_id = ?", asset.AssetID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: asset code %s already exists", ErrConflict, asset.AssetID)
		}
		if asset.SerialNumber != "" {
			if err := tx.Model(&models.Asset{}).Where("serial_number = ?", asset.SerialNumber).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: serial number %s already exists", ErrConflict, asset.SerialNumber)
			}
		}

		if asset.Status == "" {
			asset.Status = models.StatusAvailable
		}
		if asset.Condition == "" {
			asset.Condition = "Good"
		}
		asset.AssignedUserID = nil
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "create",
			ResourceType: "asset",
			ResourceID:   asset.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Created asset %s (%s %s)", asset.AssetID, asset.Brand, asset.ModelName),
		})
	})
}

// AssetUpdate carries the fields an update may change. Nil means "leave
// alone". Status here is the administrative override path (maintenance,
// retired, available); issuance-driven transitions never go through it.
type AssetUpdate struct {
	AssetID        *string
	AssetTag       *string
	Type           *string
	Brand          *string
	ModelName      *string
	SerialNumber   *string
	Department     *string
	Location       *string
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
	PurchaseCost   *string
	Condition      *string
	Notes          *string
	Status         *models.AssetStatus
}

// UpdateAsset applies the provided fields and audits the diff. Only fields
// whose value actually changed end up in the old/new snapshots; an update
// that changes nothing writes no audit entry at all.
func (s *Service) UpdateAsset(id uint, update AssetUpdate, actor Actor) (*models.Asset, error) {
	var asset models.Asset

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %d", ErrNotFound, id)
			}
			return err
		}

		oldValues := map[string]any{}
		newValues := map[string]any{}
		setStr := func(field string, dst *string, v *string) {
			if v != nil && *v != *dst {
				oldValues[field] = *dst
				newValues[field] = *v
				*dst = *v
			}
		}
		setTime := func(field string, dst *time.Time, v *time.Time) {
			if v != nil && !v.Equal(*dst) {
				oldValues[field] = *dst
				newValues[field] = *v
				*dst = *v
			}
		}

		if update.AssetID != nil && *update.AssetID != asset.AssetID {
			var count int64
			if err := tx.Model(&models.Asset{}).
				Where("asset_id = ? AND id <> ?", *update.AssetID, asset.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: asset code %s already exists", ErrConflict, *update.AssetID)
			}
			oldValues["asset_id"] = asset.AssetID
			newValues["asset_id"] = *update.AssetID
			asset.AssetID = *update.AssetID
		}
		setStr("asset_tag", &asset.AssetTag, update.AssetTag)
		setStr("type", &asset.Type, update.Type)
		setStr("brand", &asset.Brand, update.Brand)
		setStr("model", &asset.ModelName, update.ModelName)
		setStr("serial_number", &asset.SerialNumber, update.SerialNumber)
		setStr("department", &asset.Department, update.Department)
		setStr("location", &asset.Location, update.Location)
		setTime("purchase_date", &asset.PurchaseDate, update.PurchaseDate)
		setTime("warranty_expiry", &asset.WarrantyExpiry, update.WarrantyExpiry)
		setStr("purchase_cost", &asset.PurchaseCost, update.PurchaseCost)
		setStr("condition", &asset.Condition, update.Condition)
		setStr("notes", &asset.Notes, update.Notes)

		if update.Status != nil && *update.Status != asset.Status {
			if *update.Status == models.StatusPendingSignature || *update.Status == models.StatusInUse {
				return fmt.Errorf("%w: status %s is driven by the issuance workflow", ErrInvalidState, *update.Status)
			}
			oldValues["status"] = string(asset.Status)
			newValues["status"] = string(*update.Status)
			wasIssued := asset.Status == models.StatusPendingSignature || asset.Status == models.StatusInUse
			asset.Status = *update.Status
			// The assignment invariant: a user is only held while the asset
			// is pending signature or in use.
			if asset.AssignedUserID != nil {
				oldValues["assigned_user"] = *asset.AssignedUserID
				newValues["assigned_user"] = nil
				asset.AssignedUserID = nil
			}
			// Forcing an issued asset out of the workflow closes the open
			// issuance and voids its unsigned documents; otherwise the ledger
			// row could never be closed and the asset never issued again.
			if wasIssued {
				if err := closeActiveIssuance(tx, asset.ID,
					"status changed to "+string(*update.Status)); err != nil {
					return err
				}
			}
		}

		if len(newValues) == 0 {
			return nil
		}
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "update",
			ResourceType: "asset",
			ResourceID:   asset.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Updated asset %s", asset.AssetID),
			OldValues:    oldValues,
			NewValues:    newValues,
		})
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset that nobody currently holds. History rows
// (closed issuances, documents, audit entries) are retained.
func (s *Service) DeleteAsset(id uint, actor Actor) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %d", ErrNotFound, id)
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.AssetIssuance{}).
			Where("asset_id = ? AND return_date IS NULL", asset.ID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: asset %s is currently issued", ErrConflict, asset.AssetID)
		}

		if err := tx.Delete(&asset).Error; err != nil {
			return err
		}

		return RecordAudit(tx, actor, AuditEntry{
			Action:       "delete",
			ResourceType: "asset",
			ResourceID:   asset.ID,
			ResourceName: asset.AssetID,
			Description:  fmt.Sprintf("Deleted asset %s", asset.AssetID),
		})
	})
}
