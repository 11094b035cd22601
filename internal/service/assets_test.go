package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

func TestCreateAssetDefaultsAndConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)

	asset := models.Asset{
		AssetID:        "LAP-001",
		Type:           "laptop",
		Brand:          "Dell",
		ModelName:      "Latitude 7440",
		SerialNumber:   "SN-001",
		Department:     models.DefaultDepartment,
		PurchaseDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		WarrantyExpiry: time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CreateAsset(&asset, testActor()))
	require.Equal(t, models.StatusAvailable, asset.Status)
	require.Equal(t, "Good", asset.Condition)
	require.Nil(t, asset.AssignedUserID)

	dupCode := models.Asset{AssetID: "LAP-001", Type: "laptop", SerialNumber: "SN-OTHER"}
	require.ErrorIs(t, svc.CreateAsset(&dupCode, testActor()), service.ErrConflict)

	dupSerial := models.Asset{AssetID: "LAP-002", Type: "laptop", SerialNumber: "SN-001"}
	require.ErrorIs(t, svc.CreateAsset(&dupSerial, testActor()), service.ErrConflict)

	// Empty serial numbers never collide.
	blank1 := models.Asset{AssetID: "MON-001", Type: "monitor"}
	blank2 := models.Asset{AssetID: "MON-002", Type: "monitor"}
	require.NoError(t, svc.CreateAsset(&blank1, testActor()))
	require.NoError(t, svc.CreateAsset(&blank2, testActor()))
}

func TestUpdateAssetAuditsOnlyTheDiff(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)
	asset := createAsset(t, db, "LAP-001")

	brand := "Lenovo"
	location := "HQ L3"
	updated, err := svc.UpdateAsset(asset.ID, service.AssetUpdate{
		Brand:    &brand,
		Location: &location,
	}, testActor())
	require.NoError(t, err)
	require.Equal(t, "Lenovo", updated.Brand)

	var entry models.AuditLog
	require.NoError(t, db.Where("action = ? AND resource_id = ?", "update", asset.ID).First(&entry).Error)
	require.Contains(t, entry.OldValues, `"brand":"Dell"`)
	require.Contains(t, entry.NewValues, `"brand":"Lenovo"`)
	require.Contains(t, entry.NewValues, `"location":"HQ L3"`)
	require.NotContains(t, entry.NewValues, "serial_number", "untouched fields stay out of the diff")
}

func TestUpdateAssetNoopWritesNoAudit(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)
	asset := createAsset(t, db, "LAP-001")

	var before int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&before).Error)

	sameBrand := asset.Brand
	_, err := svc.UpdateAsset(asset.ID, service.AssetUpdate{Brand: &sameBrand}, testActor())
	require.NoError(t, err)

	var after int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&after).Error)
	require.Equal(t, before, after, "a no-op update must not leave an audit row")
}

func TestUpdateAssetStatusOverride(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)
	user := createUser(t, db, "jtan", "Engineering")
	asset := createAsset(t, db, "LAP-001")

	// Workflow-owned statuses are not settable directly.
	pending := models.StatusPendingSignature
	_, err := svc.UpdateAsset(asset.ID, service.AssetUpdate{Status: &pending}, testActor())
	require.ErrorIs(t, err, service.ErrInvalidState)

	inUse := models.StatusInUse
	_, err = svc.UpdateAsset(asset.ID, service.AssetUpdate{Status: &inUse}, testActor())
	require.ErrorIs(t, err, service.ErrInvalidState)

	// The administrative override works from any state and drops the holder.
	issuance := issueTo(t, svc, asset, user)
	maintenance := models.StatusMaintenance
	updated, err := svc.UpdateAsset(asset.ID, service.AssetUpdate{Status: &maintenance}, testActor())
	require.NoError(t, err)
	require.Equal(t, models.StatusMaintenance, updated.Status)
	require.Nil(t, updated.AssignedUserID)

	// Forcing the asset out of the workflow closes the open issuance and
	// voids its unsigned documents.
	var closed models.AssetIssuance
	require.NoError(t, db.First(&closed, issuance.ID).Error)
	require.NotNil(t, closed.ReturnDate)
	require.Contains(t, closed.Notes, "CANCELLED: status changed to maintenance")
	for _, d := range cohortDocs(t, db, issuance.ID) {
		require.Equal(t, models.DocCancelled, d.Status)
	}

	// The full override cycle ends with an issuable asset.
	available := models.StatusAvailable
	_, err = svc.UpdateAsset(asset.ID, service.AssetUpdate{Status: &available}, testActor())
	require.NoError(t, err)
	issueTo(t, svc, asset, user)
}

func TestDeleteAssetGuards(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)
	user := createUser(t, db, "jtan", "Engineering")
	asset := createAsset(t, db, "LAP-001")

	issueTo(t, svc, asset, user)
	require.ErrorIs(t, svc.DeleteAsset(asset.ID, testActor()), service.ErrConflict)

	other := createAsset(t, db, "LAP-002")
	require.NoError(t, svc.DeleteAsset(other.ID, testActor()))
	require.ErrorIs(t, svc.DeleteAsset(other.ID, testActor()), service.ErrNotFound)
}

func TestAuditTrailAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := service.New(db)
	user := createUser(t, db, "jtan", "Engineering")
	asset := createAsset(t, db, "LAP-001")

	issuance := issueTo(t, svc, asset, user)
	require.NoError(t, svc.CancelIssuance(issuance.ID, "wrong person", testActor()))

	logs, err := svc.AuditLogs(service.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "cancel_issuance", logs[0].Action, "listing is newest first")
	require.Equal(t, "assign", logs[1].Action)

	assetOnly, err := svc.AuditLogs(service.AuditFilter{ResourceType: "asset"})
	require.NoError(t, err)
	require.Len(t, assetOnly, 1)
	require.Equal(t, "assign", assetOnly[0].Action)

	none, err := svc.AuditLogs(service.AuditFilter{Action: "no_such_action"})
	require.NoError(t, err)
	require.Empty(t, none)
}
