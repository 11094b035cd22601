package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

type assetRequest struct {
	AssetID        string    `json:"asset_id" binding:"required"`
	AssetTag       string    `json:"asset_tag"`
	Type           string    `json:"type" binding:"required"`
	Brand          string    `json:"brand" binding:"required"`
	Model          string    `json:"model" binding:"required"`
	SerialNumber   string    `json:"serial_number"`
	Department     string    `json:"department" binding:"required"`
	Location       string    `json:"location"`
	PurchaseDate   time.Time `json:"purchase_date" binding:"required"`
	WarrantyExpiry time.Time `json:"warranty_expiry" binding:"required"`
	PurchaseCost   string    `json:"purchase_cost"`
	Condition      string    `json:"condition"`
	Notes          string    `json:"notes"`
}

type assetResponse struct {
	ID               uint       `json:"id"`
	AssetID          string     `json:"asset_id"`
	AssetTag         string     `json:"asset_tag,omitempty"`
	Type             string     `json:"type"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	SerialNumber     string     `json:"serial_number,omitempty"`
	Department       string     `json:"department"`
	Location         string     `json:"location,omitempty"`
	PurchaseDate     time.Time  `json:"purchase_date"`
	WarrantyExpiry   time.Time  `json:"warranty_expiry"`
	PurchaseCost     string     `json:"purchase_cost,omitempty"`
	Condition        string     `json:"condition"`
	Notes            string     `json:"notes,omitempty"`
	Status           string     `json:"status"`
	AssignedUserID   *uint      `json:"assigned_user_id"`
	AssignedUserName string     `json:"assigned_user_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toAssetResponse(a models.Asset) assetResponse {
	resp := assetResponse{
		ID:             a.ID,
		AssetID:        a.AssetID,
		AssetTag:       a.AssetTag,
		Type:           a.Type,
		Brand:          a.Brand,
		Model:          a.ModelName,
		SerialNumber:   a.SerialNumber,
		Department:     a.Department,
		Location:       a.Location,
		PurchaseDate:   a.PurchaseDate,
		WarrantyExpiry: a.WarrantyExpiry,
		PurchaseCost:   a.PurchaseCost,
		Condition:      a.Condition,
		Notes:          a.Notes,
		Status:         string(a.Status),
		AssignedUserID: a.AssignedUserID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.AssignedUser != nil {
		resp.AssignedUserName = a.AssignedUser.FullName
	}
	return resp
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListAssets applies the read-path filters. Unknown status values are
// ignored rather than rejected; write paths stay strict.
func ListAssets(c *gin.Context) {
	q := database.DB.Model(&models.Asset{}).Preload("AssignedUser")

	if status, ok := models.ParseAssetStatus(c.Query("status")); ok {
		q = q.Where("status = ?", status)
	}
	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}
	if assetType := c.Query("type"); assetType != "" {
		q = q.Where("type = ?", assetType)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(asset_id) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(serial_number) LIKE ?",
			term, term, term, term,
		)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}

	var assets []models.Asset
	if err := q.Order("asset_id asc").Offset(skip).Limit(limit).Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assets"})
		return
	}

	resp := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, toAssetResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func GetAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var asset models.Asset
	if err := database.DB.Preload("AssignedUser").First(&asset, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.JSON(http.StatusOK, toAssetResponse(asset))
}

func CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset := models.Asset{
		AssetID:        strings.TrimSpace(req.AssetID),
		AssetTag:       req.AssetTag,
		Type:           req.Type,
		Brand:          req.Brand,
		ModelName:      req.Model,
		SerialNumber:   req.SerialNumber,
		Department:     req.Department,
		Location:       req.Location,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		PurchaseCost:   req.PurchaseCost,
		Condition:      req.Condition,
		Notes:          req.Notes,
	}

	if err := svc.CreateAsset(&asset, currentActor(c)); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAssetResponse(asset))
}

type assetUpdateRequest struct {
	AssetID        *string    `json:"asset_id"`
	AssetTag       *string    `json:"asset_tag"`
	Type           *string    `json:"type"`
	Brand          *string    `json:"brand"`
	Model          *string    `json:"model"`
	SerialNumber   *string    `json:"serial_number"`
	Department     *string    `json:"department"`
	Location       *string    `json:"location"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	PurchaseCost   *string    `json:"purchase_cost"`
	Condition      *string    `json:"condition"`
	Notes          *string    `json:"notes"`
	Status         *string    `json:"status"`
}

func UpdateAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req assetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.AssetUpdate{
		AssetID:        req.AssetID,
		AssetTag:       req.AssetTag,
		Type:           req.Type,
		Brand:          req.Brand,
		ModelName:      req.Model,
		SerialNumber:   req.SerialNumber,
		Department:     req.Department,
		Location:       req.Location,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		PurchaseCost:   req.PurchaseCost,
		Condition:      req.Condition,
		Notes:          req.Notes,
	}
	if req.Status != nil {
		// Strict on the write path: unknown status values are rejected.
		status, ok := models.ParseAssetStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + *req.Status})
			return
		}
		update.Status = &status
	}

	asset, err := svc.UpdateAsset(id, update, currentActor(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssetResponse(*asset))
}

func DeleteAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := svc.DeleteAsset(id, currentActor(c)); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ExportAssetsCSV(c *gin.Context) {
	q := database.DB.Model(&models.Asset{}).Preload("AssignedUser")
	if status, ok := models.ParseAssetStatus(c.Query("status")); ok {
		q = q.Where("status = ?", status)
	}
	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}

	var assets []models.Asset
	if err := q.Order("asset_id asc").Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export assets"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=assets.csv")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"Asset ID", "Type", "Brand", "Model", "Serial Number",
		"Department", "Location", "Status", "Assigned User",
		"Purchase Date", "Warranty Expiry", "Purchase Cost",
		"Condition", "Notes", "Created At",
	})
	for _, a := range assets {
		assignedUser := ""
		if a.AssignedUser != nil {
			assignedUser = a.AssignedUser.FullName
		}
		_ = w.Write([]string{
			a.AssetID, a.Type, a.Brand, a.ModelName, a.SerialNumber,
			a.Department, a.Location, string(a.Status), assignedUser,
			a.PurchaseDate.Format("2006-01-02"),
			a.WarrantyExpiry.Format("2006-01-02"),
			a.PurchaseCost, a.Condition, a.Notes,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("csv export: %v", err)
	}
}
