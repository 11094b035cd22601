package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
)

type groupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

func countBy(column string) (map[string]int64, error) {
	var rows []groupCount
	err := database.DB.Model(&models.Asset{}).
		Select(column + " as key, count(*) as count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

// Dashboard aggregates the landing-page numbers: totals, per-status/type/
// department counts, active issuances, warranty alerts and idle assets.
func Dashboard(c *gin.Context) {
	var total int64
	if err := database.DB.Model(&models.Asset{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	byStatus, err := countBy("status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	byType, err := countBy("type")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	byDepartment, err := countBy("department")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	var recent []models.AssetIssuance
	if err := database.DB.Preload("User").Preload("Asset").
		Where("return_date IS NULL").
		Order("issued_date desc").
		Limit(10).
		Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	recentResp := make([]issuanceResponse, 0, len(recent))
	for _, i := range recent {
		recentResp = append(recentResp, toIssuanceResponse(i))
	}

	// Warranty expiring within 30 days, excluding retired assets.
	now := time.Now().UTC()
	soon := now.Add(30 * 24 * time.Hour)
	var warranty []models.Asset
	if err := database.DB.Preload("AssignedUser").
		Where("warranty_expiry <= ? AND warranty_expiry >= ? AND status <> ?", soon, now, models.StatusRetired).
		Order("warranty_expiry asc").
		Limit(10).
		Find(&warranty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	warrantyResp := make([]assetResponse, 0, len(warranty))
	for _, a := range warranty {
		warrantyResp = append(warrantyResp, toAssetResponse(a))
	}

	// In use but untouched for 30 days.
	stale := now.Add(-30 * 24 * time.Hour)
	var idle []models.Asset
	if err := database.DB.Preload("AssignedUser").
		Where("status = ? AND updated_at <= ?", models.StatusInUse, stale).
		Limit(10).
		Find(&idle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	idleResp := make([]assetResponse, 0, len(idle))
	for _, a := range idle {
		idleResp = append(idleResp, toAssetResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_assets":         total,
		"assets_by_status":     byStatus,
		"assets_by_type":       byType,
		"assets_by_department": byDepartment,
		"recent_issuances":     recentResp,
		"warranty_alerts":      warrantyResp,
		"idle_assets":          idleResp,
	})
}
