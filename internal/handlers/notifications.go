package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
)

// MyNotifications lists the caller's notifications plus system-wide ones,
// newest first.
func MyNotifications(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ? OR user_id IS NULL", user.ID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func MarkNotificationRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if notification.UserID != nil && *notification.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	notification.IsRead = true
	if err := database.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, notification)
}
