package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

type auditLogResponse struct {
	ID           uint      `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	ResourceName string    `json:"resource_name,omitempty"`
	UserID       uint      `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	UserRole     string    `json:"user_role,omitempty"`
	Description  string    `json:"description,omitempty"`
	Details      string    `json:"details,omitempty"`
	OldValues    string    `json:"old_values,omitempty"`
	NewValues    string    `json:"new_values,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func toAuditLogResponse(l models.AuditLog) auditLogResponse {
	return auditLogResponse{
		ID:           l.ID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		ResourceName: l.ResourceName,
		UserID:       l.UserID,
		UserName:     l.UserName,
		UserRole:     l.UserRole,
		Description:  l.Description,
		Details:      l.Details,
		OldValues:    l.OldValues,
		NewValues:    l.NewValues,
		Timestamp:    l.CreatedAt,
	}
}

// ListAuditLogs is read-only; the audit trail has no mutation endpoints.
func ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := svc.AuditLogs(service.AuditFilter{
		ResourceType: c.Query("resource_type"),
		Action:       c.Query("action"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}

	resp := make([]auditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, toAuditLogResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}
