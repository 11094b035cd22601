package service

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

// AuditEntry describes one state-changing action for the audit trail.
// OldValues/NewValues carry only the fields that actually changed; callers
// pre-filter so a no-op diff never produces a log row.
type AuditEntry struct {
	Action       string
	ResourceType string
	ResourceID   uint
	ResourceName string
	Description  string
	Details      string
	OldValues    map[string]any
	NewValues    map[string]any
}

// RecordAudit appends one immutable entry. Storage failures are propagated
// so the surrounding transaction rolls back rather than losing the trail.
func RecordAudit(tx *gorm.DB, actor Actor, e AuditEntry) error {
	entry := models.AuditLog{
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		ResourceName: e.ResourceName,
		UserID:       actor.ID,
		UserName:     actor.Name,
		UserRole:     string(actor.Role),
		Description:  e.Description,
		Details:      e.Details,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	}
	if len(e.OldValues) > 0 {
		b, err := json.Marshal(e.OldValues)
		if err != nil {
			return err
		}
		entry.OldValues = string(b)
	}
	if len(e.NewValues) > 0 {
		b, err := json.Marshal(e.NewValues)
		if err != nil {
			return err
		}
		entry.NewValues = string(b)
	}
	return tx.Create(&entry).Error
}

// AuditFilter narrows the audit listing. Unknown resource types or actions
// simply match nothing; they are not validated here.
type AuditFilter struct {
	ResourceType string
	Action       string
	Limit        int
	Offset       int
}

func (s *Service) AuditLogs(filter AuditFilter) ([]models.AuditLog, error) {
	q := s.db.Model(&models.AuditLog{})
	if filter.ResourceType != "" {
		q = q.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var logs []models.AuditLog
	err := q.Order("created_at desc, id desc").
		Limit(limit).
		Offset(filter.Offset).
		Find(&logs).Error
	return logs, err
}
