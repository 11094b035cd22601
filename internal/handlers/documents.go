package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
)

type documentResponse struct {
	ID           uint       `json:"id"`
	AssetID      uint       `json:"asset_id"`
	UserID       uint       `json:"user_id"`
	IssuanceID   uint       `json:"issuance_id"`
	DocumentType string     `json:"document_type"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	SignedAt     *time.Time `json:"signed_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
}

func toDocumentResponse(d models.AssetDocument) documentResponse {
	return documentResponse{
		ID:           d.ID,
		AssetID:      d.AssetID,
		UserID:       d.UserID,
		IssuanceID:   d.IssuanceID,
		DocumentType: string(d.DocumentType),
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		SignedAt:     d.SignedAt,
		ExpiresAt:    d.ExpiresAt,
	}
}

func ListDocumentTemplates(c *gin.Context) {
	var templates []models.DocumentTemplate
	if err := database.DB.Where("is_active = ?", true).Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}

	resp := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, gin.H{
			"id":            t.ID,
			"document_type": t.DocumentType,
			"template_name": t.TemplateName,
			"fields_schema": t.FieldsSchema,
			"version":       t.Version,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func GetDocumentTemplate(c *gin.Context) {
	docType, ok := models.ParseDocumentType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type"})
		return
	}

	var template models.DocumentTemplate
	err := database.DB.
		Where("document_type = ? AND is_active = ?", docType, true).
		First(&template).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               template.ID,
		"document_type":    template.DocumentType,
		"template_name":    template.TemplateName,
		"template_content": template.TemplateContent,
		"fields_schema":    template.FieldsSchema,
		"version":          template.Version,
	})
}

type signRequest struct {
	Signature string         `json:"signature" binding:"required"` // base64 payload
	FormData  map[string]any `json:"form_data"`
}

// SignDocument accepts a signature for one pending document. Signing the
// last outstanding document of the cohort moves the asset to in_use.
func SignDocument(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := svc.SignDocument(id, req.Signature, req.FormData, currentActor(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(*doc))
}

func AssetDocuments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	docs, err := svc.AssetDocuments(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	c.JSON(http.StatusOK, resp)
}

// MyPendingDocuments lists what the caller still has to sign, soonest
// expiry first.
func MyPendingDocuments(c *gin.Context) {
	user := currentUser(c)
	docs, err := svc.PendingDocuments(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	c.JSON(http.StatusOK, resp)
}
