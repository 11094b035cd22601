package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

type issueRequest struct {
	UserID             uint       `json:"user_id" binding:"required"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	Notes              string     `json:"notes"`
}

type issuanceResponse struct {
	ID                 uint       `json:"id"`
	AssetID            uint       `json:"asset_id"`
	UserID             uint       `json:"user_id"`
	UserName           string     `json:"user_name,omitempty"`
	IssuedDate         time.Time  `json:"issued_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	ReturnDate         *time.Time `json:"return_date"`
	Notes              string     `json:"notes,omitempty"`
	IssuedBy           string     `json:"issued_by"`
}

func toIssuanceResponse(i models.AssetIssuance) issuanceResponse {
	return issuanceResponse{
		ID:                 i.ID,
		AssetID:            i.AssetID,
		UserID:             i.UserID,
		UserName:           i.User.FullName,
		IssuedDate:         i.IssuedDate,
		ExpectedReturnDate: i.ExpectedReturnDate,
		ReturnDate:         i.ReturnDate,
		Notes:              i.Notes,
		IssuedBy:           i.IssuedBy,
	}
}

// IssueAsset opens an issuance: the asset goes to pending_for_signature and
// the three compliance documents are created for the receiving user.
func IssueAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	issuance, err := svc.IssueAsset(id, service.IssueRequest{
		UserID:             req.UserID,
		ExpectedReturnDate: req.ExpectedReturnDate,
		Notes:              req.Notes,
		IssuedBy:           actor.Name,
	}, actor)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toIssuanceResponse(*issuance))
}

func ReturnAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	issuance, err := svc.ReturnAsset(id, currentActor(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIssuanceResponse(*issuance))
}

type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func CancelIssuance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := svc.CancelIssuance(id, req.Reason, currentActor(c)); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func AssetHistory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	issuances, err := svc.IssuanceHistory(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := make([]issuanceResponse, 0, len(issuances))
	for _, i := range issuances {
		resp = append(resp, toIssuanceResponse(i))
	}
	c.JSON(http.StatusOK, resp)
}

func AssetActiveIssuance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	issuance, err := svc.ActiveIssuance(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if issuance == nil {
		c.JSON(http.StatusOK, gin.H{"active": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": toIssuanceResponse(*issuance)})
}
