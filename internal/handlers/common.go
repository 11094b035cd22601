package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

var svc *service.Service

// Init wires the handlers to the shared database handle. Must be called
// after database.Init and before the router starts serving.
func Init() {
	svc = service.New(database.DB)
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet("CurrentUser").(models.User)
}

func currentActor(c *gin.Context) service.Actor {
	user := currentUser(c)
	return service.Actor{
		ID:        user.ID,
		Name:      user.FullName,
		Role:      user.Role,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// serviceError maps the core's typed failures onto HTTP statuses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrNoActiveIssuance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
