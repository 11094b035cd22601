package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyseen/ITAM/internal/config"
	"github.com/skyseen/ITAM/internal/handlers"
	"github.com/skyseen/ITAM/internal/middleware"
	"github.com/skyseen/ITAM/internal/models"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	handlers.Init()

	secret := []byte(cfg.JWTSecret)

	// AUTH
	r.POST("/auth/login", handlers.Login(secret))

	api := r.Group("/")
	api.Use(middleware.RequireAuth(secret))

	api.GET("/auth/me", handlers.Me)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// ASSETS
	api.GET("/assets", handlers.ListAssets)
	api.GET("/assets/export/csv", manage, handlers.ExportAssetsCSV)
	api.GET("/assets/:id", handlers.GetAsset)
	api.POST("/assets", manage, handlers.CreateAsset)
	api.PUT("/assets/:id", manage, handlers.UpdateAsset)
	api.DELETE("/assets/:id", adminOnly, handlers.DeleteAsset)

	// ISSUANCE
	api.POST("/assets/:id/issue", manage, handlers.IssueAsset)
	api.POST("/assets/:id/return", manage, handlers.ReturnAsset)
	api.GET("/assets/:id/history", handlers.AssetHistory)
	api.GET("/assets/:id/active-issuance", handlers.AssetActiveIssuance)
	api.POST("/issuances/:id/cancel", manage, handlers.CancelIssuance)

	// DOCUMENTS
	api.GET("/documents/templates", handlers.ListDocumentTemplates)
	api.GET("/documents/templates/:type", handlers.GetDocumentTemplate)
	api.POST("/documents/:id/sign", handlers.SignDocument)
	api.GET("/documents/pending", handlers.MyPendingDocuments)
	api.GET("/assets/:id/documents", handlers.AssetDocuments)

	// USERS
	api.GET("/users", manage, handlers.ListUsers)
	api.GET("/users/:id", manage, handlers.GetUser)
	api.POST("/users", adminOnly, handlers.CreateUser)
	api.PUT("/users/:id", adminOnly, handlers.UpdateUser)

	// DEPARTMENTS
	api.GET("/departments", handlers.ListDepartments)

	// DASHBOARD / REPORTING
	api.GET("/dashboard", handlers.Dashboard)
	api.GET("/audit", manage, handlers.ListAuditLogs)

	// NOTIFICATIONS
	api.GET("/notifications", handlers.MyNotifications)
	api.POST("/notifications/:id/read", handlers.MarkNotificationRead)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
