package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/service"
)

type userRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role"`
	Password   string `json:"password" binding:"required,min=8"`
}

type userResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Department: u.Department,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func parseRole(s string) (models.UserRole, bool) {
	switch models.UserRole(s) {
	case models.RoleAdmin, models.RoleManager, models.RoleViewer:
		return models.UserRole(s), true
	}
	return "", false
}

func CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.RoleViewer
	if req.Role != "" {
		parsed, ok := parseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role: " + req.Role})
			return
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     req.FullName,
		Department:   req.Department,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	actor := currentActor(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return service.ErrConflict
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return service.RecordAudit(tx, actor, service.AuditEntry{
			Action:       "create",
			ResourceType: "user",
			ResourceID:   user.ID,
			ResourceName: user.Username,
			Description:  "Created user " + user.Username,
		})
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func ListUsers(c *gin.Context) {
	q := database.DB.Model(&models.User{})

	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}
	if role, ok := parseRole(c.Query("role")); ok {
		q = q.Where("role = ?", role)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var users []models.User
	if err := q.Order("username asc").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

func GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type userUpdateRequest struct {
	Email      *string `json:"email"`
	FullName   *string `json:"full_name"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"is_active"`
}

func UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var role models.UserRole
	if req.Role != nil {
		parsed, ok := parseRole(*req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role: " + *req.Role})
			return
		}
		role = parsed
	}

	var user models.User
	actor := currentActor(c)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return service.ErrNotFound
		}

		oldValues := map[string]any{}
		newValues := map[string]any{}
		if req.Email != nil && *req.Email != user.Email {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("email = ? AND id <> ?", *req.Email, user.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return service.ErrConflict
			}
			oldValues["email"] = user.Email
			newValues["email"] = *req.Email
			user.Email = *req.Email
		}
		if req.FullName != nil && *req.FullName != user.FullName {
			oldValues["full_name"] = user.FullName
			newValues["full_name"] = *req.FullName
			user.FullName = *req.FullName
		}
		if req.Department != nil && *req.Department != user.Department {
			oldValues["department"] = user.Department
			newValues["department"] = *req.Department
			user.Department = *req.Department
		}
		if req.Role != nil && role != user.Role {
			oldValues["role"] = string(user.Role)
			newValues["role"] = string(role)
			user.Role = role
		}
		if req.IsActive != nil && *req.IsActive != user.IsActive {
			oldValues["is_active"] = user.IsActive
			newValues["is_active"] = *req.IsActive
			user.IsActive = *req.IsActive
		}

		if len(newValues) == 0 {
			return nil
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return service.RecordAudit(tx, actor, service.AuditEntry{
			Action:       "update",
			ResourceType: "user",
			ResourceID:   user.ID,
			ResourceName: user.Username,
			Description:  "Updated user " + user.Username,
			OldValues:    oldValues,
			NewValues:    newValues,
		})
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := database.DB.Order("name asc").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list departments"})
		return
	}

	resp := make([]gin.H, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, gin.H{"id": d.ID, "name": d.Name, "description": d.Description})
	}
	c.JSON(http.StatusOK, resp)
}
