package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skyseen/ITAM/internal/config"
	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/models"
	"github.com/skyseen/ITAM/internal/server"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	seedTestUser(t, db, "admin", "Admin123!", models.RoleAdmin)
	seedTestUser(t, db, "viewer", "Viewer123!", models.RoleViewer)

	return server.NewRouter(&config.Config{
		ServerPort: "8080",
		JWTSecret:  "test-secret",
	})
}

func seedTestUser(t *testing.T, db *gorm.DB, username, password string, role models.UserRole) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username:     username,
		Email:        username + "@itam.local",
		FullName:     "Test " + username,
		Department:   models.DefaultDepartment,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}).Error)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLogin(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, r, "admin", "Admin123!")

	w = doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "admin", me.Username)
	require.Equal(t, "admin", me.Role)
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/assets", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/assets", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleEnforcement(t *testing.T) {
	r := setupRouter(t)
	viewer := login(t, r, "viewer", "Viewer123!")

	w := doJSON(t, r, http.MethodPost, "/assets", viewer, gin.H{
		"asset_id":        "LAP-100",
		"type":            "laptop",
		"brand":           "Dell",
		"model":           "Latitude",
		"department":      "IT",
		"purchase_date":   "2024-01-15T00:00:00Z",
		"warranty_expiry": "2027-01-15T00:00:00Z",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/audit", viewer, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssuanceLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)
	admin := login(t, r, "admin", "Admin123!")
	viewer := login(t, r, "viewer", "Viewer123!")

	// Create an asset.
	w := doJSON(t, r, http.MethodPost, "/assets", admin, gin.H{
		"asset_id":        "LAP-001",
		"type":            "laptop",
		"brand":           "Dell",
		"model":           "Latitude 7440",
		"serial_number":   "SN-001",
		"department":      "IT",
		"purchase_date":   "2024-01-15T00:00:00Z",
		"warranty_expiry": "2027-01-15T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "available", created.Status)

	var viewerUser models.User
	require.NoError(t, database.DB.Where("username = ?", "viewer").First(&viewerUser).Error)

	// Issue it to the viewer.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/assets/%d/issue", created.ID), admin, gin.H{
		"user_id": viewerUser.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Double issue is rejected.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/assets/%d/issue", created.ID), admin, gin.H{
		"user_id": viewerUser.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The viewer sees three pending documents and signs them.
	w = doJSON(t, r, http.MethodGet, "/documents/pending", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 3)

	for _, doc := range pending {
		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/documents/%d/sign", doc.ID), viewer, gin.H{
			"signature": "c2lnbmF0dXJl",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/assets/%d", created.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Status     string `json:"status"`
		Department string `json:"department"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "in_use", got.Status)

	// Return it.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/assets/%d/return", created.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/assets/%d", created.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "available", got.Status)
	require.Equal(t, "IT", got.Department)

	// The audit trail recorded the whole journey.
	w = doJSON(t, r, http.MethodGet, "/audit?resource_type=asset", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trail []struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trail))
	actions := map[string]bool{}
	for _, e := range trail {
		actions[e.Action] = true
	}
	for _, want := range []string{"create", "assign", "status_change", "return"} {
		require.True(t, actions[want], "missing audit action %q", want)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	r := setupRouter(t)
	admin := login(t, r, "admin", "Admin123!")

	var viewerUser models.User
	require.NoError(t, database.DB.Where("username = ?", "viewer").First(&viewerUser).Error)

	path := fmt.Sprintf("/users/%d", viewerUser.ID)
	w := doJSON(t, r, http.MethodPut, path, admin, gin.H{
		"email": "admin@itam.local",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut, path, admin, gin.H{
		"email": "viewer2@itam.local",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "viewer2@itam.local", resp.Email)
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}
