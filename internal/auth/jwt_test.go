package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyseen/ITAM/internal/auth"
	"github.com/skyseen/ITAM/internal/models"
)

func testUser() *models.User {
	u := &models.User{
		Username:   "jtan",
		FullName:   "Jia Tan",
		Department: "Engineering",
		Role:       models.RoleManager,
	}
	u.ID = 42
	return u
}

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := auth.GenerateToken(testUser(), secret)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token, secret)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "Jia Tan", claims.Name)
	require.Equal(t, "manager", claims.Role)
	require.Equal(t, "Engineering", claims.Department)
	require.Equal(t, "jtan", claims.Subject)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	secret := []byte("test-secret")

	token, err := auth.GenerateToken(testUser(), secret)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token, []byte("other-secret"))
	require.Error(t, err)

	_, err = auth.ValidateToken("not.a.token", secret)
	require.Error(t, err)

	_, err = auth.ValidateToken("", secret)
	require.Error(t, err)
}
