package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castkeep/publisher-api/internal/models"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

func testUser() *models.User {
	u := &models.User{
		Name:  "Admin",
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
	u.ID = 42
	return u
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestVerifyFailures(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
	}{
		{"empty token", func() string { return "" }},
		{"malformed token", func() string { return "not-a-jwt" }},
		{
			"wrong secret",
			func() string {
				other, _ := NewService("other-secret", time.Hour)
				token, _ := other.Issue(testUser())
				return token
			},
		},
		{
			"expired token",
			func() string {
				expired, _ := NewService("test-secret", -time.Hour)
				token, _ := expired.Issue(testUser())
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
		})
	}
}

func TestRequireRole(t *testing.T) {
	claims := &Claims{Role: models.RoleUser}

	err := claims.RequireRole(models.RoleAdmin)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForbidden))

	claims.Role = models.RoleAdmin
	assert.NoError(t, claims.RequireRole(models.RoleAdmin))
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.Error(t, err)
}
