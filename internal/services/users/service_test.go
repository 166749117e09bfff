package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	return NewService(NewRepository(db), authService)
}

func TestRegister(t *testing.T) {
	svc := setupService(t)

	user, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret123", "")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := setupService(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
	}{
		{"missing name", "", "a@example.com", "secret123", ""},
		{"bad email", "Jane", "not-an-email", "secret123", ""},
		{"short password", "Jane", "a@example.com", "abc", ""},
		{"unknown role", "Jane", "a@example.com", "secret123", "superuser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Jane", "jane@example.com", "different", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))

	// Exactly one row may exist
	var count int64
	db := svc.repository.(*Repository).db
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret123", models.RoleAdmin)
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret123", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
}
