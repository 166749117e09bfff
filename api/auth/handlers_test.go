package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/internal/database"
	"github.com/castkeep/publisher-api/internal/models"
	authService "github.com/castkeep/publisher-api/internal/services/auth"
	"github.com/castkeep/publisher-api/internal/services/users"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	svc, err := authService.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	deps := &types.Dependencies{
		DB:          db,
		AuthService: svc,
		UserService: users.NewService(users.NewRepository(db.DB), svc),
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/auth"), deps)
	return router
}

func TestRegister(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedText   string
	}{
		{
			name:           "valid registration",
			body:           `{"name":"Dana","email":"dana@example.com","password":"secret1","role":"admin"}`,
			expectedStatus: http.StatusCreated,
			expectedText:   `"email":"dana@example.com"`,
		},
		{
			name:           "duplicate email",
			body:           `{"name":"Dana Again","email":"dana@example.com","password":"secret1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedText:   "email is already registered",
		},
		{
			name:           "invalid email",
			body:           `{"name":"Bob","email":"not-an-email","password":"secret1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedText:   "email",
		},
		{
			name:           "short password",
			body:           `{"name":"Bob","email":"bob@example.com","password":"abc"}`,
			expectedStatus: http.StatusBadRequest,
			expectedText:   "password",
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedText:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedText)
		})
	}
}

func TestLogin(t *testing.T) {
	router := setupRouter(t)

	register := `{"name":"Dana","email":"dana@example.com","password":"secret1"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(register))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials return user and token", func(t *testing.T) {
		body := `{"email":"dana@example.com","password":"secret1"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				User  userPayload `json:"user"`
				Token string      `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "dana@example.com", resp.Data.User.Email)
		assert.NotEmpty(t, resp.Data.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"email":"dana@example.com","password":"wrong-pass"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		body := `{"email":"ghost@example.com","password":"secret1"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})
}
