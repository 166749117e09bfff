package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/version", Get())

	req := httptest.NewRequest("GET", "/version", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Castkeep Publisher API")
	assert.Contains(t, w.Body.String(), `"status":"running"`)
}
