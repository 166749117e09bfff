package types

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// SuccessResponse is the envelope for successful calls
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed calls
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondData writes a success envelope with a payload
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// RespondMessage writes a success envelope with a payload and message
func RespondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

// RespondError maps an error to its HTTP status. Typed application
// errors surface their own message; anything unexpected is logged with
// context and converted to a generic 500 so internals never leak.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		// Typed messages are safe to surface; 5xx causes still get logged
		if appErr.GetHTTPCode() >= http.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(appErr.GetHTTPCode(), ErrorResponse{Message: appErr.Message})
		return
	}

	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}
