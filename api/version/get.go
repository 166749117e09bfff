package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Castkeep Publisher API",
			"version":     Version,
			"description": "API for publishing and serving podcasts",
			"status":      "running",
		})
	}
}
