package version

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers version routes
func RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/version", Get())
}
