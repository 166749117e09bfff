package health

import (
	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
)

// RegisterRoutes registers health check routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/health", Get(deps))
}
