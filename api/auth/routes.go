package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
)

// RegisterRoutes registers auth routes on the given group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("/register", Register(deps))
	group.POST("/login", Login(deps))
}
