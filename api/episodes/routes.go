package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/types"
)

// RegisterRoutes registers episode routes on the given group. Reads and
// playback counters are public; mutations require a verified token and
// the record manager enforces the admin role.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", Get(deps))
	group.POST("", middleware.RequireAuth(deps.AuthService), Post(deps))
	group.DELETE("", middleware.RequireAuth(deps.AuthService), Delete(deps))
	group.POST("/:id/play", IncrementPlays(deps))
	group.POST("/:id/download", IncrementDownloads(deps))
}
