package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
)

// RegisterRoutes registers podcast routes on the given group. The
// group's middleware already enforced authentication; the record
// manager enforces the admin role on mutations.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", Get(deps))
	group.POST("", Post(deps))
	group.DELETE("", Delete(deps))
}
