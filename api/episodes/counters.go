package episodes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// IncrementPlays bumps the play counter. Called by players on start of
// playback; no authentication, same as the read surface.
func IncrementPlays(deps *types.Dependencies) gin.HandlerFunc {
	return counterHandler(deps, func(c *gin.Context, id uint) error {
		return deps.EpisodeService.IncrementPlays(c.Request.Context(), id)
	})
}

// IncrementDownloads bumps the download counter
func IncrementDownloads(deps *types.Dependencies) gin.HandlerFunc {
	return counterHandler(deps, func(c *gin.Context, id uint) error {
		return deps.EpisodeService.IncrementDownloads(c.Request.Context(), id)
	})
}

func counterHandler(deps *types.Dependencies, increment func(*gin.Context, uint) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
			return
		}

		if err := increment(c, uint(id)); err != nil {
			types.RespondError(c, err)
			return
		}
		types.RespondMessage(c, http.StatusOK, "recorded", nil)
	}
}
