package episodes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/types"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Delete removes an episode and attempts deletion of its files
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.Query("id")
		if rawID == "" {
			types.RespondError(c, apperrors.MissingFieldError("id"))
			return
		}
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
			return
		}

		if err := deps.EpisodeService.Delete(c.Request.Context(), middleware.ClaimsFrom(c), uint(id)); err != nil {
			types.RespondError(c, err)
			return
		}

		types.RespondMessage(c, http.StatusOK, "episode deleted", nil)
	}
}
