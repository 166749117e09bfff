package podcasts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/types"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Get returns a single podcast by ?id= or the full role-filtered list
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)

		if rawID := c.Query("id"); rawID != "" {
			id, err := strconv.ParseUint(rawID, 10, 32)
			if err != nil {
				types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
				return
			}

			podcast, err := deps.PodcastService.Get(c.Request.Context(), claims, uint(id))
			if err != nil {
				types.RespondError(c, err)
				return
			}
			types.RespondData(c, http.StatusOK, podcast)
			return
		}

		podcasts, err := deps.PodcastService.List(c.Request.Context(), claims)
		if err != nil {
			types.RespondError(c, err)
			return
		}
		types.RespondData(c, http.StatusOK, podcasts)
	}
}
