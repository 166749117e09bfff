package episodes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Get serves the episode read surface: ?id= for a single episode,
// ?podcast_id= for a podcast's episodes, neither for the paginated
// listing across all podcasts. All reads are public.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rawID := c.Query("id"); rawID != "" {
			id, err := strconv.ParseUint(rawID, 10, 32)
			if err != nil {
				types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
				return
			}

			episode, err := deps.EpisodeService.Get(c.Request.Context(), uint(id))
			if err != nil {
				types.RespondError(c, err)
				return
			}
			types.RespondData(c, http.StatusOK, episode)
			return
		}

		if rawPodcastID := c.Query("podcast_id"); rawPodcastID != "" {
			podcastID, err := strconv.ParseUint(rawPodcastID, 10, 32)
			if err != nil {
				types.RespondError(c, apperrors.ValidationError("podcast_id", "must be a positive integer"))
				return
			}

			episodes, err := deps.EpisodeService.ListByPodcast(c.Request.Context(), uint(podcastID))
			if err != nil {
				types.RespondError(c, err)
				return
			}
			types.RespondData(c, http.StatusOK, episodes)
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		result, err := deps.EpisodeService.ListAll(c.Request.Context(), page, limit)
		if err != nil {
			types.RespondError(c, err)
			return
		}
		types.RespondData(c, http.StatusOK, result)
	}
}
