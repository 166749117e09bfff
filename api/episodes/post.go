package episodes

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/internal/services/episodes"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Post creates an episode from a multipart form, or updates one when an
// ?id= query parameter is present.
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)

		if rawID := c.Query("id"); rawID != "" {
			id, err := strconv.ParseUint(rawID, 10, 32)
			if err != nil {
				types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
				return
			}

			input := episodes.UpdateInput{
				Title:       c.PostForm("title"),
				Description: c.PostForm("description"),
				AddedBy:     c.PostForm("added_by"),
				ReleaseDate: c.PostForm("release_date"),
				RemoveVideo: c.PostForm("remove_video") == "1",
				Audio:       formFile(c, "audio"),
				Image:       formFile(c, "image"),
				Video:       formFile(c, "video"),
			}
			if rawNumber := c.PostForm("episode_number"); rawNumber != "" {
				number, err := strconv.Atoi(rawNumber)
				if err != nil {
					types.RespondError(c, apperrors.ValidationError("episode_number", "must be a positive integer"))
					return
				}
				input.Number = &number
			}

			episode, err := deps.EpisodeService.Update(c.Request.Context(), claims, uint(id), input)
			if err != nil {
				types.RespondError(c, err)
				return
			}
			types.RespondMessage(c, http.StatusOK, "episode updated", episode)
			return
		}

		podcastID, err := strconv.ParseUint(c.PostForm("podcast_id"), 10, 32)
		if err != nil {
			types.RespondError(c, apperrors.ValidationError("podcast_id", "must be a positive integer"))
			return
		}
		number, err := strconv.Atoi(c.PostForm("episode_number"))
		if err != nil {
			types.RespondError(c, apperrors.ValidationError("episode_number", "must be a positive integer"))
			return
		}

		input := episodes.CreateInput{
			PodcastID:   uint(podcastID),
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Number:      number,
			AddedBy:     c.PostForm("added_by"),
			ReleaseDate: c.PostForm("release_date"),
			Audio:       formFile(c, "audio"),
			Image:       formFile(c, "image"),
			Video:       formFile(c, "video"),
		}

		episode, err := deps.EpisodeService.Create(c.Request.Context(), claims, input)
		if err != nil {
			types.RespondError(c, err)
			return
		}
		types.RespondMessage(c, http.StatusCreated, "episode created", episode)
	}
}

// formFile returns the named upload, or nil when the form omits it.
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
