package podcasts

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/internal/services/podcasts"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Post creates a podcast from a multipart form, or updates one when an
// ?id= query parameter is present (update-by-POST convention kept for
// frontend compatibility).
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)

		if rawID := c.Query("id"); rawID != "" {
			id, err := strconv.ParseUint(rawID, 10, 32)
			if err != nil {
				types.RespondError(c, apperrors.ValidationError("id", "must be a positive integer"))
				return
			}

			input := podcasts.UpdateInput{
				Title:       c.PostForm("title"),
				Description: c.PostForm("description"),
				Category:    c.PostForm("category"),
				AddedBy:     c.PostForm("addedBy"),
				Published:   parsePublished(c),
				Image:       formFile(c, "image"),
				Audio:       formFile(c, "audio"),
			}

			podcast, err := deps.PodcastService.Update(c.Request.Context(), claims, uint(id), input)
			if err != nil {
				types.RespondError(c, err)
				return
			}
			types.RespondMessage(c, http.StatusOK, "podcast updated", podcast)
			return
		}

		input := podcasts.CreateInput{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Category:    c.PostForm("category"),
			AddedBy:     c.PostForm("addedBy"),
			Published:   c.PostForm("published") == "1",
			Image:       formFile(c, "image"),
			Audio:       formFile(c, "audio"),
		}

		podcast, err := deps.PodcastService.Create(c.Request.Context(), claims, input)
		if err != nil {
			types.RespondError(c, err)
			return
		}
		types.RespondMessage(c, http.StatusCreated, "podcast created", podcast)
	}
}

func parsePublished(c *gin.Context) *bool {
	raw, ok := c.GetPostForm("published")
	if !ok {
		return nil
	}
	value := raw == "1" || raw == "true"
	return &value
}

// formFile returns the named upload, or nil when the form omits it.
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
