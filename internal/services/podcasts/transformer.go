package podcasts

import (
	"strings"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/pkg/format"
)

// Response is the outward-facing representation of a podcast: stored
// relative paths become fully qualified URLs and dates take the fixed
// pretty form.
type Response struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	AudioURL    string `json:"audio_url,omitempty"`
	AddedBy     string `json:"added_by"`
	Published   bool   `json:"published"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Transformer composes API responses from podcast rows
type Transformer struct {
	baseURL string
}

// NewTransformer creates a transformer resolving paths against baseURL
func NewTransformer(baseURL string) *Transformer {
	return &Transformer{baseURL: baseURL}
}

func (t *Transformer) ToResponse(podcast *models.Podcast) Response {
	return Response{
		ID:          podcast.ID,
		UserID:      podcast.UserID,
		Title:       podcast.Title,
		Description: podcast.Description,
		Category:    podcast.Category,
		ImageURL:    format.AbsoluteURL(t.baseURL, podcast.ImagePath),
		AudioURL:    format.AbsoluteURL(t.baseURL, podcast.AudioPath),
		AddedBy:     strings.ToLower(podcast.AddedBy),
		Published:   podcast.Published,
		CreatedAt:   format.Date(podcast.CreatedAt),
		UpdatedAt:   format.Date(podcast.UpdatedAt),
	}
}

func (t *Transformer) ToResponses(podcasts []models.Podcast) []Response {
	responses := make([]Response, 0, len(podcasts))
	for i := range podcasts {
		responses = append(responses, t.ToResponse(&podcasts[i]))
	}
	return responses
}
