package episodes

import (
	"strings"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/pkg/format"
)

// Response is the outward-facing representation of an episode: file
// references become fully qualified URLs, byte counts and dates take
// their human-readable forms, and counters come back as plain integers.
type Response struct {
	ID           uint   `json:"id"`
	PodcastID    uint   `json:"podcast_id"`
	PodcastTitle string `json:"podcast_title,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Number       int    `json:"number"`
	AudioURL     string `json:"audio_url"`
	ImageURL     string `json:"image_url,omitempty"`
	VideoURL     string `json:"video_url,omitempty"`
	AudioSize    string `json:"audio_size,omitempty"`
	ImageSize    string `json:"image_size,omitempty"`
	VideoSize    string `json:"video_size,omitempty"`
	ReleaseDate  string `json:"release_date"`
	Plays        int64  `json:"plays"`
	Downloads    int64  `json:"downloads"`
	AddedBy      string `json:"added_by"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Transformer composes API responses from episode rows
type Transformer struct {
	baseURL string
}

// NewTransformer creates a transformer resolving paths against baseURL
func NewTransformer(baseURL string) *Transformer {
	return &Transformer{baseURL: baseURL}
}

func (t *Transformer) ToResponse(episode *models.Episode, podcastTitle string) Response {
	resp := Response{
		ID:           episode.ID,
		PodcastID:    episode.PodcastID,
		PodcastTitle: podcastTitle,
		Title:        episode.Title,
		Description:  episode.Description,
		Number:       episode.Number,
		AudioURL:     format.AbsoluteURL(t.baseURL, episode.AudioPath),
		ImageURL:     format.AbsoluteURL(t.baseURL, episode.ImagePath),
		VideoURL:     format.AbsoluteURL(t.baseURL, episode.VideoPath),
		ReleaseDate:  format.Date(episode.ReleaseDate),
		Plays:        episode.Plays,
		Downloads:    episode.Downloads,
		AddedBy:      strings.ToLower(episode.AddedBy),
		CreatedAt:    format.Date(episode.CreatedAt),
		UpdatedAt:    format.Date(episode.UpdatedAt),
	}

	if episode.AudioSize > 0 {
		resp.AudioSize = format.Bytes(episode.AudioSize)
	}
	if episode.ImageSize > 0 {
		resp.ImageSize = format.Bytes(episode.ImageSize)
	}
	if episode.VideoSize > 0 {
		resp.VideoSize = format.Bytes(episode.VideoSize)
	}

	return resp
}
