package episodes

import (
	"context"
	"mime/multipart"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
)

// EpisodeRepository defines the data access interface for episodes
type EpisodeRepository interface {
	CreateEpisode(ctx context.Context, episode *models.Episode) error
	UpdateEpisode(ctx context.Context, episode *models.Episode) error
	DeleteEpisode(ctx context.Context, id uint) error

	GetEpisodeByID(ctx context.Context, id uint) (*models.Episode, error)
	ListEpisodesByPodcast(ctx context.Context, podcastID uint) ([]models.Episode, error)
	ListEpisodes(ctx context.Context, page, limit int) ([]models.Episode, int64, error)

	// NumberExists reports whether another episode of the podcast
	// already uses the number. Fast-fail only; the unique index is the
	// real guarantee.
	NumberExists(ctx context.Context, podcastID uint, number int, excludeID uint) (bool, error)

	// PodcastTitles resolves parent titles for response composition.
	PodcastTitles(ctx context.Context, podcastIDs []uint) (map[uint]string, error)

	IncrementPlays(ctx context.Context, id uint) error
	IncrementDownloads(ctx context.Context, id uint) error
}

// CreateInput carries the fields and uploads of an episode create request.
type CreateInput struct {
	PodcastID   uint
	Title       string
	Description string
	Number      int
	AddedBy     string
	ReleaseDate string // "2006-01-02", defaults to today

	Audio *multipart.FileHeader // required
	Image *multipart.FileHeader // optional
	Video *multipart.FileHeader // optional
}

// UpdateInput carries a partial episode update. Nil/empty fields keep
// their stored values; RemoveVideo clears the video reference.
type UpdateInput struct {
	Title       string
	Description string
	Number      *int
	AddedBy     string
	ReleaseDate string
	RemoveVideo bool

	Audio *multipart.FileHeader
	Image *multipart.FileHeader
	Video *multipart.FileHeader
}

// Page is a paginated episode listing.
type Page struct {
	Episodes   []Response `json:"episodes"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int64      `json:"total_pages"`
}

// EpisodeService is the record manager for episodes. Mutations require
// an admin token; reads are public.
type EpisodeService interface {
	Create(ctx context.Context, claims *auth.Claims, input CreateInput) (*Response, error)
	Update(ctx context.Context, claims *auth.Claims, id uint, input UpdateInput) (*Response, error)
	Delete(ctx context.Context, claims *auth.Claims, id uint) error

	Get(ctx context.Context, id uint) (*Response, error)
	ListByPodcast(ctx context.Context, podcastID uint) ([]Response, error)
	ListAll(ctx context.Context, page, limit int) (*Page, error)

	IncrementPlays(ctx context.Context, id uint) error
	IncrementDownloads(ctx context.Context, id uint) error
}
