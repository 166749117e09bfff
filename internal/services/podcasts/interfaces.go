package podcasts

import (
	"context"
	"mime/multipart"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
)

// PodcastRepository defines the data access interface for podcasts
type PodcastRepository interface {
	CreatePodcast(ctx context.Context, podcast *models.Podcast) error
	UpdatePodcast(ctx context.Context, podcast *models.Podcast) error
	GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error)

	// ListPodcasts returns all rows, or published rows only.
	ListPodcasts(ctx context.Context, publishedOnly bool) ([]models.Podcast, error)

	// DeletePodcastCascade removes the podcast and its episodes in one
	// transaction and returns the file paths the rows referenced, so the
	// caller can delete the blobs after commit.
	DeletePodcastCascade(ctx context.Context, id uint) ([]string, error)
}

// CreateInput carries the fields and uploads of a create request.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	AddedBy     string
	Published   bool

	Image *multipart.FileHeader // required
	Audio *multipart.FileHeader // optional trailer/intro audio
}

// UpdateInput carries a partial update. Nil/empty fields keep their
// stored values.
type UpdateInput struct {
	Title       string
	Description string
	Category    string
	AddedBy     string
	Published   *bool

	Image *multipart.FileHeader
	Audio *multipart.FileHeader
}

// PodcastService is the record manager for podcasts. Every mutating
// operation authenticates and authorizes before touching files or rows.
type PodcastService interface {
	Create(ctx context.Context, claims *auth.Claims, input CreateInput) (*Response, error)
	Update(ctx context.Context, claims *auth.Claims, id uint, input UpdateInput) (*Response, error)
	Delete(ctx context.Context, claims *auth.Claims, id uint) error

	Get(ctx context.Context, claims *auth.Claims, id uint) (*Response, error)
	List(ctx context.Context, claims *auth.Claims) ([]Response, error)
}
