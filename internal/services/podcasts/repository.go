package podcasts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/castkeep/publisher-api/internal/models"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

type Repository struct {
	db *gorm.DB
}

var _ PodcastRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePodcast creates a new podcast
func (r *Repository) CreatePodcast(ctx context.Context, podcast *models.Podcast) error {
	if err := r.db.WithContext(ctx).Create(podcast).Error; err != nil {
		return fmt.Errorf("creating podcast: %w", err)
	}
	return nil
}

// UpdatePodcast updates an existing podcast
func (r *Repository) UpdatePodcast(ctx context.Context, podcast *models.Podcast) error {
	result := r.db.WithContext(ctx).Save(podcast)
	if result.Error != nil {
		return fmt.Errorf("updating podcast: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("podcast", podcast.ID)
	}
	return nil
}

// GetPodcastByID retrieves a podcast by its database ID
func (r *Repository) GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := r.db.WithContext(ctx).First(&podcast, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("podcast", id)
		}
		return nil, fmt.Errorf("getting podcast: %w", err)
	}
	return &podcast, nil
}

// ListPodcasts returns podcasts, newest first
func (r *Repository) ListPodcasts(ctx context.Context, publishedOnly bool) ([]models.Podcast, error) {
	var podcasts []models.Podcast

	query := r.db.WithContext(ctx).Model(&models.Podcast{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	if err := query.Order("created_at DESC").Find(&podcasts).Error; err != nil {
		return nil, fmt.Errorf("listing podcasts: %w", err)
	}
	return podcasts, nil
}

// DeletePodcastCascade deletes the podcast and its episodes inside one
// transaction. File paths referenced by the deleted rows are collected
// first and returned for post-commit cleanup; files are not
// transactional, so they are never touched before the commit succeeds.
func (r *Repository) DeletePodcastCascade(ctx context.Context, id uint) ([]string, error) {
	var paths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var podcast models.Podcast
		if err := tx.First(&podcast, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("podcast", id)
			}
			return fmt.Errorf("getting podcast: %w", err)
		}

		var episodes []models.Episode
		if err := tx.Where("podcast_id = ?", id).Find(&episodes).Error; err != nil {
			return fmt.Errorf("listing episodes for deletion: %w", err)
		}

		for _, ep := range episodes {
			paths = append(paths, ep.AudioPath, ep.ImagePath, ep.VideoPath)
		}
		paths = append(paths, podcast.ImagePath, podcast.AudioPath)

		if err := tx.Unscoped().Where("podcast_id = ?", id).Delete(&models.Episode{}).Error; err != nil {
			return fmt.Errorf("deleting episodes: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.Podcast{}, id).Error; err != nil {
			return fmt.Errorf("deleting podcast: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
