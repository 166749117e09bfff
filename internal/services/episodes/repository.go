package episodes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/castkeep/publisher-api/internal/models"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Pagination bounds for the unfiltered listing.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type Repository struct {
	db *gorm.DB
}

var _ EpisodeRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateEpisode inserts an episode. A violation of the
// (podcast_id, number) unique index surfaces as a conflict error, which
// closes the pre-check-then-insert race.
func (r *Repository) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict(fmt.Sprintf("episode number %d is already used in this podcast", episode.Number))
		}
		return fmt.Errorf("creating episode: %w", err)
	}
	return nil
}

func (r *Repository) UpdateEpisode(ctx context.Context, episode *models.Episode) error {
	result := r.db.WithContext(ctx).Save(episode)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict(fmt.Sprintf("episode number %d is already used in this podcast", episode.Number))
		}
		return fmt.Errorf("updating episode: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("episode", episode.ID)
	}
	return nil
}

func (r *Repository) DeleteEpisode(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Episode{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting episode: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("episode", id)
	}
	return nil
}

func (r *Repository) GetEpisodeByID(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("episode", id)
		}
		return nil, fmt.Errorf("getting episode: %w", err)
	}
	return &episode, nil
}

func (r *Repository) ListEpisodesByPodcast(ctx context.Context, podcastID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.db.WithContext(ctx).
		Where("podcast_id = ?", podcastID).
		Order("number ASC").
		Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return episodes, nil
}

// ListEpisodes returns one page of all episodes plus the total count.
func (r *Repository) ListEpisodes(ctx context.Context, page, limit int) ([]models.Episode, int64, error) {
	var episodes []models.Episode
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Episode{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting episodes: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&episodes).Error; err != nil {
		return nil, 0, fmt.Errorf("listing episodes: %w", err)
	}

	return episodes, total, nil
}

func (r *Repository) NumberExists(ctx context.Context, podcastID uint, number int, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Episode{}).
		Where("podcast_id = ? AND number = ?", podcastID, number)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking episode number: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) PodcastTitles(ctx context.Context, podcastIDs []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(podcastIDs))
	if len(podcastIDs) == 0 {
		return titles, nil
	}

	var rows []struct {
		ID    uint
		Title string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Podcast{}).
		Select("id", "title").
		Where("id IN ?", podcastIDs).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("resolving podcast titles: %w", err)
	}

	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

func (r *Repository) IncrementPlays(ctx context.Context, id uint) error {
	return r.increment(ctx, id, "plays")
}

func (r *Repository) IncrementDownloads(ctx context.Context, id uint) error {
	return r.increment(ctx, id, "downloads")
}

func (r *Repository) increment(ctx context.Context, id uint, column string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Episode{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return fmt.Errorf("incrementing %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("episode", id)
	}
	return nil
}
