package episodes

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
	"github.com/castkeep/publisher-api/internal/services/podcasts"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
	"github.com/castkeep/publisher-api/pkg/filestore"
	"github.com/castkeep/publisher-api/pkg/validate"
)

const releaseDateLayout = "2006-01-02"

type Service struct {
	repository  EpisodeRepository
	podcasts    podcasts.PodcastRepository
	files       filestore.Store
	transformer *Transformer
}

var _ EpisodeService = (*Service)(nil)

func NewService(repository EpisodeRepository, podcastRepo podcasts.PodcastRepository, files filestore.Store, transformer *Transformer) *Service {
	return &Service{
		repository:  repository,
		podcasts:    podcastRepo,
		files:       files,
		transformer: transformer,
	}
}

// Create runs the episode pipeline: authorize, validate, referential
// checks, file storage, persist, compose. Referential checks come
// before any file I/O so a request that will be rejected never stores
// a blob; every stored file is deleted again if a later step fails.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, input CreateInput) (*Response, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	if err := validate.Required(input.Title, "title"); err != nil {
		return nil, err
	}
	if err := validate.Length(input.Title, "title", 1, 255); err != nil {
		return nil, err
	}
	if input.Number <= 0 {
		return nil, apperrors.ValidationError("episode_number", "must be a positive integer")
	}
	if err := validate.OneOf(input.AddedBy, "added_by", models.AddedByHR, models.AddedByManager, models.AddedByEmployee); err != nil {
		return nil, err
	}
	if input.Audio == nil {
		return nil, apperrors.MissingFieldError("audio")
	}

	releaseDate, err := parseReleaseDate(input.ReleaseDate)
	if err != nil {
		return nil, err
	}

	// Referential checks before any file I/O
	if _, err := s.podcasts.GetPodcastByID(ctx, input.PodcastID); err != nil {
		return nil, err
	}
	taken, err := s.repository.NumberExists(ctx, input.PodcastID, input.Number, 0)
	if err != nil {
		return nil, apperrors.PersistenceError("check episode number", err)
	}
	if taken {
		return nil, apperrors.Conflict("episode number is already used in this podcast")
	}

	var stored []string
	cleanup := func() {
		for _, p := range stored {
			s.files.Remove(p)
		}
	}

	audio, err := s.files.Save(input.Audio, filestore.KindAudio)
	if err != nil {
		cleanup()
		return nil, err
	}
	stored = append(stored, audio.Path)

	episode := &models.Episode{
		PodcastID:   input.PodcastID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Number:      input.Number,
		AudioPath:   audio.Path,
		AudioSize:   audio.Size,
		ReleaseDate: releaseDate,
		AddedBy:     strings.ToLower(strings.TrimSpace(input.AddedBy)),
	}

	// Optional attachments: a failed store is logged, the reference
	// stays empty, and the operation proceeds
	if input.Image != nil {
		if image, err := s.files.Save(input.Image, filestore.KindImage); err != nil {
			log.Printf("[WARN] Skipping optional episode image: %v", err)
		} else {
			stored = append(stored, image.Path)
			episode.ImagePath = image.Path
			episode.ImageSize = image.Size
		}
	}
	if input.Video != nil {
		if video, err := s.files.Save(input.Video, filestore.KindVideo); err != nil {
			log.Printf("[WARN] Skipping optional episode video: %v", err)
		} else {
			stored = append(stored, video.Path)
			episode.VideoPath = video.Path
			episode.VideoSize = video.Size
		}
	}

	if err := s.repository.CreateEpisode(ctx, episode); err != nil {
		cleanup()
		if apperrors.IsCode(err, apperrors.ErrCodeConflict) {
			return nil, err
		}
		return nil, apperrors.PersistenceError("create episode", err)
	}

	return s.reread(ctx, episode.ID)
}

// Update modifies an episode in place. New uploads replace the stored
// references; replaced files are deleted only after the row update
// succeeded, so a failed write never orphans the row.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, id uint, input UpdateInput) (*Response, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	episode, err := s.repository.GetEpisodeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		episode.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		episode.Description = input.Description
	}
	if input.AddedBy != "" {
		if err := validate.OneOf(input.AddedBy, "added_by", models.AddedByHR, models.AddedByManager, models.AddedByEmployee); err != nil {
			return nil, err
		}
		episode.AddedBy = strings.ToLower(strings.TrimSpace(input.AddedBy))
	}
	if input.ReleaseDate != "" {
		releaseDate, err := parseReleaseDate(input.ReleaseDate)
		if err != nil {
			return nil, err
		}
		episode.ReleaseDate = releaseDate
	}
	if input.Number != nil {
		if *input.Number <= 0 {
			return nil, apperrors.ValidationError("episode_number", "must be a positive integer")
		}
		taken, err := s.repository.NumberExists(ctx, episode.PodcastID, *input.Number, episode.ID)
		if err != nil {
			return nil, apperrors.PersistenceError("check episode number", err)
		}
		if taken {
			return nil, apperrors.Conflict("episode number is already used in this podcast")
		}
		episode.Number = *input.Number
	}

	var stored, replaced []string
	cleanup := func() {
		for _, p := range stored {
			s.files.Remove(p)
		}
	}

	// Audio accompanies an update as a replacement; since the stored
	// row keeps a valid reference either way, a failed store downgrades
	// to a warning like the optional kinds
	if input.Audio != nil {
		if audio, err := s.files.Save(input.Audio, filestore.KindAudio); err != nil {
			log.Printf("[WARN] Skipping episode audio replacement: %v", err)
		} else {
			stored = append(stored, audio.Path)
			replaced = append(replaced, episode.AudioPath)
			episode.AudioPath = audio.Path
			episode.AudioSize = audio.Size
		}
	}
	if input.Image != nil {
		if image, err := s.files.Save(input.Image, filestore.KindImage); err != nil {
			log.Printf("[WARN] Skipping episode image replacement: %v", err)
		} else {
			stored = append(stored, image.Path)
			replaced = append(replaced, episode.ImagePath)
			episode.ImagePath = image.Path
			episode.ImageSize = image.Size
		}
	}
	if input.RemoveVideo {
		replaced = append(replaced, episode.VideoPath)
		episode.VideoPath = ""
		episode.VideoSize = 0
	} else if input.Video != nil {
		if video, err := s.files.Save(input.Video, filestore.KindVideo); err != nil {
			log.Printf("[WARN] Skipping episode video replacement: %v", err)
		} else {
			stored = append(stored, video.Path)
			replaced = append(replaced, episode.VideoPath)
			episode.VideoPath = video.Path
			episode.VideoSize = video.Size
		}
	}

	if err := s.repository.UpdateEpisode(ctx, episode); err != nil {
		cleanup()
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.PersistenceError("update episode", err)
	}

	for _, p := range replaced {
		s.files.Remove(p)
	}

	return s.reread(ctx, episode.ID)
}

// Delete removes the episode row and then attempts deletion of its
// files. Deletion fails closed: no token or a non-admin token never
// reaches the row.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id uint) error {
	if err := requireAdmin(claims); err != nil {
		return err
	}

	episode, err := s.repository.GetEpisodeByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteEpisode(ctx, id); err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.PersistenceError("delete episode", err)
	}

	s.files.Remove(episode.AudioPath)
	s.files.Remove(episode.ImagePath)
	s.files.Remove(episode.VideoPath)
	return nil
}

// Get returns a single episode, joined with its parent title.
func (s *Service) Get(ctx context.Context, id uint) (*Response, error) {
	episode, err := s.repository.GetEpisodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, episode)
}

// ListByPodcast returns the episodes of one podcast in number order.
func (s *Service) ListByPodcast(ctx context.Context, podcastID uint) ([]Response, error) {
	podcast, err := s.podcasts.GetPodcastByID(ctx, podcastID)
	if err != nil {
		return nil, err
	}

	episodes, err := s.repository.ListEpisodesByPodcast(ctx, podcastID)
	if err != nil {
		return nil, apperrors.PersistenceError("list episodes", err)
	}

	responses := make([]Response, 0, len(episodes))
	for i := range episodes {
		responses = append(responses, s.transformer.ToResponse(&episodes[i], podcast.Title))
	}
	return responses, nil
}

// ListAll returns one page across all podcasts. Limit is clamped to
// [1,100] with a default of 50; page is clamped to >= 1.
func (s *Service) ListAll(ctx context.Context, page, limit int) (*Page, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	episodes, total, err := s.repository.ListEpisodes(ctx, page, limit)
	if err != nil {
		return nil, apperrors.PersistenceError("list episodes", err)
	}

	ids := make([]uint, 0, len(episodes))
	seen := make(map[uint]bool)
	for i := range episodes {
		if !seen[episodes[i].PodcastID] {
			seen[episodes[i].PodcastID] = true
			ids = append(ids, episodes[i].PodcastID)
		}
	}
	titles, err := s.repository.PodcastTitles(ctx, ids)
	if err != nil {
		return nil, apperrors.PersistenceError("list episodes", err)
	}

	responses := make([]Response, 0, len(episodes))
	for i := range episodes {
		responses = append(responses, s.transformer.ToResponse(&episodes[i], titles[episodes[i].PodcastID]))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &Page{
		Episodes:   responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) IncrementPlays(ctx context.Context, id uint) error {
	return s.repository.IncrementPlays(ctx, id)
}

func (s *Service) IncrementDownloads(ctx context.Context, id uint) error {
	return s.repository.IncrementDownloads(ctx, id)
}

func (s *Service) reread(ctx context.Context, id uint) (*Response, error) {
	episode, err := s.repository.GetEpisodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, episode)
}

func (s *Service) compose(ctx context.Context, episode *models.Episode) (*Response, error) {
	titles, err := s.repository.PodcastTitles(ctx, []uint{episode.PodcastID})
	if err != nil {
		return nil, apperrors.PersistenceError("resolve podcast title", err)
	}
	resp := s.transformer.ToResponse(episode, titles[episode.PodcastID])
	return &resp, nil
}

func requireAdmin(claims *auth.Claims) error {
	if claims == nil {
		return apperrors.Unauthorized("missing token")
	}
	return claims.RequireRole(models.RoleAdmin)
}

func parseReleaseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.ValidationError("release_date", "must be in YYYY-MM-DD format")
	}
	return t, nil
}
