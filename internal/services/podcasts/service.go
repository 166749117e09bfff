package podcasts

import (
	"context"
	"log"
	"strings"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
	"github.com/castkeep/publisher-api/pkg/filestore"
	"github.com/castkeep/publisher-api/pkg/validate"
)

type Service struct {
	repository  PodcastRepository
	files       filestore.Store
	transformer *Transformer
}

var _ PodcastService = (*Service)(nil)

func NewService(repository PodcastRepository, files filestore.Store, transformer *Transformer) *Service {
	return &Service{
		repository:  repository,
		files:       files,
		transformer: transformer,
	}
}

// Create runs the full pipeline for a new podcast: authorize, validate,
// store files, persist, compose. Any failure after files were stored
// deletes them again before returning.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, input CreateInput) (*Response, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	if err := validateFields(input.Title, input.Description, input.AddedBy); err != nil {
		return nil, err
	}
	if input.Image == nil {
		return nil, apperrors.MissingFieldError("image")
	}

	var stored []string
	cleanup := func() {
		for _, p := range stored {
			s.files.Remove(p)
		}
	}

	image, err := s.files.Save(input.Image, filestore.KindImage)
	if err != nil {
		return nil, err
	}
	stored = append(stored, image.Path)

	podcast := &models.Podcast{
		UserID:      claims.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		ImagePath:   image.Path,
		AddedBy:     strings.ToLower(strings.TrimSpace(input.AddedBy)),
		Published:   input.Published,
	}

	// Audio is optional; a failed store is a warning, not a failure
	if input.Audio != nil {
		if audio, err := s.files.Save(input.Audio, filestore.KindAudio); err != nil {
			log.Printf("[WARN] Skipping optional podcast audio: %v", err)
		} else {
			stored = append(stored, audio.Path)
			podcast.AudioPath = audio.Path
		}
	}

	if err := s.repository.CreatePodcast(ctx, podcast); err != nil {
		cleanup()
		return nil, apperrors.PersistenceError("create podcast", err)
	}

	return s.reread(ctx, podcast.ID)
}

// Update modifies a podcast in place. New uploads replace the stored
// references; the replaced files are deleted only after the row update
// succeeded.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, id uint, input UpdateInput) (*Response, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	podcast, err := s.repository.GetPodcastByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		podcast.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		podcast.Description = input.Description
	}
	if input.Category != "" {
		podcast.Category = strings.TrimSpace(input.Category)
	}
	if input.AddedBy != "" {
		if err := validate.OneOf(input.AddedBy, "addedBy", models.AddedByHR, models.AddedByManager, models.AddedByEmployee); err != nil {
			return nil, err
		}
		podcast.AddedBy = strings.ToLower(strings.TrimSpace(input.AddedBy))
	}
	if input.Published != nil {
		podcast.Published = *input.Published
	}

	var stored, replaced []string
	cleanup := func() {
		for _, p := range stored {
			s.files.Remove(p)
		}
	}

	if input.Image != nil {
		image, err := s.files.Save(input.Image, filestore.KindImage)
		if err != nil {
			log.Printf("[WARN] Skipping podcast image replacement: %v", err)
		} else {
			stored = append(stored, image.Path)
			replaced = append(replaced, podcast.ImagePath)
			podcast.ImagePath = image.Path
		}
	}
	if input.Audio != nil {
		audio, err := s.files.Save(input.Audio, filestore.KindAudio)
		if err != nil {
			log.Printf("[WARN] Skipping podcast audio replacement: %v", err)
		} else {
			stored = append(stored, audio.Path)
			replaced = append(replaced, podcast.AudioPath)
			podcast.AudioPath = audio.Path
		}
	}

	if err := s.repository.UpdatePodcast(ctx, podcast); err != nil {
		cleanup()
		return nil, apperrors.PersistenceError("update podcast", err)
	}

	// Old files are safe to drop now that the row points elsewhere
	for _, p := range replaced {
		s.files.Remove(p)
	}

	return s.reread(ctx, podcast.ID)
}

// Delete removes the podcast, its episodes, and attempts deletion of
// every referenced file. Missing files never abort the operation.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id uint) error {
	if err := requireAdmin(claims); err != nil {
		return err
	}

	paths, err := s.repository.DeletePodcastCascade(ctx, id)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.PersistenceError("delete podcast", err)
	}

	for _, p := range paths {
		s.files.Remove(p)
	}
	return nil
}

// Get returns a single podcast. Non-admin callers only see published rows.
func (s *Service) Get(ctx context.Context, claims *auth.Claims, id uint) (*Response, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("missing token")
	}

	podcast, err := s.repository.GetPodcastByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !podcast.Published && claims.Role != models.RoleAdmin {
		return nil, apperrors.NotFound("podcast", id)
	}

	resp := s.transformer.ToResponse(podcast)
	return &resp, nil
}

// List returns podcasts, filtered to published rows for non-admins.
func (s *Service) List(ctx context.Context, claims *auth.Claims) ([]Response, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("missing token")
	}

	publishedOnly := claims.Role != models.RoleAdmin
	podcasts, err := s.repository.ListPodcasts(ctx, publishedOnly)
	if err != nil {
		return nil, apperrors.PersistenceError("list podcasts", err)
	}

	return s.transformer.ToResponses(podcasts), nil
}

func (s *Service) reread(ctx context.Context, id uint) (*Response, error) {
	podcast, err := s.repository.GetPodcastByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.transformer.ToResponse(podcast)
	return &resp, nil
}

// requireAdmin authenticates (claims present) before authorizing, so a
// missing token is always 401 and a wrong role always 403.
func requireAdmin(claims *auth.Claims) error {
	if claims == nil {
		return apperrors.Unauthorized("missing token")
	}
	return claims.RequireRole(models.RoleAdmin)
}

func validateFields(title, description, addedBy string) error {
	if err := validate.Required(title, "title"); err != nil {
		return err
	}
	if err := validate.Length(title, "title", 1, 255); err != nil {
		return err
	}
	if err := validate.Required(description, "description"); err != nil {
		return err
	}
	if err := validate.OneOf(addedBy, "addedBy", models.AddedByHR, models.AddedByManager, models.AddedByEmployee); err != nil {
		return err
	}
	return nil
}
