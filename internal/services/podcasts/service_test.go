package podcasts

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/castkeep/publisher-api/internal/models"
	"github.com/castkeep/publisher-api/internal/services/auth"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
	"github.com/castkeep/publisher-api/pkg/filestore"
)

// fakeStore records stores and removals without touching disk.
type fakeStore struct {
	saves   int
	removed []string
	failAll bool
}

func (f *fakeStore) Save(fh *multipart.FileHeader, kind filestore.Kind) (*filestore.StoredFile, error) {
	if f.failAll {
		return nil, apperrors.UploadError("store unavailable")
	}
	f.saves++
	return &filestore.StoredFile{
		Path: fmt.Sprintf("%s/stored-%d", kind, f.saves),
		Size: 1024,
		MIME: "application/octet-stream",
	}, nil
}

func (f *fakeStore) Remove(relPath string) {
	f.removed = append(f.removed, relPath)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: 1, Role: models.RoleAdmin}
}

func userClaims() *auth.Claims {
	return &auth.Claims{UserID: 2, Role: models.RoleUser}
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1024}
}

func newTestService(db *gorm.DB, store filestore.Store) *Service {
	return NewService(NewRepository(db), store, NewTransformer("http://localhost/uploads"))
}

func validCreateInput() CreateInput {
	return CreateInput{
		Title:       "Engineering Weekly",
		Description: "A show about building things",
		Category:    "Technology",
		AddedBy:     "HR",
		Image:       fileHeader("cover.png"),
	}
}

func TestCreatePodcast(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := newTestService(db, store)

	resp, err := svc.Create(context.Background(), adminClaims(), validCreateInput())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "hr", resp.AddedBy)
	assert.Equal(t, "http://localhost/uploads/image/stored-1", resp.ImageURL)

	var count int64
	require.NoError(t, db.Model(&models.Podcast{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePodcastRejectsNonAdmin(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := newTestService(db, store)

	_, err := svc.Create(context.Background(), userClaims(), validCreateInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForbidden))

	// No file or database mutation may have happened
	assert.Zero(t, store.saves)
	var count int64
	require.NoError(t, db.Model(&models.Podcast{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePodcastRejectsMissingToken(t *testing.T) {
	svc := newTestService(setupTestDB(t), &fakeStore{})

	_, err := svc.Create(context.Background(), nil, validCreateInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
}

func TestCreatePodcastValidation(t *testing.T) {
	svc := newTestService(setupTestDB(t), &fakeStore{})

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing title", func(in *CreateInput) { in.Title = "" }},
		{"missing description", func(in *CreateInput) { in.Description = "" }},
		{"bad added_by", func(in *CreateInput) { in.AddedBy = "intern" }},
		{"missing image", func(in *CreateInput) { in.Image = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), adminClaims(), input)
			assert.Error(t, err)
		})
	}
}

// failingRepo fails every write to exercise the compensation path.
type failingRepo struct {
	PodcastRepository
}

func (f *failingRepo) CreatePodcast(ctx context.Context, podcast *models.Podcast) error {
	return fmt.Errorf("disk is on fire")
}

func TestCreatePodcastCleansUpOnPersistFailure(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := NewService(&failingRepo{NewRepository(db)}, store, NewTransformer("http://localhost/uploads"))

	_, err := svc.Create(context.Background(), adminClaims(), validCreateInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePersistence))

	// The stored image must have been deleted again
	assert.Equal(t, []string{"image/stored-1"}, store.removed)
}

func TestUpdatePodcastReplacesImage(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := newTestService(db, store)

	created, err := svc.Create(context.Background(), adminClaims(), validCreateInput())
	require.NoError(t, err)

	published := true
	resp, err := svc.Update(context.Background(), adminClaims(), created.ID, UpdateInput{
		Title:     "Engineering Monthly",
		Published: &published,
		Image:     fileHeader("new-cover.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering Monthly", resp.Title)
	assert.True(t, resp.Published)
	assert.Equal(t, "http://localhost/uploads/image/stored-2", resp.ImageURL)

	// The replaced image is removed after the row update succeeded
	assert.Contains(t, store.removed, "image/stored-1")
}

func TestUpdatePodcastNotFound(t *testing.T) {
	svc := newTestService(setupTestDB(t), &fakeStore{})

	_, err := svc.Update(context.Background(), adminClaims(), 999, UpdateInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestDeletePodcastCascades(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := newTestService(db, store)

	created, err := svc.Create(context.Background(), adminClaims(), validCreateInput())
	require.NoError(t, err)

	// Two dependent episodes with their own files
	for i := 1; i <= 2; i++ {
		require.NoError(t, db.Create(&models.Episode{
			PodcastID: created.ID,
			Title:     fmt.Sprintf("Episode %d", i),
			Number:    i,
			AudioPath: fmt.Sprintf("audio/ep-%d.mp3", i),
			ImagePath: fmt.Sprintf("image/ep-%d.png", i),
		}).Error)
	}

	require.NoError(t, svc.Delete(context.Background(), adminClaims(), created.ID))

	var podcasts, episodes int64
	require.NoError(t, db.Model(&models.Podcast{}).Count(&podcasts).Error)
	require.NoError(t, db.Model(&models.Episode{}).Count(&episodes).Error)
	assert.Zero(t, podcasts)
	assert.Zero(t, episodes)

	// Every referenced file was attempted
	assert.Contains(t, store.removed, "audio/ep-1.mp3")
	assert.Contains(t, store.removed, "image/ep-2.png")
	assert.Contains(t, store.removed, "image/stored-1")
}

func TestDeletePodcastNotFound(t *testing.T) {
	svc := newTestService(setupTestDB(t), &fakeStore{})

	err := svc.Delete(context.Background(), adminClaims(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestDeletePodcastRejectsNonAdmin(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{}
	svc := newTestService(db, store)

	created, err := svc.Create(context.Background(), adminClaims(), validCreateInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), userClaims(), created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForbidden))

	var count int64
	require.NoError(t, db.Model(&models.Podcast{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListPodcastsFiltersUnpublished(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, &fakeStore{})

	require.NoError(t, db.Create(&models.Podcast{Title: "Public", Published: true}).Error)
	require.NoError(t, db.Create(&models.Podcast{Title: "Draft", Published: false}).Error)

	asUser, err := svc.List(context.Background(), userClaims())
	require.NoError(t, err)
	require.Len(t, asUser, 1)
	assert.Equal(t, "Public", asUser[0].Title)

	asAdmin, err := svc.List(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Len(t, asAdmin, 2)
}

func TestGetPodcastHidesDraftsFromUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db, &fakeStore{})

	draft := &models.Podcast{Title: "Draft", Published: false}
	require.NoError(t, db.Create(draft).Error)

	_, err := svc.Get(context.Background(), userClaims(), draft.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))

	resp, err := svc.Get(context.Background(), adminClaims(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", resp.Title)
}
