package episodes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/internal/database"
	"github.com/castkeep/publisher-api/internal/models"
	authService "github.com/castkeep/publisher-api/internal/services/auth"
	episodesService "github.com/castkeep/publisher-api/internal/services/episodes"
	podcastsService "github.com/castkeep/publisher-api/internal/services/podcasts"
)

type fixture struct {
	router *gin.Engine
	db     *database.DB
	auth   *authService.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	svc, err := authService.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	podcastRepo := podcastsService.NewRepository(db.DB)
	deps := &types.Dependencies{
		DB:          db,
		AuthService: svc,
		EpisodeService: episodesService.NewService(
			episodesService.NewRepository(db.DB),
			podcastRepo,
			nil,
			episodesService.NewTransformer("http://localhost:8080/uploads"),
		),
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/episodes"), deps)
	return &fixture{router: router, db: db, auth: svc}
}

func (f *fixture) seedPodcast(t *testing.T) *models.Podcast {
	t.Helper()
	podcast := &models.Podcast{
		Title:     "Field Notes",
		Category:  "science",
		UserID:    1,
		ImagePath: "images/cover.png",
		AddedBy:   "manager",
		Published: true,
	}
	require.NoError(t, f.db.DB.Create(podcast).Error)
	return podcast
}

func (f *fixture) seedEpisode(t *testing.T, podcastID uint, number int) *models.Episode {
	t.Helper()
	episode := &models.Episode{
		PodcastID:   podcastID,
		Title:       "Episode",
		Number:      number,
		AudioPath:   "audio/ep.mp3",
		AudioSize:   2048,
		ReleaseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AddedBy:     "manager",
	}
	require.NoError(t, f.db.DB.Create(episode).Error)
	return episode
}

func TestGetSingleEpisode(t *testing.T) {
	f := setup(t)
	podcast := f.seedPodcast(t)
	f.seedEpisode(t, podcast.ID, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/episodes?id=1", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"podcast_title":"Field Notes"`)
	assert.Contains(t, body, `"audio_url":"http://localhost:8080/uploads/audio/ep.mp3"`)
	assert.Contains(t, body, `"audio_size":"2 KB"`)
}

func TestGetEpisodeNotFound(t *testing.T) {
	f := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/episodes?id=42", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEpisodeInvalidID(t *testing.T) {
	f := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/episodes?id=abc", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEpisodesByPodcast(t *testing.T) {
	f := setup(t)
	podcast := f.seedPodcast(t)
	f.seedEpisode(t, podcast.ID, 1)
	f.seedEpisode(t, podcast.ID, 2)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/episodes?podcast_id=1", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
}

func TestListAllEpisodesPaginated(t *testing.T) {
	f := setup(t)
	podcast := f.seedPodcast(t)
	for i := 1; i <= 3; i++ {
		f.seedEpisode(t, podcast.ID, i)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/episodes?page=1&limit=2", nil)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Episodes   []json.RawMessage `json:"episodes"`
			Total      int64             `json:"total"`
			Page       int               `json:"page"`
			Limit      int               `json:"limit"`
			TotalPages int               `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Episodes, 2)
	assert.Equal(t, int64(3), resp.Data.Total)
	assert.Equal(t, 2, resp.Data.TotalPages)
}

func TestMutationsRequireToken(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"create without token", "POST", "/api/v1/episodes"},
		{"delete without token", "DELETE", "/api/v1/episodes?id=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.target, nil)
			f.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestDeleteRequiresAdminRole(t *testing.T) {
	f := setup(t)
	podcast := f.seedPodcast(t)
	f.seedEpisode(t, podcast.ID, 1)

	token, err := f.auth.Issue(&models.User{Email: "user@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/episodes?id=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, f.db.DB.Model(&models.Episode{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCounters(t *testing.T) {
	f := setup(t)
	podcast := f.seedPodcast(t)
	episode := f.seedEpisode(t, podcast.ID, 1)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/episodes/1/play", nil)
		f.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/episodes/1/download", nil)
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Episode
	require.NoError(t, f.db.DB.First(&got, episode.ID).Error)
	assert.Equal(t, int64(2), got.Plays)
	assert.Equal(t, int64(1), got.Downloads)
}

func TestCounterUnknownEpisode(t *testing.T) {
	f := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/episodes/99/play", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
