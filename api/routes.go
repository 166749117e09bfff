package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/auth"
	"github.com/castkeep/publisher-api/api/episodes"
	"github.com/castkeep/publisher-api/api/health"
	"github.com/castkeep/publisher-api/api/middleware"
	"github.com/castkeep/publisher-api/api/podcasts"
	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/api/version"
	authService "github.com/castkeep/publisher-api/internal/services/auth"
	episodesService "github.com/castkeep/publisher-api/internal/services/episodes"
	podcastsService "github.com/castkeep/publisher-api/internal/services/podcasts"
	usersService "github.com/castkeep/publisher-api/internal/services/users"
	"github.com/castkeep/publisher-api/pkg/config"
	"github.com/castkeep/publisher-api/pkg/filestore"
)

// jsonBodyLimit caps non-upload request bodies.
const jsonBodyLimit int64 = 1 << 20

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if err := initializeServices(deps, cfg); err != nil {
		return err
	}

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(NotFoundHandler())
	engine.NoMethod(MethodNotAllowedHandler())

	v1 := engine.Group("/api/v1")

	health.RegisterRoutes(v1, deps)
	version.RegisterRoutes(v1)

	limit := func(rps, burst int) gin.HandlerFunc {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst)
	}

	// Register auth routes with tighter rate limiting than the rest of
	// the API so credential guessing stays slow.
	authGroup := v1.Group("/auth")
	authGroup.Use(limit(cfg.RateLimiting.RPS/2+1, cfg.RateLimiting.Burst/2+1))
	authGroup.Use(RequestSizeLimitWithSize(jsonBodyLimit))
	auth.RegisterRoutes(authGroup, deps)

	// Podcast uploads carry a cover image and an optional audio trailer.
	podcastGroup := v1.Group("/podcasts")
	podcastGroup.Use(limit(cfg.RateLimiting.RPS, cfg.RateLimiting.Burst))
	podcastGroup.Use(RequestSizeLimitWithSize(filestore.MaxImageBytes + filestore.MaxAudioBytes + jsonBodyLimit))
	podcastGroup.Use(middleware.RequireAuth(deps.AuthService))
	podcasts.RegisterRoutes(podcastGroup, deps)

	// Episode uploads may carry audio, image and video together.
	episodeGroup := v1.Group("/episodes")
	episodeGroup.Use(limit(cfg.RateLimiting.RPS, cfg.RateLimiting.Burst))
	episodeGroup.Use(RequestSizeLimitWithSize(filestore.MaxImageBytes + filestore.MaxAudioBytes + filestore.MaxVideoBytes + jsonBodyLimit))
	episodes.RegisterRoutes(episodeGroup, deps)

	return nil
}

// initializeServices builds any dependency that was not injected. Tests
// inject fakes; production wiring starts from the config.
func initializeServices(deps *types.Dependencies, cfg *config.Config) error {
	if deps.AuthService == nil {
		svc, err := authService.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize auth service: %w", err)
		}
		deps.AuthService = svc
	}

	if deps.FileStore == nil {
		deps.FileStore = filestore.NewDiskStore(cfg.Storage.UploadDir)
	}

	if deps.DB == nil || deps.DB.DB == nil {
		return fmt.Errorf("database is not configured")
	}

	if deps.UserService == nil {
		deps.UserService = usersService.NewService(usersService.NewRepository(deps.DB.DB), deps.AuthService)
	}

	podcastRepo := podcastsService.NewRepository(deps.DB.DB)

	if deps.PodcastService == nil {
		deps.PodcastService = podcastsService.NewService(
			podcastRepo,
			deps.FileStore,
			podcastsService.NewTransformer(cfg.Storage.PublicBaseURL),
		)
	}

	if deps.EpisodeService == nil {
		deps.EpisodeService = episodesService.NewService(
			episodesService.NewRepository(deps.DB.DB),
			podcastRepo,
			deps.FileStore,
			episodesService.NewTransformer(cfg.Storage.PublicBaseURL),
		)
	}

	return nil
}
