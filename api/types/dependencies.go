package types

import (
	"github.com/castkeep/publisher-api/internal/database"
	"github.com/castkeep/publisher-api/internal/services/auth"
	"github.com/castkeep/publisher-api/internal/services/episodes"
	"github.com/castkeep/publisher-api/internal/services/podcasts"
	"github.com/castkeep/publisher-api/internal/services/users"
	"github.com/castkeep/publisher-api/pkg/filestore"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	AuthService    *auth.Service
	UserService    users.UserService
	PodcastService podcasts.PodcastService
	EpisodeService episodes.EpisodeService
	FileStore      filestore.Store
}
