package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AddedBy provenance tags recorded on podcasts and episodes. Unrelated
// to authentication identity.
const (
	AddedByHR       = "hr"
	AddedByManager  = "manager"
	AddedByEmployee = "employee"
)

// User represents a user account
type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"not null;default:user"`
}

// Podcast represents a published show
type Podcast struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category"`
	ImagePath   string    `json:"image_path"`
	AudioPath   string    `json:"audio_path"`
	AddedBy     string    `json:"added_by"`
	Published   bool      `json:"published" gorm:"default:false"`
	Episodes    []Episode `json:"episodes,omitempty" gorm:"foreignKey:PodcastID;constraint:OnDelete:CASCADE"`
}

// Episode represents a single installment of a podcast. The episode
// number is unique within its podcast; the composite index is the
// source of truth for that invariant.
type Episode struct {
	gorm.Model
	PodcastID   uint      `json:"podcast_id" gorm:"not null;index;uniqueIndex:idx_podcast_episode_number"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Number      int       `json:"number" gorm:"not null;uniqueIndex:idx_podcast_episode_number"`
	AudioPath   string    `json:"audio_path" gorm:"not null"`
	ImagePath   string    `json:"image_path"`
	VideoPath   string    `json:"video_path"`
	AudioSize   int64     `json:"audio_size"`
	ImageSize   int64     `json:"image_size"`
	VideoSize   int64     `json:"video_size"`
	ReleaseDate time.Time `json:"release_date"`
	Plays       int64     `json:"plays" gorm:"default:0"`
	Downloads   int64     `json:"downloads" gorm:"default:0"`
	AddedBy     string    `json:"added_by"`
}

// All returns every model the schema declares, in migration order.
// Podcast deletion relies on this being the complete set of dependents;
// there is no runtime table probing.
func All() []any {
	return []any{&User{}, &Podcast{}, &Episode{}}
}
