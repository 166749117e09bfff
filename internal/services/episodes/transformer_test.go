package episodes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castkeep/publisher-api/internal/models"
)

func TestTransformerComposesResponse(t *testing.T) {
	tr := NewTransformer("https://media.example.com/uploads")

	episode := &models.Episode{
		PodcastID:   3,
		Title:       "Pilot",
		Number:      1,
		AudioPath:   "audio/pilot.mp3",
		ImagePath:   "image/pilot.png",
		AudioSize:   5_242_880,
		ImageSize:   2048,
		ReleaseDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Plays:       12,
		AddedBy:     "Manager",
	}
	episode.ID = 9

	resp := tr.ToResponse(episode, "Engineering Weekly")

	assert.Equal(t, "https://media.example.com/uploads/audio/pilot.mp3", resp.AudioURL)
	assert.Equal(t, "https://media.example.com/uploads/image/pilot.png", resp.ImageURL)
	assert.Empty(t, resp.VideoURL)
	assert.Equal(t, "5 MB", resp.AudioSize)
	assert.Equal(t, "2 KB", resp.ImageSize)
	assert.Empty(t, resp.VideoSize)
	assert.Equal(t, "June 1, 2024", resp.ReleaseDate)
	assert.Equal(t, "manager", resp.AddedBy)
	assert.Equal(t, "Engineering Weekly", resp.PodcastTitle)
	assert.Equal(t, int64(12), resp.Plays)
}

func TestTransformerKeepsAbsoluteURLs(t *testing.T) {
	tr := NewTransformer("https://media.example.com/uploads")

	episode := &models.Episode{AudioPath: "https://cdn.example.com/audio/pilot.mp3"}
	resp := tr.ToResponse(episode, "")

	// Already-absolute values are not double-prefixed
	assert.Equal(t, "https://cdn.example.com/audio/pilot.mp3", resp.AudioURL)
}
