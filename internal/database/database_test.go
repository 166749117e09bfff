package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castkeep/publisher-api/internal/models"
)

func TestInitialize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
}

func TestAutoMigrate(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate(models.All()...))

	for _, table := range []string{"users", "podcasts", "episodes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestHealthCheckNotInitialized(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}
