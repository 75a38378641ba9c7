package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"listing-media/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, int64(1000000000), cfg.Allocator.PartitionThreshold)
	assert.Equal(t, int64(10<<20), cfg.Media.MaxUploadBytes)
	assert.Equal(t, 100, cfg.Media.MaxPhotosPerListing)
	assert.Equal(t, 2048, cfg.Media.MaxEdge)
	assert.Equal(t, int64(40000000), cfg.Media.MaxPixels)
	assert.Equal(t, 8, cfg.Reconcile.Concurrency)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "media.blob.deleted", cfg.Messaging.DeletionSubject)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ALLOCATOR_PARTITION_THRESHOLD", "5000")
	t.Setenv("MEDIA_MAX_PHOTOS_PER_LISTING", "12")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.Allocator.PartitionThreshold)
	assert.Equal(t, 12, cfg.Media.MaxPhotosPerListing)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_BUCKET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STORAGE_BUCKET") })

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Storage.Bucket)
}
