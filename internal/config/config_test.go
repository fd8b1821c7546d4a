package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "shelterly", cfg.Mongo.Database)
	assert.Equal(t, "pgs", cfg.Mongo.ListingsCollection)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, 5, cfg.Bulk.PreviewSize)
	assert.Equal(t, 0, cfg.Bulk.MaxConcurrency)
	assert.True(t, cfg.InsecureJWTSecret())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yaml := []byte("mongo:\n  database: pg_test\nbulk:\n  preview_size: 3\nsmtp:\n  notify_to:\n    - ops@shelterly.in\n")
	require.NoError(t, os.WriteFile(file, yaml, 0o600))

	t.Setenv("SHELTERLY_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("SHELTERLY_BULK_MAX_CONCURRENCY", "4")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "pg_test", cfg.Mongo.Database)
	assert.Equal(t, 3, cfg.Bulk.PreviewSize)
	assert.Equal(t, 4, cfg.Bulk.MaxConcurrency)
	assert.Equal(t, []string{"ops@shelterly.in"}, cfg.SMTP.NotifyTo)
	assert.False(t, cfg.InsecureJWTSecret())
}

func TestLoadConfig_RejectsInvalidBulkSettings(t *testing.T) {
	t.Setenv("SHELTERLY_BULK_PREVIEW_SIZE", "0")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
