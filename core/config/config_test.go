package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "modern", cfg.Server.Profile)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "documents", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_PROFILE", "legacy")
	t.Setenv("DATABASE_HOST", "db.example.supabase.co")
	t.Setenv("STORAGE_BUCKET", "archive")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "legacy", cfg.Server.Profile)
	assert.Equal(t, "db.example.supabase.co", cfg.Database.Host)
	assert.Equal(t, "archive", cfg.Storage.Bucket)
}
