package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./channelpulse.db", cfg.Database.Path)
	assert.Equal(t, "UC7cs8q-gJRlGwj4A8OmCmXg", cfg.YouTube.ChannelID)
	assert.Equal(t, 0.1, cfg.Analysis.TopFraction)
	assert.Equal(t, 15, cfg.Analysis.TopKeywords)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: /tmp/test.db
youtube:
  channel_id: UCtest
analysis:
  top_fraction: 0.25
  top_keywords: 5
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "UCtest", cfg.YouTube.ChannelID)
	assert.Equal(t, 0.25, cfg.Analysis.TopFraction)
	assert.Equal(t, 5, cfg.Analysis.TopKeywords)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHANNELPULSE_DB_PATH", "/tmp/env.db")
	t.Setenv("YOUTUBE_API_KEY", "secret")
	t.Setenv("CHANNELPULSE_CHANNEL_ID", "UCenv")
	t.Setenv("CHANNELPULSE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "secret", cfg.YouTube.APIKey)
	assert.Equal(t, "UCenv", cfg.YouTube.ChannelID)
	assert.Equal(t, "debug", cfg.Log.Level)
}
