package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 60, cfg.HLTB.RateLimit)
	assert.Equal(t, time.Second, cfg.Sync.Pacing)
	assert.Equal(t, time.Hour, cfg.Sync.SweepInitialDelay)
	assert.Equal(t, 24*time.Hour, cfg.Sync.SweepInterval)
	assert.Equal(t, time.Hour, cfg.Sync.SweepRetryDelay)
	assert.Equal(t, 365, cfg.Sync.DroppedDays)
	assert.Empty(t, cfg.Steam.Root) // Discovered at runtime
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GAMETRACKER_HOME", home)
	t.Setenv("STEAM_PATH", "/opt/steam")
	t.Setenv("HLTB_BASE_URL", "http://localhost:9999/")
	t.Setenv("HLTB_RATE_LIMIT", "10")
	t.Setenv("GAMETRACKER_SYNC_PACING", "250ms")
	t.Setenv("GAMETRACKER_SWEEP_INTERVAL", "2h")
	t.Setenv("GAMETRACKER_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.Equal(t, "/opt/steam", cfg.Steam.Root)
	assert.Equal(t, "http://localhost:9999", cfg.HLTB.BaseURL)
	assert.Equal(t, 10, cfg.HLTB.RateLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.Pacing)
	assert.Equal(t, 2*time.Hour, cfg.Sync.SweepInterval)
	assert.True(t, cfg.Debug)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("GAMETRACKER_HOME", t.TempDir())
	t.Setenv("HLTB_RATE_LIMIT", "lots")
	t.Setenv("GAMETRACKER_SWEEP_RETRY_DELAY", "-5m")
	t.Setenv("GAMETRACKER_DEBUG", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.HLTB.RateLimit)
	assert.Equal(t, time.Hour, cfg.Sync.SweepRetryDelay)
	assert.False(t, cfg.Debug)
}

func TestLoadCreatesBaseDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "gametracker")
	t.Setenv("GAMETRACKER_HOME", home)

	_, err := Load()
	require.NoError(t, err)

	assert.DirExists(t, home)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data"}

	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/data", "gametracker.db"), paths.Database)
	assert.Equal(t, "/data", paths.Logs)
}

func TestSteamRootCandidates(t *testing.T) {
	got := SteamRootCandidates("/home/me")

	assert.Equal(t, []string{
		"/home/me/.steam/steam",
		"/home/me/.local/share/Steam",
		"/home/deck/.steam/steam",
	}, got)
}
