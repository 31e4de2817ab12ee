// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all gametracker data (~/.gametracker)
	BaseDir string

	// Debug enables verbose logging (GAMETRACKER_DEBUG)
	Debug bool

	Steam SteamConfig

	HLTB HLTBConfig

	Sync SyncConfig
}

// SteamConfig holds local Steam install and Store API settings.
type SteamConfig struct {
	// Root overrides Steam root discovery (STEAM_PATH)
	Root string
	// StoreBaseURL is the Steam Store API used for name fallback lookups
	StoreBaseURL string
	// StoreTimeout bounds a single appdetails request
	StoreTimeout time.Duration
	// NameCacheSize and NameCacheTTL size the in-memory name cache
	NameCacheSize int
	NameCacheTTL  time.Duration
}

// HLTBConfig holds completion-time search settings.
type HLTBConfig struct {
	BaseURL   string
	RateLimit int // requests per minute
	Timeout   time.Duration
}

// SyncConfig holds library sync and dropped-sweep timing.
type SyncConfig struct {
	// Pacing is the pause after every 5th completion-time fetch in a library sync
	Pacing time.Duration

	SweepInitialDelay time.Duration
	SweepInterval     time.Duration
	SweepRetryDelay   time.Duration
	// DroppedDays is the inactivity threshold used by the background sweep
	DroppedDays int
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if home := os.Getenv("GAMETRACKER_HOME"); home != "" {
		cfg.BaseDir = home
	}
	cfg.Debug = envBool("GAMETRACKER_DEBUG", cfg.Debug)

	if root := os.Getenv("STEAM_PATH"); root != "" {
		cfg.Steam.Root = root
	}
	if u := os.Getenv("STEAM_STORE_BASE_URL"); u != "" {
		cfg.Steam.StoreBaseURL = strings.TrimRight(u, "/")
	}

	if u := os.Getenv("HLTB_BASE_URL"); u != "" {
		cfg.HLTB.BaseURL = strings.TrimRight(u, "/")
	}
	cfg.HLTB.RateLimit = envInt("HLTB_RATE_LIMIT", cfg.HLTB.RateLimit)
	cfg.HLTB.Timeout = envDuration("HLTB_TIMEOUT", cfg.HLTB.Timeout)

	cfg.Sync.Pacing = envDuration("GAMETRACKER_SYNC_PACING", cfg.Sync.Pacing)
	cfg.Sync.SweepInitialDelay = envDuration("GAMETRACKER_SWEEP_INITIAL_DELAY", cfg.Sync.SweepInitialDelay)
	cfg.Sync.SweepInterval = envDuration("GAMETRACKER_SWEEP_INTERVAL", cfg.Sync.SweepInterval)
	cfg.Sync.SweepRetryDelay = envDuration("GAMETRACKER_SWEEP_RETRY_DELAY", cfg.Sync.SweepRetryDelay)

	// Ensure directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	return os.MkdirAll(cfg.BaseDir, 0755)
}

// Invalid values fall back to the default rather than failing startup.
func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d < 0 {
		return def
	}
	return d
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
