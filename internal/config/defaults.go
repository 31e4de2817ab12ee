package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Steam: SteamConfig{
			StoreBaseURL:  "https://store.steampowered.com",
			StoreTimeout:  10 * time.Second,
			NameCacheSize: 512,
			NameCacheTTL:  24 * time.Hour,
		},

		HLTB: HLTBConfig{
			BaseURL:   "https://howlongtobeat.com",
			RateLimit: 60,
			Timeout:   15 * time.Second,
		},

		Sync: SyncConfig{
			Pacing:            time.Second,
			SweepInitialDelay: time.Hour,
			SweepInterval:     24 * time.Hour,
			SweepRetryDelay:   time.Hour,
			DroppedDays:       365,
		},
	}
}

// SteamRootCandidates lists the install locations probed when STEAM_PATH is
// unset, in priority order.
func SteamRootCandidates(home string) []string {
	return []string{
		home + "/.steam/steam",
		home + "/.local/share/Steam",
		"/home/deck/.steam/steam",
	}
}
