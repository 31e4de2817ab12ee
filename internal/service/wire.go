package service

import (
	"os"

	"github.com/asteroid-belt/gametracker/internal/config"
	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/hltb"
	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/steam"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/asteroid-belt/gametracker/pkg/version"
)

// FromConfig wires a Service to the local Steam install and the remote
// lookups described by cfg.
func FromConfig(cfg *config.Config, database *db.DB, tc telemetry.Client) *Service {
	checkVersion(database)

	home, _ := os.UserHomeDir()
	root := steam.DiscoverRoot(cfg.Steam.Root, home)
	if root == "" {
		log.Println("No Steam install found; only supplied game data will be synced")
	}

	return New(database, Options{
		Library:  steam.NewLibrary(root),
		Names:    steam.NewStoreClient(cfg.Steam.StoreBaseURL, cfg.Steam.StoreTimeout, cfg.Steam.NameCacheSize, cfg.Steam.NameCacheTTL),
		Searcher: hltb.NewClient(cfg.HLTB.BaseURL, cfg.HLTB.RateLimit, cfg.HLTB.Timeout),
		Pacing:   cfg.Sync.Pacing,
		Sweeper: tagging.SweeperConfig{
			Days:         cfg.Sync.DroppedDays,
			InitialDelay: cfg.Sync.SweepInitialDelay,
			Interval:     cfg.Sync.SweepInterval,
			RetryDelay:   cfg.Sync.SweepRetryDelay,
		},
		Telemetry: tc,
	})
}

// checkVersion records the running version and warns when the database was
// last opened by a newer release, whose schema this build may not know.
func checkVersion(database *db.DB) {
	previous, err := database.RecordVersion(version.Version)
	if err != nil {
		log.Errorf("record version: %v", err)
		return
	}
	if version.IsOlderThan(previous) {
		log.Printf("Warning: database was last used by gametracker %s, this is %s\n", previous, version.Version)
	}
}
