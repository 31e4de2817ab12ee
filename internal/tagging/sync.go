package tagging

import (
	"context"
	"fmt"
	"time"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
)

// Store is the persistence the orchestrator and sweeper use.
type Store interface {
	GetTag(appID string) (*models.GameTag, error)
	SetTag(appID string, tag models.Tag, isManual bool) error
	RemoveTag(appID string) (bool, error)
	GetStats(appID string) (*models.GameStats, error)
	UpsertStats(stats *models.GameStats) error
	Settings() (models.Settings, error)
	EligibleForDropped(days int, now int64) ([]models.GameStats, error)
}

// CompletionSource serves completion times, fetching on a cache miss.
type CompletionSource interface {
	Cached(appID string) (*models.CompletionTime, error)
	GetOrFetch(ctx context.Context, appID, name string) (*models.CompletionTime, bool, error)
}

// Inventory resolves names from the local install.
type Inventory interface {
	GameName(appID string) (string, bool)
}

// NameLookup resolves names from a remote catalogue.
type NameLookup interface {
	Name(ctx context.Context, appID string) (string, bool)
}

// LiveData is the caller's current view of one game. A nil Achievements or
// LastPlayed means "not known", and the stored value is kept.
type LiveData struct {
	PlaytimeMinutes int                  `json:"playtime_minutes"`
	Achievements    *models.Achievements `json:"achievements,omitempty"`
	LastPlayed      *int64               `json:"rt_last_time_played,omitempty"`
	Name            string               `json:"name,omitempty"`
}

// SyncResult is the outcome of syncing one game.
type SyncResult struct {
	AppID      string          `json:"appid"`
	Tag        *models.GameTag `json:"tag"`
	TagChanged bool            `json:"tag_changed"`
	Hidden     bool            `json:"is_hidden"`

	// Fetched reports whether a completion-time search was made.
	Fetched bool `json:"-"`
}

// Options configures an Orchestrator. Zero values are usable.
type Options struct {
	Inventory Inventory
	Names     NameLookup
	Progress  *ProgressTracker
	// Pacing is the pause after every 5th completion-time fetch in SyncLibrary.
	Pacing time.Duration
	Now    func() time.Time
}

// Orchestrator merges live data with stored state, classifies games and
// writes the results back.
type Orchestrator struct {
	store       Store
	completions CompletionSource
	inventory   Inventory
	names       NameLookup
	progress    *ProgressTracker
	pacing      time.Duration
	now         func() time.Time
	sleep       func(context.Context, time.Duration) error
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(store Store, completions CompletionSource, opts Options) *Orchestrator {
	o := &Orchestrator{
		store:       store,
		completions: completions,
		inventory:   opts.Inventory,
		names:       opts.Names,
		progress:    opts.Progress,
		pacing:      opts.Pacing,
		now:         opts.Now,
		sleep:       sleepCtx,
	}
	if o.progress == nil {
		o.progress = NewProgressTracker()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Progress returns the tracker used by SyncLibrary.
func (o *Orchestrator) Progress() *ProgressTracker {
	return o.progress
}

// SyncGame refreshes the stored stats for one game and reclassifies it.
//
// A manual tag is left untouched unless force is set, in which case the
// manual flag is dropped and the tag recomputed; if nothing applies the
// tag is removed. Stats are written either way. Hidden games (non-Steam ids
// without a completion time) and games synced while auto-tagging is off
// are recorded but not classified. A forced sync classifies regardless of
// the auto-tagging setting.
func (o *Orchestrator) SyncGame(ctx context.Context, appID string, live LiveData, force bool) (*SyncResult, error) {
	current, err := o.store.GetTag(appID)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	manual := current != nil && current.IsManual && !force

	existing, err := o.store.GetStats(appID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	settings, err := o.store.Settings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	name := o.resolveName(ctx, appID, live.Name, existing)

	result := &SyncResult{AppID: appID}

	var entry *models.CompletionTime
	if manual {
		// Manual games never trigger a search; the cache still decides visibility.
		entry, err = o.completions.Cached(appID)
		if err != nil {
			return nil, err
		}
	} else {
		entry, result.Fetched, err = o.completions.GetOrFetch(ctx, appID, name)
		if err != nil {
			log.Errorf("completion time for %s (%s): %v", name, appID, err)
			entry = nil
		}
	}

	result.Hidden = models.IsNonSteamID(appID) && entry == nil

	stats := mergeStats(appID, name, live, existing)
	stats.IsHidden = result.Hidden
	if err := o.store.UpsertStats(stats); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}

	switch {
	case manual:
		log.Debugf("sync %s: manual tag kept", appID)
	case !settings.AutoTagEnabled && !force:
		log.Debugf("sync %s: auto-tagging disabled", appID)
	default:
		changed, err := o.applyTag(appID, current, stats, entry, settings, result.Hidden, force)
		if err != nil {
			return nil, err
		}
		result.TagChanged = changed
	}

	result.Tag, err = o.store.GetTag(appID)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) applyTag(appID string, current *models.GameTag, stats *models.GameStats, entry *models.CompletionTime, settings models.Settings, hidden, force bool) (bool, error) {
	resetManual := force && current != nil && current.IsManual

	tag := models.TagNone
	if !hidden {
		tag = Classify(stats, entry, settings, o.now())
	}

	if tag == models.TagNone {
		// Automatic syncs never clear a tag; a reset that lands on
		// backlog does.
		if !resetManual {
			return false, nil
		}
		if _, err := o.store.RemoveTag(appID); err != nil {
			return false, fmt.Errorf("remove tag: %w", err)
		}
		log.Debugf("sync %s: manual tag cleared", appID)
		return true, nil
	}

	if current != nil && current.Tag == tag && !resetManual {
		return false, nil
	}
	if err := o.store.SetTag(appID, tag, false); err != nil {
		return false, fmt.Errorf("set tag: %w", err)
	}
	log.Debugf("sync %s: tag set to %s", appID, tag)
	return true, nil
}

// resolveName prefers the caller's name, then the local manifest, then the
// remote catalogue, then whatever real name was stored before.
func (o *Orchestrator) resolveName(ctx context.Context, appID, liveName string, existing *models.GameStats) string {
	if liveName != "" {
		return liveName
	}
	if o.inventory != nil {
		if name, ok := o.inventory.GameName(appID); ok && !models.IsPlaceholderName(name) {
			return name
		}
	}
	if o.names != nil && !models.IsNonSteamID(appID) {
		if name, ok := o.names.Name(ctx, appID); ok && !models.IsPlaceholderName(name) {
			return name
		}
	}
	if existing != nil && !models.IsPlaceholderName(existing.GameName) {
		return existing.GameName
	}
	return models.PlaceholderName(appID)
}

// mergeStats builds the row to store. Missing achievement or last-played
// data keeps the stored values.
func mergeStats(appID, name string, live LiveData, existing *models.GameStats) *models.GameStats {
	stats := &models.GameStats{
		AppID:           appID,
		GameName:        name,
		PlaytimeMinutes: live.PlaytimeMinutes,
		LastPlayedAt:    live.LastPlayed,
	}
	if stats.PlaytimeMinutes < 0 {
		stats.PlaytimeMinutes = 0
	}

	switch {
	case live.Achievements != nil && live.Achievements.Total > 0:
		stats.SetAchievements(*live.Achievements)
	case existing != nil:
		stats.SetAchievements(models.Achievements{
			Total:    existing.TotalAchievements,
			Unlocked: existing.UnlockedAchievements,
		})
	}

	if stats.LastPlayedAt == nil && existing != nil {
		stats.LastPlayedAt = existing.LastPlayedAt
	}
	return stats
}
