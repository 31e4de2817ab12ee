package tagging

import (
	"context"
	"sort"
	"time"

	"github.com/asteroid-belt/gametracker/internal/log"
)

const (
	// maxErrorSamples caps the per-game errors returned from a library sync.
	maxErrorSamples = 10

	// fetchesPerPause is how many completion-time fetches run between pauses.
	fetchesPerPause = 5
)

// SyncError records one game that failed during a library sync.
type SyncError struct {
	AppID string `json:"appid"`
	Error string `json:"error"`
}

// LibraryResult summarizes a library sync.
type LibraryResult struct {
	Total        int         `json:"total"`
	Synced       int         `json:"synced"`
	NewTags      int         `json:"new_tags"`
	Errors       int         `json:"errors"`
	ErrorSamples []SyncError `json:"error_details"`
}

// SyncLibrary syncs every game in live, and only those, one at a time.
// names supplies display names for games whose LiveData has none.
//
// A failing game is counted and sampled but does not stop the batch. After
// every 5th game that needed a completion-time fetch the sync pauses for the
// configured pacing. Returns ErrSyncInProgress if another library sync is
// running, and the context error if ctx is cancelled between games.
func (o *Orchestrator) SyncLibrary(ctx context.Context, live map[string]LiveData, names map[string]string) (*LibraryResult, error) {
	ids := make([]string, 0, len(live))
	for id := range live {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if err := o.progress.Begin(len(ids)); err != nil {
		return nil, err
	}
	defer o.progress.End()

	result := &LibraryResult{Total: len(ids), ErrorSamples: []SyncError{}}
	fetches := 0

	log.Printf("Syncing %d games...\n", len(ids))

	for i, appID := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		data := live[appID]
		if data.Name == "" {
			data.Name = names[appID]
		}

		res, err := o.SyncGame(ctx, appID, data, false)
		o.progress.Advance(i + 1)

		if err != nil {
			result.Errors++
			if len(result.ErrorSamples) < maxErrorSamples {
				result.ErrorSamples = append(result.ErrorSamples, SyncError{AppID: appID, Error: err.Error()})
			}
			log.Errorf("[%d/%d] sync %s failed: %v", i+1, len(ids), appID, err)
			continue
		}

		result.Synced++
		if res.TagChanged {
			result.NewTags++
		}

		if res.Fetched {
			fetches++
			if fetches%fetchesPerPause == 0 {
				if err := o.sleep(ctx, o.pacing); err != nil {
					return result, err
				}
			}
		}
	}

	log.Printf("Library sync complete: %d/%d synced, %d new tags, %d errors\n",
		result.Synced, result.Total, result.NewTags, result.Errors)
	return result, nil
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
