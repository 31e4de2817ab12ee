package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/steam"
	"github.com/asteroid-belt/gametracker/internal/tagging"
)

// SyncGameResponse is the outcome of a single-game sync or reset.
type SyncGameResponse struct {
	Result
	*tagging.SyncResult
}

// SyncLibraryResponse is the outcome of a library sync.
type SyncLibraryResponse struct {
	Result
	Message string `json:"message,omitempty"`
	*tagging.LibraryResult
}

// ProgressResponse reports the running library sync, if any.
type ProgressResponse struct {
	Result
	tagging.Progress
}

// DroppedResponse reports a manual dropped-game sweep.
type DroppedResponse struct {
	Result
	DroppedCount int    `json:"dropped_count"`
	Message      string `json:"message,omitempty"`
}

// SyncGame refreshes one game's stats and tag.
func (s *Service) SyncGame(ctx context.Context, req SyncGameRequest) SyncGameResponse {
	if err := check(&req); err != nil {
		return SyncGameResponse{Result: failed("sync game", err)}
	}

	live, err := s.liveData(req.AppID, req.Live)
	if err != nil {
		return SyncGameResponse{Result: failed("sync game", err)}
	}

	res, err := s.orch.SyncGame(ctx, req.AppID, live, req.Force)
	if err != nil {
		return SyncGameResponse{Result: failed("sync game", fmt.Errorf("sync %s: %w", req.AppID, err))}
	}
	s.telemetry.TrackGameSynced(res.TagChanged, res.Hidden)
	return SyncGameResponse{Result: succeeded(), SyncResult: res}
}

// SyncLibrary syncs the games in the request, or the whole local
// inventory when the request lists none.
func (s *Service) SyncLibrary(ctx context.Context, req SyncLibraryRequest) SyncLibraryResponse {
	if err := check(&req); err != nil {
		return SyncLibraryResponse{Result: failed("sync library", err)}
	}

	games, names := req.Games, req.Names
	if len(games) == 0 {
		var err error
		games, names, err = s.inventoryLiveData()
		if err != nil {
			return SyncLibraryResponse{Result: failed("sync library", err)}
		}
	}
	if len(games) == 0 {
		return SyncLibraryResponse{
			Result:        succeeded(),
			Message:       "No games found in library",
			LibraryResult: &tagging.LibraryResult{ErrorSamples: []tagging.SyncError{}},
		}
	}

	start := time.Now()
	res, err := s.orch.SyncLibrary(ctx, games, names)
	if err != nil {
		return SyncLibraryResponse{Result: failed("sync library", err), LibraryResult: res}
	}
	s.telemetry.TrackLibrarySynced(res.Total, res.Synced, res.NewTags, res.Errors, time.Since(start).Milliseconds())
	return SyncLibraryResponse{Result: succeeded(), LibraryResult: res}
}

// GetSyncProgress reports the library sync in flight.
func (s *Service) GetSyncProgress(_ context.Context) ProgressResponse {
	return ProgressResponse{Result: succeeded(), Progress: s.orch.Progress().Snapshot()}
}

// CheckDropped runs a dropped-game sweep now.
func (s *Service) CheckDropped(ctx context.Context, req CheckDroppedRequest) DroppedResponse {
	if err := check(&req); err != nil {
		return DroppedResponse{Result: failed("check dropped", err)}
	}
	log.Printf("Checking for games idle more than %d days\n", req.Days)

	n, err := s.sweeper.Sweep(ctx, req.Days)
	if err != nil {
		return DroppedResponse{Result: failed("check dropped", err), DroppedCount: n}
	}
	s.telemetry.TrackDroppedSweep(n, false)
	return DroppedResponse{
		Result:       succeeded(),
		DroppedCount: n,
		Message:      fmt.Sprintf("Tagged %d games as dropped", n),
	}
}

// liveData returns the caller's data, else what the local install knows,
// else the stored stats replayed so a sync without data loses nothing.
func (s *Service) liveData(appID string, supplied *tagging.LiveData) (tagging.LiveData, error) {
	if supplied != nil {
		return *supplied, nil
	}

	stored, err := s.db.GetStats(appID)
	if err != nil {
		return tagging.LiveData{}, fmt.Errorf("get stats: %w", err)
	}

	var live tagging.LiveData
	if s.library != nil {
		live = fromLocal(s.library.Stats(appID))
	}
	if live.PlaytimeMinutes == 0 && stored != nil {
		live.PlaytimeMinutes = stored.PlaytimeMinutes
	}
	return live, nil
}

// inventoryLiveData builds a batch from every game the enabled sources list.
func (s *Service) inventoryLiveData() (map[string]tagging.LiveData, map[string]string, error) {
	if s.library == nil {
		return nil, nil, nil
	}
	games, err := s.sourceGames()
	if err != nil {
		return nil, nil, err
	}

	live := make(map[string]tagging.LiveData, len(games))
	names := make(map[string]string, len(games))
	for _, g := range games {
		if g.IsExternal {
			live[g.AppID] = tagging.LiveData{PlaytimeMinutes: g.PlaytimeMinutes}
		} else {
			live[g.AppID] = fromLocal(s.library.Stats(g.AppID))
		}
		if !models.IsPlaceholderName(g.Name) {
			names[g.AppID] = g.Name
		}
	}
	return live, names, nil
}

// fromLocal converts what the install knows into live data. Zero
// achievement counts and an unknown last-played time are left unset so
// stored values survive.
func fromLocal(local steam.LocalStats) tagging.LiveData {
	live := tagging.LiveData{PlaytimeMinutes: local.Playtime.Minutes}
	if local.Achievements.Total > 0 {
		a := local.Achievements
		live.Achievements = &a
	}
	if local.Playtime.LastPlayed > 0 {
		lp := local.Playtime.LastPlayed
		live.LastPlayed = &lp
	}
	if !models.IsPlaceholderName(local.Name) {
		live.Name = local.Name
	}
	return live
}
