package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GamesResponse lists games with their tags.
type GamesResponse struct {
	Result
	Games []models.TaggedGame `json:"games"`
}

// AllGamesResponse lists the games the local inventory knows about.
type AllGamesResponse struct {
	Result
	Games []models.GameSummary `json:"games"`
}

// GameDetailsResponse gathers everything stored about one game.
type GameDetailsResponse struct {
	Result
	AppID          string                 `json:"appid"`
	Stats          *models.GameStats      `json:"stats"`
	Tag            *models.GameTag        `json:"tag"`
	CompletionTime *models.CompletionTime `json:"hltb_data"`

	// CacheStale is informational: the entry is older than cache_ttl. It is
	// still used for classification.
	CacheStale bool `json:"cache_stale"`
}

// CacheResponse reports a completion-time cache reset.
type CacheResponse struct {
	Result
	Cleared int64  `json:"cleared"`
	Message string `json:"message,omitempty"`
}

// ListTaggedGames returns tagged games ordered by tag then name. Hidden
// games appear only when their tag is manual.
func (s *Service) ListTaggedGames(ctx context.Context) GamesResponse {
	games, err := s.db.ListTaggedGames()
	if err != nil {
		return GamesResponse{Result: failed("list tagged games", err)}
	}
	for i := range games {
		games[i].GameName = s.displayName(ctx, games[i].AppID, games[i].GameName)
	}
	sort.SliceStable(games, func(i, j int) bool {
		oi, oj := games[i].Tag.SortOrder(), games[j].Tag.SortOrder()
		if oi != oj {
			return oi < oj
		}
		return strings.ToLower(games[i].GameName) < strings.ToLower(games[j].GameName)
	})
	return GamesResponse{Result: succeeded(), Games: games}
}

// ListBacklog returns visible games without a tag, ordered by name.
func (s *Service) ListBacklog(ctx context.Context) GamesResponse {
	stats, err := s.db.ListBacklog()
	if err != nil {
		return GamesResponse{Result: failed("list backlog", err)}
	}
	games := make([]models.TaggedGame, 0, len(stats))
	for _, st := range stats {
		games = append(games, models.TaggedGame{
			AppID:    st.AppID,
			GameName: s.displayName(ctx, st.AppID, st.GameName),
			Tag:      models.TagBacklog,
		})
	}
	sort.SliceStable(games, func(i, j int) bool {
		return strings.ToLower(games[i].GameName) < strings.ToLower(games[j].GameName)
	})
	return GamesResponse{Result: succeeded(), Games: games}
}

// ListAllGames returns the games of every source enabled in settings.
func (s *Service) ListAllGames(_ context.Context) AllGamesResponse {
	games, err := s.sourceGames()
	if err != nil {
		return AllGamesResponse{Result: failed("list games", err)}
	}
	return AllGamesResponse{Result: succeeded(), Games: games}
}

// GetGameDetails returns stats, tag and cached completion time for a game.
// Games never synced fall back to what the local install knows; nothing is
// written.
func (s *Service) GetGameDetails(ctx context.Context, req GameRequest) GameDetailsResponse {
	if err := check(&req); err != nil {
		return GameDetailsResponse{Result: failed("game details", err)}
	}
	resp := GameDetailsResponse{AppID: req.AppID}

	stats, err := s.db.GetStats(req.AppID)
	if err != nil {
		resp.Result = failed("game details", fmt.Errorf("get stats: %w", err))
		return resp
	}
	if stats == nil && s.library != nil {
		local := s.library.Stats(req.AppID)
		stats = &models.GameStats{
			AppID:           req.AppID,
			GameName:        local.Name,
			PlaytimeMinutes: local.Playtime.Minutes,
		}
		stats.SetAchievements(local.Achievements)
		if local.Playtime.LastPlayed > 0 {
			lp := local.Playtime.LastPlayed
			stats.LastPlayedAt = &lp
		}
	}
	if stats != nil {
		stats.GameName = s.displayName(ctx, req.AppID, stats.GameName)
	}
	resp.Stats = stats

	if resp.Tag, err = s.db.GetTag(req.AppID); err != nil {
		resp.Result = failed("game details", fmt.Errorf("get tag: %w", err))
		return resp
	}

	if resp.CompletionTime, err = s.db.GetCompletionTime(req.AppID); err != nil {
		resp.Result = failed("game details", fmt.Errorf("get completion time: %w", err))
		return resp
	}
	if resp.CompletionTime != nil {
		settings, err := s.db.Settings()
		if err != nil {
			resp.Result = failed("game details", err)
			return resp
		}
		resp.CacheStale = settings.CacheTTL > 0 && s.now().Sub(resp.CompletionTime.CachedAt) > settings.CacheTTL
	}

	resp.Result = succeeded()
	return resp
}

// RefreshCompletionCache clears cached completion times so the next sync
// looks every game up again.
func (s *Service) RefreshCompletionCache(_ context.Context) CacheResponse {
	n, err := s.db.ClearCompletionCache()
	if err != nil {
		return CacheResponse{Result: failed("refresh cache", err)}
	}
	s.telemetry.TrackCompletionCacheCleared(n)
	return CacheResponse{
		Result:  succeeded(),
		Cleared: n,
		Message: "Cache will be refreshed on next sync",
	}
}

// sourceGames lists installed and non-Steam games per the source settings.
func (s *Service) sourceGames() ([]models.GameSummary, error) {
	games := []models.GameSummary{}
	if s.library == nil {
		return games, nil
	}
	settings, err := s.db.Settings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.SourceInstalled {
		games = append(games, s.library.InstalledGames()...)
	}
	if settings.SourceNonSteam {
		games = append(games, s.library.NonSteamGames()...)
	}
	return games, nil
}

// displayName repairs placeholder names from the local install or the
// store catalogue.
func (s *Service) displayName(ctx context.Context, appID, stored string) string {
	if !models.IsPlaceholderName(stored) {
		return stored
	}
	if s.library != nil {
		if name, ok := s.library.GameName(appID); ok && !models.IsPlaceholderName(name) {
			return name
		}
	}
	if s.names != nil && !models.IsNonSteamID(appID) {
		if name, ok := s.names.Name(ctx, appID); ok && !models.IsPlaceholderName(name) {
			return name
		}
	}
	if stored == "" {
		return models.PlaceholderName(appID)
	}
	return stored
}
