package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/mark3labs/mcp-go/mcp"
)

// outcome is satisfied by every service response.
type outcome interface {
	Err() error
}

// trackToolCall is a helper to track MCP tool invocations.
func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	if s.telemetry != nil {
		durationMs := time.Since(start).Milliseconds()
		s.telemetry.TrackMCPToolCalled(toolName, durationMs, success)
	}
}

// reply encodes a service response. Failed responses are still JSON with
// success=false, flagged as tool errors.
func (s *Server) reply(toolName string, start time.Time, resp outcome) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.trackToolCall(toolName, start, false)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	ok := resp.Err() == nil
	s.trackToolCall(toolName, start, ok)
	if !ok {
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// bindArguments decodes tool arguments into a typed request. Numeric app
// ids are accepted and turned into strings.
func bindArguments(arguments map[string]interface{}, dst any) error {
	args := make(map[string]interface{}, len(arguments))
	for k, v := range arguments {
		args[k] = v
	}
	if n, ok := args["appid"].(float64); ok {
		args["appid"] = strconv.FormatInt(int64(n), 10)
	}

	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// handleGetTag handles the gametracker_get_tag tool.
func (s *Server) handleGetTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.GameRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_get_tag", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_get_tag", start, s.svc.GetTag(ctx, args))
}

// handleSetTag handles the gametracker_set_tag tool.
func (s *Server) handleSetTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.SetTagRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_set_tag", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_set_tag", start, s.svc.SetManualTag(ctx, args))
}

// handleRemoveTag handles the gametracker_remove_tag tool.
func (s *Server) handleRemoveTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.GameRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_remove_tag", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_remove_tag", start, s.svc.RemoveTag(ctx, args))
}

// handleResetTag handles the gametracker_reset_tag tool.
func (s *Server) handleResetTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.GameRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_reset_tag", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_reset_tag", start, s.svc.ResetToAuto(ctx, args))
}

// syncGameArgs is the flat argument shape of gametracker_sync_game.
type syncGameArgs struct {
	AppID           string               `json:"appid"`
	PlaytimeMinutes *int                 `json:"playtime_minutes"`
	Achievements    *models.Achievements `json:"achievements"`
	LastPlayed      *int64               `json:"rt_last_time_played"`
	Name            string               `json:"name"`
	Force           bool                 `json:"force"`
}

// request returns the service request. Live data is set only when the
// caller sent some; otherwise the service reads the local install.
func (a syncGameArgs) request() service.SyncGameRequest {
	req := service.SyncGameRequest{AppID: a.AppID, Force: a.Force}
	if a.PlaytimeMinutes == nil && a.Achievements == nil && a.LastPlayed == nil && a.Name == "" {
		return req
	}
	live := &tagging.LiveData{
		Achievements: a.Achievements,
		LastPlayed:   a.LastPlayed,
		Name:         a.Name,
	}
	if a.PlaytimeMinutes != nil {
		live.PlaytimeMinutes = *a.PlaytimeMinutes
	}
	req.Live = live
	return req
}

// handleSyncGame handles the gametracker_sync_game tool.
func (s *Server) handleSyncGame(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args syncGameArgs
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_sync_game", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_sync_game", start, s.svc.SyncGame(ctx, args.request()))
}

// handleSyncLibrary handles the gametracker_sync_library tool.
func (s *Server) handleSyncLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.SyncLibraryRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_sync_library", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_sync_library", start, s.svc.SyncLibrary(ctx, args))
}

// handleGetGameDetails handles the gametracker_get_game_details tool.
func (s *Server) handleGetGameDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.GameRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_get_game_details", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_get_game_details", start, s.svc.GetGameDetails(ctx, args))
}

// handleGetSettings handles the gametracker_get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_get_settings", time.Now(), s.svc.GetSettings(ctx))
}

// handleUpdateSettings handles the gametracker_update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.UpdateSettingsRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_update_settings", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_update_settings", start, s.svc.UpdateSettings(ctx, args))
}

// handleGetStatistics handles the gametracker_get_statistics tool.
func (s *Server) handleGetStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_get_statistics", time.Now(), s.svc.GetTagStatistics(ctx))
}

// handleGetSyncProgress handles the gametracker_get_sync_progress tool.
func (s *Server) handleGetSyncProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_get_sync_progress", time.Now(), s.svc.GetSyncProgress(ctx))
}

// handleCheckDropped handles the gametracker_check_dropped tool.
func (s *Server) handleCheckDropped(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	var args service.CheckDroppedRequest
	if err := bindArguments(req.Params.Arguments, &args); err != nil {
		s.trackToolCall("gametracker_check_dropped", start, false)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.reply("gametracker_check_dropped", start, s.svc.CheckDropped(ctx, args))
}

// handleListTagged handles the gametracker_list_tagged tool.
func (s *Server) handleListTagged(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_list_tagged", time.Now(), s.svc.ListTaggedGames(ctx))
}

// handleListBacklog handles the gametracker_list_backlog tool.
func (s *Server) handleListBacklog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_list_backlog", time.Now(), s.svc.ListBacklog(ctx))
}

// handleListGames handles the gametracker_list_games tool.
func (s *Server) handleListGames(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_list_games", time.Now(), s.svc.ListAllGames(ctx))
}

// handleRefreshCache handles the gametracker_refresh_cache tool.
func (s *Server) handleRefreshCache(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.reply("gametracker_refresh_cache", time.Now(), s.svc.RefreshCompletionCache(ctx))
}
