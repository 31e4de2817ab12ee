package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the gametracker MCP server.

func appIDParam() mcp.ToolOption {
	return mcp.WithString("appid",
		mcp.Required(),
		mcp.Description("Steam app id of the game (non-Steam shortcuts use their generated id)"),
	)
}

// getTagTool returns the gametracker_get_tag tool definition.
func getTagTool() mcp.Tool {
	return mcp.NewTool("gametracker_get_tag",
		mcp.WithDescription("Get the progress tag of a game. A null tag means the game is in the backlog."),
		appIDParam(),
	)
}

// setTagTool returns the gametracker_set_tag tool definition.
func setTagTool() mcp.Tool {
	return mcp.NewTool("gametracker_set_tag",
		mcp.WithDescription("Set a manual progress tag. Manual tags are never overwritten by automatic syncs."),
		appIDParam(),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("One of: completed, in_progress, mastered, dropped"),
		),
	)
}

// removeTagTool returns the gametracker_remove_tag tool definition.
func removeTagTool() mcp.Tool {
	return mcp.NewTool("gametracker_remove_tag",
		mcp.WithDescription("Remove a game's tag, moving it back to the backlog."),
		appIDParam(),
	)
}

// resetTagTool returns the gametracker_reset_tag tool definition.
func resetTagTool() mcp.Tool {
	return mcp.NewTool("gametracker_reset_tag",
		mcp.WithDescription("Drop a manual tag and let automatic classification decide again."),
		appIDParam(),
	)
}

// syncGameTool returns the gametracker_sync_game tool definition.
func syncGameTool() mcp.Tool {
	return mcp.NewTool("gametracker_sync_game",
		mcp.WithDescription("Refresh one game's stats and reclassify it. Without live data the local Steam install is read."),
		appIDParam(),
		mcp.WithNumber("playtime_minutes",
			mcp.Description("Current playtime in minutes"),
		),
		mcp.WithObject("achievements",
			mcp.Description("Achievement counts: {\"total\": n, \"unlocked\": n}. Omit to keep the stored counts."),
		),
		mcp.WithNumber("rt_last_time_played",
			mcp.Description("Unix timestamp of the last session. Omit to keep the stored value."),
		),
		mcp.WithString("name",
			mcp.Description("Display name of the game"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Reclassify even if the tag is manual (default: false)"),
		),
	)
}

// syncLibraryTool returns the gametracker_sync_library tool definition.
func syncLibraryTool() mcp.Tool {
	return mcp.NewTool("gametracker_sync_library",
		mcp.WithDescription("Sync many games at once. Only the listed games are touched; with no games the whole local library is synced."),
		mcp.WithObject("games",
			mcp.Description("Map of app id to {playtime_minutes, achievements, rt_last_time_played, name}"),
		),
		mcp.WithObject("names",
			mcp.Description("Map of app id to display name, used when a game entry has no name"),
		),
	)
}

// getGameDetailsTool returns the gametracker_get_game_details tool definition.
func getGameDetailsTool() mcp.Tool {
	return mcp.NewTool("gametracker_get_game_details",
		mcp.WithDescription("Get stored stats, tag and cached completion time for a game."),
		appIDParam(),
	)
}

// getSettingsTool returns the gametracker_get_settings tool definition.
func getSettingsTool() mcp.Tool {
	return mcp.NewTool("gametracker_get_settings",
		mcp.WithDescription("Get all tracker settings."),
	)
}

// updateSettingsTool returns the gametracker_update_settings tool definition.
func updateSettingsTool() mcp.Tool {
	return mcp.NewTool("gametracker_update_settings",
		mcp.WithDescription("Update tracker settings. Keys: auto_tag_enabled, in_progress_threshold, mastered_multiplier, cache_ttl, source_installed, source_non_steam."),
		mcp.WithObject("settings",
			mcp.Required(),
			mcp.Description("Map of setting key to new value"),
		),
	)
}

// getStatisticsTool returns the gametracker_get_statistics tool definition.
func getStatisticsTool() mcp.Tool {
	return mcp.NewTool("gametracker_get_statistics",
		mcp.WithDescription("Count games per tag, plus backlog and total."),
	)
}

// getSyncProgressTool returns the gametracker_get_sync_progress tool definition.
func getSyncProgressTool() mcp.Tool {
	return mcp.NewTool("gametracker_get_sync_progress",
		mcp.WithDescription("Report the progress of a running library sync."),
	)
}

// checkDroppedTool returns the gametracker_check_dropped tool definition.
func checkDroppedTool() mcp.Tool {
	return mcp.NewTool("gametracker_check_dropped",
		mcp.WithDescription("Tag games not played for a number of days as dropped. Manual, completed and mastered games are skipped."),
		mcp.WithNumber("days",
			mcp.Description("Idle threshold in days (default: 365)"),
		),
	)
}

// listTaggedTool returns the gametracker_list_tagged tool definition.
func listTaggedTool() mcp.Tool {
	return mcp.NewTool("gametracker_list_tagged",
		mcp.WithDescription("List tagged games ordered by tag (completed, mastered, in_progress, dropped) then name."),
	)
}

// listBacklogTool returns the gametracker_list_backlog tool definition.
func listBacklogTool() mcp.Tool {
	return mcp.NewTool("gametracker_list_backlog",
		mcp.WithDescription("List synced games that have no tag."),
	)
}

// listGamesTool returns the gametracker_list_games tool definition.
func listGamesTool() mcp.Tool {
	return mcp.NewTool("gametracker_list_games",
		mcp.WithDescription("List the games found in the local Steam install, per the source settings."),
	)
}

// refreshCacheTool returns the gametracker_refresh_cache tool definition.
func refreshCacheTool() mcp.Tool {
	return mcp.NewTool("gametracker_refresh_cache",
		mcp.WithDescription("Clear cached completion times so the next sync looks them up again."),
	)
}
