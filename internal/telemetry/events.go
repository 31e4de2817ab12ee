package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/gametracker/pkg/version"
)

// Event names - CLI
const (
	EventAppStarted         = "app_started"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
)

// Event names - tracker
const (
	EventLibrarySynced        = "library_synced"
	EventGameSynced           = "game_synced"
	EventTagSet               = "tag_set"
	EventTagRemoved           = "tag_removed"
	EventDroppedSweep         = "dropped_sweep_completed"
	EventSettingsChanged      = "settings_changed"
	EventCompletionCacheClear = "completion_cache_cleared"
	EventMCPToolCalled        = "mcp_tool_called"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    version.Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// --- CLI Tracking Methods ---

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(mode string, gameCount int) {
	props := baseProperties()
	props["mode"] = mode
	props["game_count"] = gameCount
	c.Track(EventAppStarted, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI errors.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackCLIHelpViewed tracks help output.
func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["cli_args"] = cliArgs
	c.Track(EventCLIHelpViewed, props)
}

// --- Tracker Methods ---

// TrackLibrarySynced tracks a finished library sync.
func (c *posthogClient) TrackLibrarySynced(total, synced, newTags, errors int, durationMs int64) {
	props := baseProperties()
	props["total"] = total
	props["synced"] = synced
	props["new_tags"] = newTags
	props["errors"] = errors
	props["duration_ms"] = durationMs
	c.Track(EventLibrarySynced, props)
}

// TrackGameSynced tracks a single-game sync.
func (c *posthogClient) TrackGameSynced(tagChanged, hidden bool) {
	props := baseProperties()
	props["tag_changed"] = tagChanged
	props["hidden"] = hidden
	c.Track(EventGameSynced, props)
}

// TrackTagSet tracks a tag write made by the user.
func (c *posthogClient) TrackTagSet(tag string, manual bool) {
	props := baseProperties()
	props["tag"] = tag
	props["manual"] = manual
	c.Track(EventTagSet, props)
}

// TrackTagRemoved tracks a tag removal.
func (c *posthogClient) TrackTagRemoved() {
	c.Track(EventTagRemoved, baseProperties())
}

// TrackDroppedSweep tracks a dropped-game sweep.
func (c *posthogClient) TrackDroppedSweep(tagged int, scheduled bool) {
	props := baseProperties()
	props["tagged"] = tagged
	props["scheduled"] = scheduled
	c.Track(EventDroppedSweep, props)
}

// TrackSettingsChanged tracks a settings update.
func (c *posthogClient) TrackSettingsChanged(settingName string) {
	props := baseProperties()
	props["setting_name"] = settingName
	c.Track(EventSettingsChanged, props)
}

// TrackCompletionCacheCleared tracks a completion-time cache reset.
func (c *posthogClient) TrackCompletionCacheCleared(entries int64) {
	props := baseProperties()
	props["entries"] = entries
	c.Track(EventCompletionCacheClear, props)
}

// TrackMCPToolCalled tracks MCP tool invocations.
func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	props := baseProperties()
	props["tool_name"] = toolName
	props["duration_ms"] = durationMs
	props["success"] = success
	c.Track(EventMCPToolCalled, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackAppStarted(mode string, gameCount int)                                  {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string)                     {}
func (c *noopClient) TrackLibrarySynced(total, synced, newTags, errors int, durationMs int64)     {}
func (c *noopClient) TrackGameSynced(tagChanged, hidden bool)                                     {}
func (c *noopClient) TrackTagSet(tag string, manual bool)                                         {}
func (c *noopClient) TrackTagRemoved()                                                            {}
func (c *noopClient) TrackDroppedSweep(tagged int, scheduled bool)                                {}
func (c *noopClient) TrackSettingsChanged(settingName string)                                     {}
func (c *noopClient) TrackCompletionCacheCleared(entries int64)                                   {}
func (c *noopClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool)          {}
