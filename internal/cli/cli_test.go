package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "gametracker", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, expected := range []string{"sync", "tag", "list", "info", "stats", "settings", "dropped", "cache", "sweep"} {
		assert.Contains(t, names, expected, "Missing subcommand: %s", expected)
	}
}

func TestTagCmd_Args(t *testing.T) {
	assert.Error(t, tagSetCmd.Args(tagSetCmd, []string{"620"}))
	assert.NoError(t, tagSetCmd.Args(tagSetCmd, []string{"620", "completed"}))
	assert.Error(t, tagResetCmd.Args(tagResetCmd, []string{}))
	assert.Error(t, syncCmd.Args(syncCmd, []string{"620", "400"}))
	assert.NoError(t, syncCmd.Args(syncCmd, []string{}))
}

func TestSyncCmd_Flags(t *testing.T) {
	f := syncCmd.Flags().Lookup("force")
	assert.NotNil(t, f)
	assert.Equal(t, "f", f.Shorthand)

	d := droppedCmd.Flags().Lookup("days")
	assert.NotNil(t, d)
	assert.Equal(t, "365", d.DefValue)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"invalid tag", fmt.Errorf("set tag: %w", service.ErrInvalidTag), "validation_error"},
		{"invalid request", service.ErrInvalidRequest, "validation_error"},
		{"overlapping sync", tagging.ErrSyncInProgress, "sync_in_progress"},
		{"canceled", fmt.Errorf("sync: %w", context.Canceled), "canceled"},
		{"config", errors.New("load config: bad value"), "config_error"},
		{"database", errors.New("initialize database: locked"), "database_error"},
		{"network", errors.New("connection refused"), "network_error"},
		{"steam", errors.New("read Steam manifest"), "library_error"},
		{"not found", errors.New("game '620' not found"), "not_found_error"},
		{"parse", errors.New("parse failure"), "validation_error"},
		{"unknown", errors.New("something odd"), "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyError(tt.err))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("Database Locked", "database"))
	assert.False(t, containsAny("Hello World", "HELLO"))
	assert.False(t, containsAny("anything"))
}

func TestTrackCLIError_NilError(t *testing.T) {
	assert.Nil(t, trackCLIError("test-cmd", nil))
}

func TestFormatPlaytime(t *testing.T) {
	assert.Equal(t, "0m", formatPlaytime(0))
	assert.Equal(t, "59m", formatPlaytime(59))
	assert.Equal(t, "1h 0m", formatPlaytime(60))
	assert.Equal(t, "12h 5m", formatPlaytime(725))
}

func TestParseSettingArg(t *testing.T) {
	tests := []struct {
		key  string
		arg  string
		want any
	}{
		{models.SettingAutoTagEnabled, "true", true},
		{models.SettingAutoTagEnabled, "0", false},
		{models.SettingAutoTagEnabled, "sometimes", "sometimes"},
		{models.SettingInProgressThreshold, "45", float64(45)},
		{models.SettingInProgressThreshold, "1", float64(1)},
		{models.SettingCacheTTL, "0", float64(0)},
		{models.SettingMasteredMultiplier, "1.5", 1.5},
		{models.SettingInProgressThreshold, "true", "true"},
		{"unknown", "false", false},
		{"unknown", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSettingArg(tt.key, tt.arg))
		})
	}
}
