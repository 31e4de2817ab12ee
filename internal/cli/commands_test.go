package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher map[string]float64

func (f fakeSearcher) Search(_ context.Context, name string) ([]models.SearchResult, error) {
	h, ok := f[name]
	if !ok {
		return nil, nil
	}
	return []models.SearchResult{{MatchedName: name, Similarity: 1, MainStory: &h}}, nil
}

// useTestService points every command at a fresh database.
func useTestService(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	origOpen, origTelemetry := openService, telemetryClient
	telemetryClient = telemetry.Noop()
	openService = func() (*service.Service, func(), error) {
		svc := service.New(database, service.Options{Searcher: fakeSearcher{"Portal": 3}})
		return svc, func() {}, nil
	}
	t.Cleanup(func() {
		openService, telemetryClient = origOpen, origTelemetry
		syncForce, listBacklog, listAll = false, false, false
		droppedDays = service.DefaultDroppedDays
	})
	return database
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTagCommands(t *testing.T) {
	database := useTestService(t)

	out, err := run(t, "tag", "set", "620", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "620 tagged completed")

	out, err = run(t, "tag", "get", "620")
	require.NoError(t, err)
	assert.Contains(t, out, "620: completed (manual)")

	_, err = run(t, "tag", "set", "620", "finished")
	assert.ErrorIs(t, err, service.ErrInvalidTag)

	out, err = run(t, "tag", "remove", "620")
	require.NoError(t, err)
	assert.Contains(t, out, "moved to backlog")

	tag, err := database.GetTag("620")
	require.NoError(t, err)
	assert.Nil(t, tag)

	out, err = run(t, "tag", "get", "620")
	require.NoError(t, err)
	assert.Contains(t, out, "620: backlog")
}

func TestSyncCommand_SingleGame(t *testing.T) {
	database := useTestService(t)
	require.NoError(t, database.UpsertStats(&models.GameStats{AppID: "400", GameName: "Portal", PlaytimeMinutes: 200}))

	out, err := run(t, "sync", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "400: completed (changed)")

	_, err = run(t, "tag", "set", "400", "dropped")
	require.NoError(t, err)

	out, err = run(t, "sync", "400", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "400: completed")

	tag, err := database.GetTag("400")
	require.NoError(t, err)
	assert.False(t, tag.IsManual)
}

func TestSyncCommand_EmptyLibrary(t *testing.T) {
	useTestService(t)

	out, err := run(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "No games found in library")
}

func TestListAndStatsCommands(t *testing.T) {
	database := useTestService(t)
	require.NoError(t, database.UpsertStats(&models.GameStats{AppID: "400", GameName: "Portal", PlaytimeMinutes: 200}))
	require.NoError(t, database.UpsertStats(&models.GameStats{AppID: "10", GameName: "Counter-Strike", PlaytimeMinutes: 5}))
	require.NoError(t, database.SetTag("400", models.TagCompleted, false))

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TAGGED (1 games)")
	assert.Contains(t, out, "Portal")
	assert.NotContains(t, out, "Counter-Strike")

	out, err = run(t, "list", "--backlog")
	require.NoError(t, err)
	assert.Contains(t, out, "Counter-Strike")

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "LIBRARY (2 games)")
}

func TestInfoCommand(t *testing.T) {
	database := useTestService(t)
	require.NoError(t, database.UpsertStats(&models.GameStats{AppID: "220", GameName: "Half-Life 2", PlaytimeMinutes: 725}))

	out, err := run(t, "info", "220")
	require.NoError(t, err)
	assert.Contains(t, out, "Game: Half-Life 2")
	assert.Contains(t, out, "Playtime: 12h 5m")
	assert.Contains(t, out, "Tag: backlog")

	_, err = run(t, "info", "999")
	assert.Error(t, err)
}

func TestSettingsCommands(t *testing.T) {
	database := useTestService(t)

	out, err := run(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "auto_tag_enabled")

	out, err = run(t, "settings", "set", "in_progress_threshold", "45")
	require.NoError(t, err)
	assert.Contains(t, out, "45")

	_, err = run(t, "settings", "set", "auto_tag_enabled", "sometimes")
	assert.Error(t, err)

	_, err = run(t, "settings", "set", "in_progress_threshold", "1")
	require.NoError(t, err)
	_, err = run(t, "settings", "set", "auto_tag_enabled", "0")
	require.NoError(t, err)

	settings, err := database.Settings()
	require.NoError(t, err)
	assert.Equal(t, float64(1), settings.InProgressThreshold)
	assert.False(t, settings.AutoTagEnabled)
}

func TestDroppedAndCacheCommands(t *testing.T) {
	useTestService(t)

	out, err := run(t, "dropped", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Tagged 0 games as dropped")

	out, err = run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 0 entries")
}
