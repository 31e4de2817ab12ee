package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/gametracker/internal/models"
)

func TestStatsCRUD(t *testing.T) {
	db := testDB(t)

	got, err := db.GetStats("620")
	require.NoError(t, err)
	assert.Nil(t, got)

	stats := &models.GameStats{AppID: "620", GameName: "Portal 2", PlaytimeMinutes: 120, LastPlayedAt: int64Ptr(1700000000)}
	stats.SetAchievements(models.Achievements{Total: 51, Unlocked: 17})
	require.NoError(t, db.UpsertStats(stats))

	got, err = db.GetStats("620")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Portal 2", got.GameName)
	assert.Equal(t, 120, got.PlaytimeMinutes)
	assert.Equal(t, 51, got.TotalAchievements)
	assert.Equal(t, 17, got.UnlockedAchievements)
	assert.Equal(t, 33.33, got.AchievementPercentage)
	assert.Equal(t, int64(1700000000), got.LastPlayed())

	// Upsert replaces every column
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "620", GameName: "Portal 2", PlaytimeMinutes: 200}))
	got, err = db.GetStats("620")
	require.NoError(t, err)
	assert.Equal(t, 200, got.PlaytimeMinutes)
	assert.Zero(t, got.TotalAchievements)
	assert.Nil(t, got.LastPlayedAt)
}

func TestListStats(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "2", GameName: "beta"}))
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "1", GameName: "Alpha"}))
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "3000000001", GameName: "Chrome", IsHidden: true}))

	visible, err := db.ListStats(false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Alpha", visible[0].GameName)
	assert.Equal(t, "beta", visible[1].GameName)

	all, err := db.ListStats(true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListBacklog(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "1", GameName: "Zelda"}))
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "2", GameName: "Celeste"}))
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "3", GameName: "Hades"}))
	require.NoError(t, db.UpsertStats(&models.GameStats{AppID: "3000000001", GameName: "Discord", IsHidden: true}))
	require.NoError(t, db.SetTag("3", models.TagCompleted, false))

	backlog, err := db.ListBacklog()
	require.NoError(t, err)

	require.Len(t, backlog, 2)
	assert.Equal(t, "Celeste", backlog[0].GameName)
	assert.Equal(t, "Zelda", backlog[1].GameName)
}

func TestEligibleForDropped(t *testing.T) {
	db := testDB(t)

	const now int64 = 1_800_000_000
	const year int64 = 365 * 24 * 60 * 60

	rows := []models.GameStats{
		{AppID: "1", GameName: "exactly one year", LastPlayedAt: int64Ptr(now - year)},
		{AppID: "2", GameName: "one second older", LastPlayedAt: int64Ptr(now - year - 1)},
		{AppID: "3", GameName: "never played", LastPlayedAt: nil},
		{AppID: "4", GameName: "zero timestamp", LastPlayedAt: int64Ptr(0)},
		{AppID: "5", GameName: "hidden", LastPlayedAt: int64Ptr(now - 2*year), IsHidden: true},
		{AppID: "6", GameName: "manual", LastPlayedAt: int64Ptr(now - 2*year)},
		{AppID: "7", GameName: "completed", LastPlayedAt: int64Ptr(now - 2*year)},
		{AppID: "8", GameName: "mastered", LastPlayedAt: int64Ptr(now - 2*year)},
		{AppID: "9", GameName: "already dropped", LastPlayedAt: int64Ptr(now - 2*year)},
		{AppID: "10", GameName: "in progress", LastPlayedAt: int64Ptr(now - 2*year)},
	}
	for i := range rows {
		require.NoError(t, db.UpsertStats(&rows[i]))
	}
	require.NoError(t, db.SetTag("6", models.TagInProgress, true))
	require.NoError(t, db.SetTag("7", models.TagCompleted, false))
	require.NoError(t, db.SetTag("8", models.TagMastered, false))
	require.NoError(t, db.SetTag("9", models.TagDropped, false))
	require.NoError(t, db.SetTag("10", models.TagInProgress, false))

	eligible, err := db.EligibleForDropped(365, now)
	require.NoError(t, err)

	var ids []string
	for _, s := range eligible {
		ids = append(ids, s.AppID)
	}
	assert.ElementsMatch(t, []string{"2", "10"}, ids)
}
