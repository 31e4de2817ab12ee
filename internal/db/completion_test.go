package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/gametracker/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestCompletionCache(t *testing.T) {
	db := testDB(t)

	entry, err := db.GetCompletionTime("400")
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, db.UpsertCompletionTime(&models.CompletionTime{
		AppID:       "400",
		GameName:    "Portal",
		MatchedName: "Portal",
		Similarity:  1,
		MainStory:   floatPtr(3),
		MainExtra:   floatPtr(4.5),
		URL:         "https://howlongtobeat.com/game/7231",
	}))

	entry, err = db.GetCompletionTime("400")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.HasMainStory())
	assert.Equal(t, 180.0, entry.MainStoryMinutes())
	assert.Nil(t, entry.Completionist)
	assert.False(t, entry.CachedAt.IsZero())

	require.NoError(t, db.UpsertCompletionTime(&models.CompletionTime{
		AppID: "400", GameName: "Portal", MainStory: floatPtr(3.5),
	}))
	entry, err = db.GetCompletionTime("400")
	require.NoError(t, err)
	assert.Equal(t, 3.5, *entry.MainStory)
	assert.Nil(t, entry.MainExtra)
}

func TestClearCompletionCache(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertCompletionTime(&models.CompletionTime{AppID: "1", GameName: "A", MainStory: floatPtr(1)}))
	require.NoError(t, db.UpsertCompletionTime(&models.CompletionTime{AppID: "2", GameName: "B", MainStory: floatPtr(2)}))

	n, err := db.ClearCompletionCache()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entry, err := db.GetCompletionTime("1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
