package hltb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/gametracker/internal/models"
)

type memStore struct {
	entries map[string]*models.CompletionTime
	writes  int
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]*models.CompletionTime)}
}

func (m *memStore) GetCompletionTime(appID string) (*models.CompletionTime, error) {
	return m.entries[appID], nil
}

func (m *memStore) UpsertCompletionTime(entry *models.CompletionTime) error {
	m.writes++
	m.entries[entry.AppID] = entry
	return nil
}

type fakeSearcher struct {
	results []models.SearchResult
	err     error
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, name string) ([]models.SearchResult, error) {
	f.calls = append(f.calls, name)
	return f.results, f.err
}

func ptr(f float64) *float64 { return &f }

func TestGateway_CacheWriteGate(t *testing.T) {
	tests := []struct {
		name      string
		result    models.SearchResult
		wantCache bool
	}{
		{"similarity 0.69 rejected", models.SearchResult{MatchedName: "Portal", Similarity: 0.69, MainStory: ptr(3)}, false},
		{"similarity 0.70 accepted", models.SearchResult{MatchedName: "Portal", Similarity: 0.70, MainStory: ptr(3)}, true},
		{"null main story rejected", models.SearchResult{MatchedName: "Portal", Similarity: 0.95, MainStory: nil}, false},
		{"zero main story rejected", models.SearchResult{MatchedName: "Portal", Similarity: 0.95, MainStory: ptr(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			searcher := &fakeSearcher{results: []models.SearchResult{tt.result}}
			g := NewGateway(store, searcher)

			entry, fetched, err := g.GetOrFetch(context.Background(), "400", "Portal")
			require.NoError(t, err)
			assert.True(t, fetched)

			if tt.wantCache {
				require.NotNil(t, entry)
				assert.Equal(t, 1, store.writes)
				assert.Equal(t, "Portal", store.entries["400"].GameName)
			} else {
				assert.Nil(t, entry)
				assert.Zero(t, store.writes)
			}
		})
	}
}

func TestGateway_PicksBestSimilarity(t *testing.T) {
	store := newMemStore()
	searcher := &fakeSearcher{results: []models.SearchResult{
		{MatchedName: "Portal 2", Similarity: 0.75, MainStory: ptr(8.5)},
		{MatchedName: "Portal", Similarity: 1.0, MainStory: ptr(3)},
		{MatchedName: "Portal Stories: Mel", Similarity: 0.4, MainStory: ptr(10)},
	}}
	g := NewGateway(store, searcher)

	entry, _, err := g.GetOrFetch(context.Background(), "400", "Portal")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "Portal", entry.MatchedName)
	assert.Equal(t, 3.0, *entry.MainStory)
}

func TestGateway_CacheHitSkipsSearch(t *testing.T) {
	store := newMemStore()
	store.entries["400"] = &models.CompletionTime{AppID: "400", MainStory: ptr(3)}
	searcher := &fakeSearcher{}
	g := NewGateway(store, searcher)

	entry, fetched, err := g.GetOrFetch(context.Background(), "400", "Portal")
	require.NoError(t, err)

	assert.NotNil(t, entry)
	assert.False(t, fetched)
	assert.Empty(t, searcher.calls)
}

func TestGateway_EntryWithoutMainStoryIsRefetched(t *testing.T) {
	store := newMemStore()
	store.entries["400"] = &models.CompletionTime{AppID: "400"}
	searcher := &fakeSearcher{results: []models.SearchResult{
		{MatchedName: "Portal", Similarity: 1.0, MainStory: ptr(3)},
	}}
	g := NewGateway(store, searcher)

	entry, fetched, err := g.GetOrFetch(context.Background(), "400", "Portal")
	require.NoError(t, err)

	assert.True(t, fetched)
	require.NotNil(t, entry)
	assert.Equal(t, 3.0, *store.entries["400"].MainStory)
}

func TestGateway_PlaceholderNamesNotSearched(t *testing.T) {
	searcher := &fakeSearcher{}
	g := NewGateway(newMemStore(), searcher)

	for _, name := range []string{"", "Unknown Game (12)", "Game 12"} {
		entry, fetched, err := g.GetOrFetch(context.Background(), "12", name)
		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.False(t, fetched)
	}
	assert.Empty(t, searcher.calls)
}

func TestGateway_SearchErrorIsAMiss(t *testing.T) {
	store := newMemStore()
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	g := NewGateway(store, searcher)

	entry, fetched, err := g.GetOrFetch(context.Background(), "400", "Portal")

	assert.Error(t, err)
	assert.Nil(t, entry)
	assert.True(t, fetched)
	assert.Len(t, searcher.calls, 1)
	assert.Zero(t, store.writes)
}

func TestBestMatch(t *testing.T) {
	assert.Nil(t, BestMatch(nil))

	tie := []models.SearchResult{
		{MatchedName: "first", Similarity: 0.9},
		{MatchedName: "second", Similarity: 0.9},
	}
	require.NotNil(t, BestMatch(tie))
	assert.Equal(t, "first", BestMatch(tie).MatchedName)
}
