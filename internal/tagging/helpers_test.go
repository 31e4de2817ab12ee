package tagging

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/hltb"
	"github.com/asteroid-belt/gametracker/internal/models"
)

// fakeSearcher answers completion-time searches from a table keyed by name.
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]models.SearchResult
	err     error
	calls   []string
	onCall  func(name string)
}

func (f *fakeSearcher) Search(_ context.Context, name string) ([]models.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook(name)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[name], nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearcher) add(name string, mainStory float64) {
	if f.results == nil {
		f.results = make(map[string][]models.SearchResult)
	}
	h := mainStory
	f.results[name] = []models.SearchResult{{MatchedName: name, Similarity: 1, MainStory: &h}}
}

type fakeInventory map[string]string

func (f fakeInventory) GameName(appID string) (string, bool) {
	name, ok := f[appID]
	return name, ok
}

type fakeNames map[string]string

func (f fakeNames) Name(_ context.Context, appID string) (string, bool) {
	name, ok := f[appID]
	return name, ok
}

type fixture struct {
	db       *db.DB
	searcher *fakeSearcher
	orch     *Orchestrator
	sleeps   int
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	f := &fixture{db: database, searcher: &fakeSearcher{}}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	f.orch = NewOrchestrator(database, hltb.NewGateway(database, f.searcher), opts)
	f.orch.sleep = func(context.Context, time.Duration) error {
		f.sleeps++
		return nil
	}
	return f
}

func (f *fixture) tag(t *testing.T, appID string) *models.GameTag {
	t.Helper()
	tag, err := f.db.GetTag(appID)
	require.NoError(t, err)
	return tag
}

func (f *fixture) stats(t *testing.T, appID string) *models.GameStats {
	t.Helper()
	stats, err := f.db.GetStats(appID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	return stats
}

// failingStore wraps a Store and fails UpsertStats for chosen ids.
type failingStore struct {
	Store
	fail map[string]bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) UpsertStats(stats *models.GameStats) error {
	if s.fail[stats.AppID] {
		return errDiskFull
	}
	return s.Store.UpsertStats(stats)
}
