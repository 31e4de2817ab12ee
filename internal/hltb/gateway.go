package hltb

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// Store is the cache persistence the gateway needs.
type Store interface {
	GetCompletionTime(appID string) (*models.CompletionTime, error)
	UpsertCompletionTime(entry *models.CompletionTime) error
}

// Gateway serves completion times from the cache and fills misses from a
// Searcher. Only matches at or above models.MinSimilarity that carry a
// main-story duration are cached; anything else stays a miss so the next
// sync tries again. Entries never expire here.
type Gateway struct {
	store    Store
	searcher Searcher
}

// NewGateway creates a Gateway.
func NewGateway(store Store, searcher Searcher) *Gateway {
	return &Gateway{store: store, searcher: searcher}
}

// Cached returns the stored entry for appID if it has a main-story duration.
func (g *Gateway) Cached(appID string) (*models.CompletionTime, error) {
	entry, err := g.store.GetCompletionTime(appID)
	if err != nil {
		return nil, fmt.Errorf("get completion cache: %w", err)
	}
	if !entry.HasMainStory() {
		return nil, nil
	}
	return entry, nil
}

// GetOrFetch returns the completion time for appID, searching by name on a
// cache miss. fetched reports whether the Searcher was called, which
// happens at most once per call. A search error leaves the result absent.
func (g *Gateway) GetOrFetch(ctx context.Context, appID, name string) (entry *models.CompletionTime, fetched bool, err error) {
	entry, err = g.Cached(appID)
	if err != nil || entry != nil {
		return entry, false, err
	}

	if models.IsPlaceholderName(name) || g.searcher == nil {
		return nil, false, nil
	}

	results, err := g.searcher.Search(ctx, name)
	if err != nil {
		return nil, true, fmt.Errorf("search %q: %w", name, err)
	}

	best := BestMatch(results)
	if best == nil || best.MainStory == nil || *best.MainStory <= 0 {
		return nil, true, nil
	}

	entry = &models.CompletionTime{
		AppID:         appID,
		GameName:      name,
		MatchedName:   best.MatchedName,
		Similarity:    best.Similarity,
		MainStory:     best.MainStory,
		MainExtra:     best.MainExtra,
		Completionist: best.Completionist,
		AllStyles:     best.AllStyles,
		URL:           best.URL,
	}
	if err := g.store.UpsertCompletionTime(entry); err != nil {
		return nil, true, fmt.Errorf("cache completion time: %w", err)
	}
	return entry, true, nil
}

// BestMatch returns the highest-similarity candidate, or nil when there are
// none or the best scores below models.MinSimilarity. Ties keep the first.
func BestMatch(results []models.SearchResult) *models.SearchResult {
	var best *models.SearchResult
	for i := range results {
		if best == nil || results[i].Similarity > best.Similarity {
			best = &results[i]
		}
	}
	if best == nil || best.Similarity < models.MinSimilarity {
		return nil
	}
	return best
}
