// Package hltb looks up game completion times from HowLongToBeat and caches
// accepted matches.
package hltb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/time/rate"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/pkg/version"
)

// DefaultRateLimit is requests per minute when none is configured.
const DefaultRateLimit = 60

// Searcher returns completion-time candidates for a game name.
type Searcher interface {
	Search(ctx context.Context, name string) ([]models.SearchResult, error)
}

// Client is a rate-limited HowLongToBeat search client. Candidates are
// scored locally against the query with a case-insensitive Levenshtein
// similarity.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	metric  strutil.StringMetric
}

// NewClient creates a client. rateLimit is requests per minute.
func NewClient(baseURL string, rateLimit int, timeout time.Duration) *Client {
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rateLimit)), rateLimit),
		metric:  lev,
	}
}

type searchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions searchOptions `json:"searchOptions"`
}

type searchOptions struct {
	Games struct {
		UserID        int    `json:"userId"`
		Platform      string `json:"platform"`
		SortCategory  string `json:"sortCategory"`
		RangeCategory string `json:"rangeCategory"`
	} `json:"games"`
	Filter string `json:"filter"`
	Sort   int    `json:"sort"`
}

type searchResponse struct {
	Data []searchGame `json:"data"`
}

// Durations are in seconds.
type searchGame struct {
	GameID   int     `json:"game_id"`
	GameName string  `json:"game_name"`
	CompMain float64 `json:"comp_main"`
	CompPlus float64 `json:"comp_plus"`
	Comp100  float64 `json:"comp_100"`
	CompAll  float64 `json:"comp_all"`
}

// Search queries HowLongToBeat for name.
func (c *Client) Search(ctx context.Context, name string) ([]models.SearchResult, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload := searchRequest{
		SearchType:  "games",
		SearchTerms: strings.Fields(name),
		SearchPage:  1,
		Size:        20,
	}
	payload.SearchOptions.Games.SortCategory = "popular"
	payload.SearchOptions.Games.RangeCategory = "main"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; "+version.UserAgent()+")")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	results := make([]models.SearchResult, 0, len(decoded.Data))
	for _, g := range decoded.Data {
		results = append(results, models.SearchResult{
			MatchedName:   g.GameName,
			Similarity:    c.similarity(name, g.GameName),
			MainStory:     hours(g.CompMain),
			MainExtra:     hours(g.CompPlus),
			Completionist: hours(g.Comp100),
			AllStyles:     hours(g.CompAll),
			URL:           c.baseURL + "/game/" + strconv.Itoa(g.GameID),
		})
	}
	return results, nil
}

func (c *Client) similarity(query, candidate string) float64 {
	score := strutil.Similarity(strings.TrimSpace(query), strings.TrimSpace(candidate), c.metric)
	return math.Round(score*100) / 100
}

// hours converts seconds to hours rounded to two decimals; 0 means no data.
func hours(seconds float64) *float64 {
	if seconds <= 0 {
		return nil
	}
	h := math.Round(seconds/3600*100) / 100
	return &h
}
