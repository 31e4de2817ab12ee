package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/pkg/version"
)

// StoreClient resolves game names through the Steam Store appdetails API.
// It is used for games that are owned but not installed, so no local
// manifest carries their name. Lookups, including misses, are cached.
type StoreClient struct {
	baseURL string
	http    *http.Client
	names   *expirable.LRU[string, string]
}

// NewStoreClient creates a Store client. size and ttl bound the name cache.
func NewStoreClient(baseURL string, timeout time.Duration, size int, ttl time.Duration) *StoreClient {
	if size <= 0 {
		size = 256
	}
	return &StoreClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		names:   expirable.NewLRU[string, string](size, nil, ttl),
	}
}

type appDetails struct {
	Success bool `json:"success"`
	Data    struct {
		Name string `json:"name"`
	} `json:"data"`
}

// Name returns the Store name for appID. Network, status and decode
// failures are logged and reported as not found without being cached.
func (c *StoreClient) Name(ctx context.Context, appID string) (string, bool) {
	if cached, ok := c.names.Get(appID); ok {
		return cached, cached != ""
	}

	name, err := c.fetchName(ctx, appID)
	if err != nil {
		// Only definitive answers are cached; the next sync retries.
		log.Debugf("steam store: lookup %s: %v", appID, err)
		return "", false
	}
	c.names.Add(appID, name)
	return name, name != ""
}

func (c *StoreClient) fetchName(ctx context.Context, appID string) (string, error) {
	endpoint := c.baseURL + "/api/appdetails?appids=" + url.QueryEscape(appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; "+version.UserAgent()+")")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request appdetails: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("appdetails status %d", resp.StatusCode)
	}

	var body map[string]appDetails
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode appdetails: %w", err)
	}

	details, ok := body[appID]
	if !ok || !details.Success {
		return "", nil
	}
	return details.Data.Name, nil
}
