// Package optcg is the client for the optcgapi.com upstream API. Responses are
// decoded at this boundary into loose key/value records; callers convert them
// to typed models immediately and never pass the raw form deeper.
package optcg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/optcg-tools/catalog/backend/internal/metrics"
	"github.com/optcg-tools/catalog/backend/internal/models"
)

const defaultBaseURL = "https://optcgapi.com/api"

const requestTimeout = 10 * time.Second

// RawCard is an upstream card record before field mapping. Key names vary
// between sets; see ingest.MapCard.
type RawCard map[string]any

// FetchError reports an upstream call that failed or returned a non-success
// status. Fatal to the current ingestion run; never retried internally.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("upstream request %s returned status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// upstream set records name their identifier inconsistently
var setIDKeys = []string{"set_id", "set_code", "id"}

// FetchSets retrieves the full list of card sets from GET {base}/allSets/.
// Records without a usable identifier are dropped.
func (c *Client) FetchSets(ctx context.Context) ([]models.Set, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, c.baseURL+"/allSets/", "sets", &raw); err != nil {
		return nil, err
	}

	sets := make([]models.Set, 0, len(raw))
	for _, r := range raw {
		id, _ := firstString(r, setIDKeys)
		if id == "" {
			continue
		}
		name, _ := firstString(r, []string{"set_name"})
		sets = append(sets, models.Set{SetID: id, SetName: name})
	}
	return sets, nil
}

// FetchCardsForSet retrieves one set's cards from GET {base}/sets/{setID}/.
func (c *Client) FetchCardsForSet(ctx context.Context, setID string) ([]RawCard, error) {
	reqURL := fmt.Sprintf("%s/sets/%s/", c.baseURL, url.PathEscape(setID))
	var cards []RawCard
	if err := c.getJSON(ctx, reqURL, "cards", &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return &FetchError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return &FetchError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return &FetchError{URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// firstString returns the first key whose value is a non-empty string.
// Mirrors the upstream convention where absent fields may be missing, null,
// or empty.
func firstString(r map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
