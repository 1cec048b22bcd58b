package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/clientdata"
)

const (
	catalogCacheKey = "all"
	maxRetries      = 3
)

// Client fetches mutual fund data from the mfapi.in public API,
// caching responses through the client data repository.
type Client struct {
	baseURL    string
	client     *http.Client
	cache      *clientdata.Repository
	catalogTTL time.Duration
	schemeTTL  time.Duration
	log        zerolog.Logger
}

// NewClient creates a new mfapi client. Zero TTLs fall back to the
// clientdata defaults.
func NewClient(baseURL string, cache *clientdata.Repository, catalogTTL, schemeTTL time.Duration, log zerolog.Logger) *Client {
	if catalogTTL == 0 {
		catalogTTL = clientdata.TTLCatalog
	}
	if schemeTTL == 0 {
		schemeTTL = clientdata.TTLScheme
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:      cache,
		catalogTTL: catalogTTL,
		schemeTTL:  schemeTTL,
		log:        log.With().Str("client", "mfapi").Logger(),
	}
}

// List returns the full scheme catalog, serving a fresh cached copy
// when one exists and falling back to a stale copy if the provider
// is unreachable.
func (c *Client) List(ctx context.Context) ([]CatalogEntry, error) {
	var cached []CatalogEntry
	if ok, err := c.cache.GetIfFresh(clientdata.TableCatalog, catalogCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	body, err := c.fetchWithRetry(ctx, c.baseURL+"/mf")
	if err != nil {
		// Serve stale data rather than nothing.
		if ok, cacheErr := c.cache.Get(clientdata.TableCatalog, catalogCacheKey, &cached); cacheErr == nil && ok {
			c.log.Warn().Err(err).Msg("Serving stale catalog after fetch failure")
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch scheme catalog: %w", err)
	}

	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse scheme catalog: %w", err)
	}

	if err := c.cache.Store(clientdata.TableCatalog, catalogCacheKey, resp.entries, c.catalogTTL); err != nil {
		c.log.Warn().Err(err).Msg("Failed to cache scheme catalog")
	}

	return resp.entries, nil
}

// Fetch returns metadata and the raw NAV history for a single scheme.
func (c *Client) Fetch(ctx context.Context, code string) (*SchemeData, error) {
	var cached SchemeData
	if ok, err := c.cache.GetIfFresh(clientdata.TableSchemes, code, &cached); err == nil && ok {
		return &cached, nil
	}

	body, err := c.fetchWithRetry(ctx, c.baseURL+"/mf/"+code)
	if err != nil {
		if ok, cacheErr := c.cache.Get(clientdata.TableSchemes, code, &cached); cacheErr == nil && ok {
			c.log.Warn().Err(err).Str("scheme", code).Msg("Serving stale scheme data after fetch failure")
			return &cached, nil
		}
		return nil, fmt.Errorf("failed to fetch scheme %s: %w", code, err)
	}

	var resp schemeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse scheme %s: %w", code, err)
	}

	data := &SchemeData{
		Meta:    resp.Meta,
		Records: toRawRecords(resp.Data),
	}

	if err := c.cache.Store(clientdata.TableSchemes, code, data, c.schemeTTL); err != nil {
		c.log.Warn().Err(err).Str("scheme", code).Msg("Failed to cache scheme data")
	}

	return data, nil
}

// fetchWithRetry performs a GET with exponential backoff.
func (c *Client) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(1<<uint(attempt-1)) * time.Second
			c.log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Dur("wait", waitTime).
				Msg("Request failed, retrying")
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to mimic browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mfapi returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
