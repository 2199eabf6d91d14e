package goated

import (
	"context"
	"encoding/json"
	"fmt"
	"goatedvips/pkg/config"
	"goatedvips/pkg/messages"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// APIResponse is the raw result of one fetch. When the upstream body was not
// valid JSON, RawText carries the body and ParseError is set so the extractor
// can attempt a best-effort recovery.
type APIResponse struct {
	Data       any
	RawText    string
	ParseError bool
}

// Client fetches the referral leaderboard from the Goated affiliate API.
// Responses are cached for the configured TTL, and the last successful
// response is kept as a stale fallback when every retry fails.
type Client struct {
	cfg        config.GoatedConfig
	httpClient *http.Client

	// Injectable for deterministic tests.
	now   func() time.Time
	sleep func(time.Duration)

	mu           sync.Mutex
	lastResponse *APIResponse
	lastFetch    time.Time
}

// NewClient creates the API client.
func NewClient(cfg config.GoatedConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// FetchReferralData returns the referral leaderboard payload. A cached
// response younger than the TTL is returned unless forceFresh is set. On
// total failure the last successful response is served stale; an error is
// returned only when no prior response exists at all.
func (c *Client) FetchReferralData(ctx context.Context, forceFresh bool) (*APIResponse, error) {
	if !forceFresh {
		if cached := c.freshCache(); cached != nil {
			return cached, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.backoffDelay(attempt - 1))
		}

		response, err := c.doRequest(ctx)
		if err == nil {
			c.storeResponse(response)
			return response, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	// Availability over freshness: fall back to the stale cache.
	if stale := c.anyCache(); stale != nil {
		return stale, nil
	}

	return nil, fmt.Errorf("%s: %w", messages.NoCachedResponse, lastErr)
}

// LastFetchTime returns when the cached response was fetched.
func (c *Client) LastFetchTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetch
}

// doRequest runs a single authenticated GET. The body is read as text first
// since the upstream is not guaranteed to return valid JSON.
func (c *Client) doRequest(ctx context.Context) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		// Tagged fallback, let the extractor try a text recovery.
		return &APIResponse{RawText: string(body), ParseError: true}, nil
	}

	return &APIResponse{Data: data}, nil
}

// backoffDelay computes the exponential backoff with jitter for a retry.
func (c *Client) backoffDelay(retry int) time.Duration {
	delay := c.cfg.InitialDelay << uint(retry)
	if delay > c.cfg.MaxDelay || delay <= 0 {
		delay = c.cfg.MaxDelay
	}

	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(delay) * jitter)
}

// freshCache returns the cached response if it is younger than the TTL.
func (c *Client) freshCache() *APIResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastResponse == nil {
		return nil
	}
	if c.now().Sub(c.lastFetch) >= c.cfg.CacheTTL {
		return nil
	}
	return c.lastResponse
}

// anyCache returns the cached response regardless of age.
func (c *Client) anyCache() *APIResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResponse
}

func (c *Client) storeResponse(response *APIResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastResponse = response
	c.lastFetch = c.now()
}
