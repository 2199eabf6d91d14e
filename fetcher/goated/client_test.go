package goated

import (
	"context"
	"goatedvips/pkg/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoatedConfig(url string) config.GoatedConfig {
	return config.GoatedConfig{
		BaseURL:        url,
		Token:          "test-token",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     2,
		InitialDelay:   time.Millisecond,
		MaxDelay:       10 * time.Millisecond,
		CacheTTL:       15 * time.Minute,
	}
}

func newTestClient(url string) *Client {
	client := NewClient(testGoatedConfig(url))
	client.sleep = func(time.Duration) {}
	return client
}

func TestFetchReferralDataSuccess(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": [{"uid": "a", "name": "Alice"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	response, err := client.FetchReferralData(context.Background(), false)

	require.NoError(t, err)
	assert.False(t, response.ParseError)
	assert.NotNil(t, response.Data)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.False(t, client.LastFetchTime().IsZero())
}

func TestFetchReferralDataServesFreshCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)
	_, err = client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second call within the TTL must hit the cache")
}

func TestFetchReferralDataForceFreshBypassesCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)
	_, err = client.FetchReferralData(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
}

func TestFetchReferralDataExpiredCacheRefetches(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	current := time.Now()
	client.now = func() time.Time { return current }

	_, err := client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)

	// Move past the TTL.
	current = current.Add(16 * time.Minute)

	_, err = client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
}

func TestFetchReferralDataRetriesOnServerError(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchReferralData(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 3, requests)
}

func TestFetchReferralDataStaleFallback(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data": [{"uid": "a", "name": "Alice"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	first, err := client.FetchReferralData(context.Background(), false)
	require.NoError(t, err)

	healthy = false
	stale, err := client.FetchReferralData(context.Background(), true)

	require.NoError(t, err, "a stale response beats an error")
	assert.Equal(t, first, stale)
}

func TestFetchReferralDataErrorsWithoutAnyCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchReferralData(context.Background(), false)

	assert.Error(t, err)
}

func TestFetchReferralDataUnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json at all</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	response, err := client.FetchReferralData(context.Background(), false)

	require.NoError(t, err, "a parse failure is not a fetch failure")
	assert.True(t, response.ParseError)
	assert.Contains(t, response.RawText, "not json")
}

func TestBackoffDelayIsCappedWithJitter(t *testing.T) {
	client := newTestClient("http://localhost")

	for retry := 0; retry < 10; retry++ {
		delay := client.backoffDelay(retry)
		assert.LessOrEqual(t, delay, time.Duration(float64(client.cfg.MaxDelay)*1.2))
		assert.GreaterOrEqual(t, delay, time.Duration(float64(client.cfg.InitialDelay)*0.8))
	}
}
