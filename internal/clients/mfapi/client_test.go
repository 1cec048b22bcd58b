package mfapi

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/fundscope/internal/clientdata"
)

const catalogJSON = `[
	{"schemeCode": 120503, "schemeName": "Axis Bluechip Fund - Direct Plan - Growth", "isinGrowth": "INF846K01EW2", "isinDivReinvestment": null},
	{"schemeCode": 118825, "schemeName": "HDFC Index Fund - Nifty 50 Plan", "isinGrowth": "INF179K01WN9", "isinDivReinvestment": null}
]`

const schemeJSON = `{
	"meta": {
		"fund_house": "Axis Mutual Fund",
		"scheme_type": "Open Ended Schemes",
		"scheme_category": "Equity Scheme - Large Cap Fund",
		"scheme_code": 120503,
		"scheme_name": "Axis Bluechip Fund - Direct Plan - Growth"
	},
	"data": [
		{"date": "02-01-2024", "nav": "55.12000"},
		{"date": "01-01-2024", "nav": "55.00000"}
	],
	"status": "SUCCESS"
}`

func newTestCache(t *testing.T) *clientdata.Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE catalog (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, fetched_at INTEGER NOT NULL, expires_at INTEGER NOT NULL);
	CREATE TABLE schemes (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, fetched_at INTEGER NOT NULL, expires_at INTEGER NOT NULL);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return clientdata.NewRepository(db, 0)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, newTestCache(t), time.Hour, time.Hour, zerolog.Nop())
	return client, srv
}

func TestList(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf", r.URL.Path)
		hits.Add(1)
		w.Write([]byte(catalogJSON))
	}))

	entries, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 120503, entries[0].SchemeCode)
	assert.Equal(t, "Axis Bluechip Fund - Direct Plan - Growth", entries[0].SchemeName)

	// Second call is served from cache.
	entries, err = client.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestListWrappedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": ` + catalogJSON + `}`))
	}))

	entries, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFetch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/120503", r.URL.Path)
		w.Write([]byte(schemeJSON))
	}))

	data, err := client.Fetch(context.Background(), "120503")
	require.NoError(t, err)

	assert.Equal(t, "Axis Mutual Fund", data.Meta.FundHouse)
	assert.Equal(t, 120503, data.Meta.SchemeCode)
	require.Len(t, data.Records, 2)
	assert.Equal(t, "02-01-2024", data.Records[0].Date)
	assert.Equal(t, "55.12000", data.Records[0].Values["nav"])
}

func TestFetchCachesResult(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(schemeJSON))
	}))

	_, err := client.Fetch(context.Background(), "120503")
	require.NoError(t, err)
	_, err = client.Fetch(context.Background(), "120503")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchStaleFallback(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(schemeJSON))
	}))
	t.Cleanup(srv.Close)

	cache := newTestCache(t)
	// Negative TTL so the cached entry is immediately stale.
	client := NewClient(srv.URL, cache, time.Hour, -time.Minute, zerolog.Nop())

	_, err := client.Fetch(context.Background(), "120503")
	require.NoError(t, err)

	fail.Store(true)

	data, err := client.Fetch(context.Background(), "120503")
	require.NoError(t, err)
	assert.Equal(t, "Axis Mutual Fund", data.Meta.FundHouse)
}

func TestFetchUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Fetch(context.Background(), "999999")
	assert.Error(t, err)
}

func TestFetchRetries(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(schemeJSON))
	}))

	data, err := client.Fetch(context.Background(), "120503")
	require.NoError(t, err)
	assert.Equal(t, 120503, data.Meta.SchemeCode)
	assert.Equal(t, int32(3), hits.Load())
}
