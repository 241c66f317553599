package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		PageSize: 50,
	}, logger.Nop())
}

func TestClient_Authenticate(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"}, logger.Nop())
	require.NoError(t, client.Authenticate(context.Background()))

	client = NewClient(Config{}, logger.Nop())
	err := client.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestClient_ListPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlistItems", r.URL.Path)
		assert.Equal(t, "contentDetails", r.URL.Query().Get("part"))
		assert.Equal(t, "PL123", r.URL.Query().Get("playlistId"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		if r.URL.Query().Get("pageToken") == "" {
			w.Write([]byte(`{
				"items": [
					{"contentDetails": {"videoId": "a1"}},
					{"contentDetails": {"videoId": "a2"}}
				],
				"nextPageToken": "page-2"
			}`))
			return
		}

		assert.Equal(t, "page-2", r.URL.Query().Get("pageToken"))
		w.Write([]byte(`{"items": [{"contentDetails": {"videoId": "a3"}}]}`))
	})

	ctx := context.Background()

	ids, next, err := client.ListPage(ctx, "PL123", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, ids)
	assert.Equal(t, "page-2", next)

	ids, next, err = client.ListPage(ctx, "PL123", next)
	require.NoError(t, err)
	assert.Equal(t, []string{"a3"}, ids)
	assert.Empty(t, next)
}

func TestClient_Durations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "a1,a2", r.URL.Query().Get("id"))

		w.Write([]byte(`{
			"items": [
				{"id": "a1", "contentDetails": {"duration": "PT1H30M"}},
				{"id": "a2", "contentDetails": {"duration": "PT45S"}}
			]
		}`))
	})

	durations, err := client.Durations(context.Background(), []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a1": "PT1H30M", "a2": "PT45S"}, durations)
}

func TestClient_Durations_EmptyBatch(t *testing.T) {
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an empty batch")
	})

	durations, err := client.Durations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, durations)
}

func TestClient_Durations_BatchTooLarge(t *testing.T) {
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an oversized batch")
	})

	ids := make([]string, MaxBatchSize+1)
	_, err := client.Durations(context.Background(), ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	_, _, err := client.ListPage(context.Background(), "PL123", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
	assert.Equal(t, 1, requests)
}

func TestClient_ServerErrorIsRetried(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"items": [{"contentDetails": {"videoId": "a1"}}]}`))
	})

	ids, _, err := client.ListPage(context.Background(), "PL123", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids)
	assert.Equal(t, 3, requests)
}

func TestClient_PageSizeClamped(t *testing.T) {
	oversized := NewClient(Config{APIKey: "k", PageSize: 500}, logger.Nop())
	assert.Equal(t, MaxBatchSize, oversized.pageSize)

	unset := NewClient(Config{APIKey: "k"}, logger.Nop())
	assert.Equal(t, MaxBatchSize, unset.pageSize)
}
