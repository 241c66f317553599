// Package youtube implements the playlist source port against the YouTube
// Data API v3: paginated playlist item listing and batched video duration
// lookups, authenticated with an API key.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/metrics"
	"github.com/jonesrussell/playlist-pulse/internal/retry"
)

// MaxBatchSize is the largest number of video IDs accepted by a single
// videos.list call.
const MaxBatchSize = 50

// ErrMissingAPIKey is returned by Authenticate when no API key is configured.
var ErrMissingAPIKey = errors.New("youtube: API key is not configured")

// Config holds YouTube client settings.
type Config struct {
	APIKey   string
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Client calls the YouTube Data API over plain HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	retryCfg   retry.Config
	log        logger.Logger
}

// NewClient creates a YouTube client. The base URL is configurable so tests
// can point the client at a local server.
func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxBatchSize {
		pageSize = MaxBatchSize
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		retryCfg:   retry.DefaultConfig(),
		log:        log,
	}
}

// Authenticate verifies that the client is usable before any data is fetched.
func (c *Client) Authenticate(_ context.Context) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// playlistItemsResponse is the subset of the playlistItems.list payload we read.
type playlistItemsResponse struct {
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// videosResponse is the subset of the videos.list payload we read.
type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// ListPage fetches one page of video IDs from a playlist. It returns the IDs
// on the page and the token of the next page, empty when this was the last one.
func (c *Client) ListPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(c.pageSize))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp playlistItemsResponse
	if err := c.get(ctx, "playlistItems", params, &resp); err != nil {
		return nil, "", fmt.Errorf("list playlist items: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.ContentDetails.VideoID)
	}

	return ids, resp.NextPageToken, nil
}

// Durations returns the raw duration string for each of up to MaxBatchSize
// video IDs.
func (c *Client) Durations(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("durations: batch of %d exceeds limit of %d", len(ids), MaxBatchSize)
	}

	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))

	var resp videosResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, fmt.Errorf("list video durations: %w", err)
	}

	durations := make(map[string]string, len(resp.Items))
	for _, item := range resp.Items {
		durations[item.ID] = item.ContentDetails.Duration
	}

	return durations, nil
}

// get performs an authenticated GET against one API endpoint with retries on
// transient failures, decoding the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	requestURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	return retry.Do(ctx, c.retryCfg, func() error {
		start := time.Now()

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
		if reqErr != nil {
			return fmt.Errorf("build request: %w", reqErr)
		}

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			metrics.ObserveYouTubeRequest(endpoint, "error", time.Since(start))
			return fmt.Errorf("%s request: %w", endpoint, doErr)
		}
		defer resp.Body.Close()

		metrics.ObserveYouTubeRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			// "server error" marks 5xx responses as transient for the retry policy.
			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("%s: server error %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
			}
			return fmt.Errorf("%s: unexpected status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
		}

		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, decodeErr)
		}

		return nil
	})
}
