// Package youtube fetches trailer engagement from the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/reelstats/reelstats/internal/ratelimit"
	"github.com/reelstats/reelstats/internal/sources"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

var baseURL = defaultBaseURL

// MaxResults is the largest page the API serves, and the largest id batch
// videos.list accepts.
const MaxResults = 50

// SearchOptions narrows search.list.
type SearchOptions struct {
	Query    string
	Region   string
	Language string
}

// DefaultSearch finds official trailers in US English.
func DefaultSearch() SearchOptions {
	return SearchOptions{Query: "official trailer", Region: "US", Language: "en"}
}

// Client handles YouTube Data API requests.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	apiKey     string
}

// NewClient creates a new YouTube client.
func NewClient(limiter ratelimit.Limiter, apiKey string) *Client {
	return &Client{
		httpClient: sources.NewHTTPClient(),
		limiter:    limiter,
		apiKey:     apiKey,
	}
}

// Search returns one page of video hits. An empty pageToken is the first page.
func (c *Client) Search(ctx context.Context, opts SearchOptions, pageToken string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", opts.Query)
	params.Set("maxResults", strconv.Itoa(MaxResults))
	if opts.Region != "" {
		params.Set("regionCode", opts.Region)
	}
	if opts.Language != "" {
		params.Set("relevanceLanguage", opts.Language)
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var out SearchResponse
	u := fmt.Sprintf("%s/search?%s", baseURL, params.Encode())
	if err := sources.GetJSON(ctx, c.httpClient, c.limiter, u, &out); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &out, nil
}

// Statistics returns statistics keyed by video id. At most MaxResults ids per call.
func (c *Client) Statistics(ctx context.Context, videoIDs []string) (map[string]Video, error) {
	if len(videoIDs) == 0 {
		return map[string]Video{}, nil
	}
	if len(videoIDs) > MaxResults {
		return nil, fmt.Errorf("statistics: %d ids exceeds %d", len(videoIDs), MaxResults)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "statistics")
	params.Set("id", strings.Join(videoIDs, ","))

	var out VideosResponse
	u := fmt.Sprintf("%s/videos?%s", baseURL, params.Encode())
	if err := sources.GetJSON(ctx, c.httpClient, c.limiter, u, &out); err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	stats := make(map[string]Video, len(out.Items))
	for _, v := range out.Items {
		stats[v.ID] = v
	}
	return stats, nil
}
