// Package omdb fetches ratings and genres from the OMDb API.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reelstats/reelstats/internal/ratelimit"
	"github.com/reelstats/reelstats/internal/sources"
)

const defaultBaseURL = "https://www.omdbapi.com/"

var baseURL = defaultBaseURL

// ErrNotFound is returned when OMDb has no title for the identifier.
var ErrNotFound = errors.New("title not found")

// Client handles OMDb API requests.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	apiKey     string
}

// NewClient creates a new OMDb client.
func NewClient(limiter ratelimit.Limiter, apiKey string) *Client {
	return &Client{
		httpClient: sources.NewHTTPClient(),
		limiter:    limiter,
		apiKey:     apiKey,
	}
}

// ByID looks up one title by its rating-site identifier.
func (c *Client) ByID(ctx context.Context, imdbID string) (*TitleResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)

	var out TitleResponse
	u := fmt.Sprintf("%s?%s", baseURL, params.Encode())
	if err := sources.GetJSON(ctx, c.httpClient, c.limiter, u, &out); err != nil {
		return nil, fmt.Errorf("title %s: %w", imdbID, err)
	}
	if !out.Found() {
		return nil, fmt.Errorf("title %s: %w: %s", imdbID, ErrNotFound, out.Error)
	}
	return &out, nil
}
