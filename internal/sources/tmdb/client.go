// Package tmdb fetches the movie catalog from The Movie Database API.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/reelstats/reelstats/internal/ratelimit"
	"github.com/reelstats/reelstats/internal/sources"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

var baseURL = defaultBaseURL

// Client handles TMDB API requests.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	apiKey     string
	language   string
}

// NewClient creates a new TMDB client.
func NewClient(limiter ratelimit.Limiter, apiKey string) *Client {
	return &Client{
		httpClient: sources.NewHTTPClient(),
		limiter:    limiter,
		apiKey:     apiKey,
		language:   "en-US",
	}
}

// Popular returns one page of popular movies. Pages start at 1.
func (c *Client) Popular(ctx context.Context, page int) (*PopularResponse, error) {
	params := c.params()
	params.Set("page", strconv.Itoa(page))

	var out PopularResponse
	if err := sources.GetJSON(ctx, c.httpClient, c.limiter, c.url("/movie/popular", params), &out); err != nil {
		return nil, fmt.Errorf("popular page %d: %w", page, err)
	}
	return &out, nil
}

// Details returns the full record for one movie.
func (c *Client) Details(ctx context.Context, id int64) (*MovieDetails, error) {
	var out MovieDetails
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := sources.GetJSON(ctx, c.httpClient, c.limiter, c.url(path, c.params()), &out); err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return params
}

func (c *Client) url(path string, params url.Values) string {
	return fmt.Sprintf("%s%s?%s", baseURL, path, params.Encode())
}
