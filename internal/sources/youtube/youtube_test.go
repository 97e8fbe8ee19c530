package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstats/reelstats/internal/logger"
)

// mockLimiter is a no-op limiter for tests.
type mockLimiter struct{}

func (mockLimiter) Wait(_ context.Context) error { return nil }
func (mockLimiter) Backoff(int) time.Duration    { return 0 }
func (mockLimiter) MaxRetries() int              { return 1 }

func hit(id, title string) SearchItem {
	var item SearchItem
	item.ID.VideoID = id
	item.Snippet.Title = title
	return item
}

func TestMapVideo(t *testing.T) {
	var stats Video
	stats.Statistics.ViewCount = "1200"
	stats.Statistics.LikeCount = "bogus"

	tr, ok := MapVideo(hit("v1", "Tom &amp; Jerry | Official Trailer"), stats)
	require.True(t, ok)
	assert.Equal(t, "Tom & Jerry | Official Trailer", tr.Title)
	assert.EqualValues(t, 1200, tr.ViewCount)
	assert.EqualValues(t, 0, tr.LikeCount)
	assert.EqualValues(t, 0, tr.CommentCount)

	_, ok = MapVideo(hit("v2", "Show Season 2 Official Trailer"), Video{})
	assert.False(t, ok)
	_, ok = MapVideo(hit("", "Movie Trailer"), Video{})
	assert.False(t, ok)
}

func TestParseCount(t *testing.T) {
	assert.EqualValues(t, 42, parseCount(" 42 "))
	assert.EqualValues(t, 0, parseCount(""))
	assert.EqualValues(t, 0, parseCount("-3"))
}

func TestFetchTrailers(t *testing.T) {
	stats := map[string]string{
		"a": `{"id":"a","statistics":{"viewCount":"100","likeCount":"10","commentCount":"1"}}`,
		"b": `{"id":"b","statistics":{"viewCount":"200"}}`,
		"d": `{"id":"d","statistics":{"viewCount":"300"}}`,
		"e": `{"id":"e","statistics":{"viewCount":"500","likeCount":"50","commentCount":"5"}}`,
	}
	var statIDs []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("key"))

		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "official trailer", q.Get("q"))
			assert.Equal(t, "US", q.Get("regionCode"))
			assert.Equal(t, "50", q.Get("maxResults"))
			if q.Get("pageToken") == "" {
				_, _ = w.Write([]byte(`{"nextPageToken":"p2","items":[
					{"id":{"videoId":"a"},"snippet":{"title":"Alpha Official Trailer"}},
					{"id":{"videoId":"b"},"snippet":{"title":"Beta (2024) | Official Trailer"}},
					{"id":{"videoId":"c"},"snippet":{"title":"Gamma Season 1 Trailer"}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"items":[
				{"id":{"videoId":"d"},"snippet":{"title":"Beta - Official Trailer HD"}},
				{"id":{"videoId":"e"},"snippet":{"title":"Delta Official Trailer"}},
				{"id":{"videoId":"f"},"snippet":{"title":"Zeta Official Trailer"}}]}`))
		case "/videos":
			assert.Equal(t, "statistics", q.Get("part"))
			statIDs = append(statIDs, q.Get("id"))
			var items []string
			for _, id := range strings.Split(q.Get("id"), ",") {
				if body, ok := stats[id]; ok {
					items = append(items, body)
				}
			}
			_, _ = w.Write([]byte(`{"items":[` + strings.Join(items, ",") + `]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	old := baseURL
	baseURL = ts.URL
	defer func() { baseURL = old }()

	f := NewFetcher(NewClient(mockLimiter{}, "key"), logger.NewNop(), DefaultSearch(), 0)
	trailers, err := f.FetchTrailers(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(trailers))
	for _, tr := range trailers {
		ids = append(ids, tr.VideoID)
	}
	// c is episodic, d duplicates b, f has no statistics.
	assert.Equal(t, []string{"a", "b", "e"}, ids)
	assert.EqualValues(t, 200, trailers[1].ViewCount)
	assert.EqualValues(t, 0, trailers[1].LikeCount)
	assert.Equal(t, []string{"a,b,c", "d,e,f"}, statIDs)
}

func TestFetchTrailersStatisticsFailureKeepsZeroCounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/videos" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"a"},"snippet":{"title":"Alpha Official Trailer"}}]}`))
	}))
	defer ts.Close()

	old := baseURL
	baseURL = ts.URL
	defer func() { baseURL = old }()

	f := NewFetcher(NewClient(mockLimiter{}, "key"), logger.NewNop(), DefaultSearch(), 1)
	trailers, err := f.FetchTrailers(context.Background())
	require.NoError(t, err)
	require.Len(t, trailers, 1)
	assert.Equal(t, "a", trailers[0].VideoID)
	assert.EqualValues(t, 0, trailers[0].ViewCount)
}

func TestFetchTrailersSearchErrorKeepsCollected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/videos":
			_, _ = w.Write([]byte(`{"items":[{"id":"a","statistics":{"viewCount":"7"}}]}`))
		case r.URL.Query().Get("pageToken") == "":
			_, _ = w.Write([]byte(`{"nextPageToken":"p2","items":[{"id":{"videoId":"a"},"snippet":{"title":"Alpha Official Trailer"}}]}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"quotaExceeded"}}`))
		}
	}))
	defer ts.Close()

	old := baseURL
	baseURL = ts.URL
	defer func() { baseURL = old }()

	f := NewFetcher(NewClient(mockLimiter{}, "key"), logger.NewNop(), DefaultSearch(), 3)
	trailers, err := f.FetchTrailers(context.Background())
	require.NoError(t, err)
	require.Len(t, trailers, 1)
	assert.EqualValues(t, 7, trailers[0].ViewCount)
}

func TestFetchTrailersFirstPageError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"quotaExceeded"}}`))
	}))
	defer ts.Close()

	old := baseURL
	baseURL = ts.URL
	defer func() { baseURL = old }()

	f := NewFetcher(NewClient(mockLimiter{}, "key"), logger.NewNop(), DefaultSearch(), 2)
	trailers, err := f.FetchTrailers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trailers)
}

func TestStatisticsRejectsOversizedBatch(t *testing.T) {
	ids := make([]string, MaxResults+1)
	_, err := NewClient(mockLimiter{}, "key").Statistics(context.Background(), ids)
	require.Error(t, err)
}
