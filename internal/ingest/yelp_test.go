// internal/ingest/yelp_test.go
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
)

func newTestYelpClient(t *testing.T, baseURL string) *YelpClient {
	t.Helper()
	c := NewYelpClient(baseURL, "test-key", httpclient.NewClient(2*time.Second), logger.NewTestLogger(t))
	c.pageDelay = 0
	c.retryDelay = time.Millisecond
	return c
}

func yelpPage(ids ...string) yelpSearchResponse {
	var resp yelpSearchResponse
	for _, id := range ids {
		b := YelpBusiness{ID: id, Name: "Name " + id}
		b.Location.DisplayAddress = []string{id + " Main St", "New York"}
		resp.Businesses = append(resp.Businesses, b)
	}
	resp.Total = len(resp.Businesses)
	return resp
}

func TestSearchBusinessesPaginatesAndDedupes(t *testing.T) {
	pages := []yelpSearchResponse{
		yelpPage("b1", "b2"),
		yelpPage("b2", "b3", "b4"),
	}
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Italian restaurant", r.URL.Query().Get("term"))
		assert.Equal(t, "Manhattan", r.URL.Query().Get("location"))

		page := pages[calls]
		calls++
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := newTestYelpClient(t, server.URL)
	got, err := client.SearchBusinesses(context.Background(), "Italian restaurant", "Manhattan", 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
	assert.Equal(t, "b3", got[2].ID)
	assert.Equal(t, 2, calls)
}

func TestSearchBusinessesRetriesOnRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(yelpPage("b1"))
	}))
	defer server.Close()

	client := newTestYelpClient(t, server.URL)
	got, err := client.SearchBusinesses(context.Background(), "Thai restaurant", "Manhattan", 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, 2, calls)
}

func TestSearchBusinessesErrorOnFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestYelpClient(t, server.URL)
	_, err := client.SearchBusinesses(context.Background(), "Thai restaurant", "Manhattan", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrYelpSearchFailed))
}

func TestSearchBusinessesKeepsPartialCrawlOnLaterFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode(yelpPage("b1", "b2"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestYelpClient(t, server.URL)
	got, err := client.SearchBusinesses(context.Background(), "Thai restaurant", "Manhattan", 10)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchBusinessesStopsOnEmptyPage(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(yelpSearchResponse{})
	}))
	defer server.Close()

	client := newTestYelpClient(t, server.URL)
	got, err := client.SearchBusinesses(context.Background(), "Thai restaurant", "Manhattan", 10)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}

func TestBusinessAddressJoinsDisplayLines(t *testing.T) {
	var b YelpBusiness
	b.Location.DisplayAddress = []string{"123 Mott St", "New York, NY 10013"}
	assert.Equal(t, "123 Mott St New York, NY 10013", b.Address())

	var empty YelpBusiness
	assert.Equal(t, "", empty.Address())
}
