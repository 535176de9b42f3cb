// internal/workers/suggestions/find-restaurants/handler_test.go
package findrestaurants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

type fakeHit struct {
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// newFakeSearch spins up a stand-in search endpoint. The product header is
// required or the client refuses to talk to it.
func newFakeSearch(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func searchReplyWith(t *testing.T, w http.ResponseWriter, hits []fakeHit) {
	t.Helper()

	type hitEnvelope struct {
		Source fakeHit `json:"_source"`
	}
	wrapped := make([]hitEnvelope, 0, len(hits))
	for _, h := range hits {
		wrapped = append(wrapped, hitEnvelope{Source: h})
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(hits)},
			"hits":  wrapped,
		},
	})
	require.NoError(t, err)
}

func newTestResolver(t *testing.T, client *elasticsearch.Client) *Resolver {
	t.Helper()
	return NewResolver(LoadConfig(), client, logger.NewTestLogger(t))
}

func TestFindCandidatesReturnsDedupedIDs(t *testing.T) {
	var gotBody map[string]interface{}
	client := newFakeSearch(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		searchReplyWith(t, w, []fakeHit{
			{BusinessID: "b1", Name: "Trattoria Uno", Address: "1 Mulberry St"},
			{BusinessID: "b2", Name: "Osteria Due", Address: "2 Mott St"},
			{BusinessID: "b1", Name: "Trattoria Uno", Address: "1 Mulberry St"},
			{BusinessID: "b3", Name: "Cucina Tre", Address: "3 Spring St"},
		})
	})

	set := newTestResolver(t, client).FindCandidates(context.Background(), "italian")

	assert.Equal(t, []string{"b1", "b2", "b3"}, set.IDs, "duplicates collapse, first-seen order kept")
	assert.Equal(t, models.ShadowRecord{Name: "Osteria Due", Address: "2 Mott St"}, set.Shadows["b2"])

	// Exact-match term query on the title-cased cuisine key.
	query := gotBody["query"].(map[string]interface{})
	term := query["term"].(map[string]interface{})
	assert.Equal(t, "Italian", term["cuisine.keyword"])
	assert.ElementsMatch(t, []interface{}{"business_id", "name", "address"}, gotBody["_source"])
}

func TestFindCandidatesSkipsHitsWithoutID(t *testing.T) {
	client := newFakeSearch(t, func(w http.ResponseWriter, r *http.Request) {
		searchReplyWith(t, w, []fakeHit{
			{BusinessID: "", Name: "Ghost", Address: "Nowhere"},
			{BusinessID: "b1", Name: "Real Place", Address: "5 Elizabeth St"},
		})
	})

	set := newTestResolver(t, client).FindCandidates(context.Background(), "thai")

	assert.Equal(t, []string{"b1"}, set.IDs)
}

func TestFindCandidatesEmptyOnNoHits(t *testing.T) {
	client := newFakeSearch(t, func(w http.ResponseWriter, r *http.Request) {
		searchReplyWith(t, w, nil)
	})

	set := newTestResolver(t, client).FindCandidates(context.Background(), "korean")

	assert.Zero(t, set.Size())
	assert.NotNil(t, set.Shadows)
}

func TestFindCandidatesEmptyOnServerError(t *testing.T) {
	client := newFakeSearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	set := newTestResolver(t, client).FindCandidates(context.Background(), "italian")

	assert.Zero(t, set.Size())
}

func TestFindCandidatesEmptyOnTimeout(t *testing.T) {
	client := newFakeSearch(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		searchReplyWith(t, w, []fakeHit{{BusinessID: "b1"}})
	})

	cfg := LoadConfig()
	cfg.Timeout = 50 * time.Millisecond
	resolver := NewResolver(cfg, client, logger.NewTestLogger(t))

	set := resolver.FindCandidates(context.Background(), "italian")

	assert.Zero(t, set.Size())
}

func TestNormCuisine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"italian", "Italian"},
		{"ITALIAN", "Italian"},
		{"  thai  ", "Thai"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normCuisine(tt.in))
	}
}
