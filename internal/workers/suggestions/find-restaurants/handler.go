// internal/workers/suggestions/find-restaurants/handler.go
package findrestaurants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const (
	ComponentName = "find-restaurants"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrSearchTimeout     = errors.New("SEARCH_TIMEOUT")
)

// Resolver finds candidate restaurants for a cuisine in the search index.
// All failures degrade to an empty candidate set: a broken index means a
// thinner email, never a stuck request.
type Resolver struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewResolver(config *Config, client *elasticsearch.Client, log logger.Logger) *Resolver {
	return &Resolver{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{
			"component": ComponentName,
		}),
	}
}

// FindCandidates returns deduplicated business ids matching the cuisine,
// plus a shadow record per id for fallback when the record store misses.
func (r *Resolver) FindCandidates(ctx context.Context, cuisine string) models.CandidateSet {
	cuisineTC := normCuisine(cuisine)

	set, err := r.search(ctx, cuisineTC)
	if err != nil {
		r.logger.WithError(err).Error("candidate search failed", map[string]interface{}{
			"cuisine": cuisineTC,
		})
		return models.CandidateSet{Shadows: map[string]models.ShadowRecord{}}
	}

	r.logger.Info("candidate search completed", map[string]interface{}{
		"cuisine": cuisineTC,
		"hits":    set.Size(),
	})
	return set
}

func (r *Resolver) search(ctx context.Context, cuisineTC string) (models.CandidateSet, error) {
	empty := models.CandidateSet{Shadows: map[string]models.ShadowRecord{}}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	size := r.config.MaxResults
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"cuisine.keyword": cuisineTC,
			},
		},
		"_source": []string{"business_id", "name", "address"},
	}
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{r.config.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return empty, ErrSearchTimeout
		}
		return empty, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return empty, fmt.Errorf("%w: status %s", ErrSearchQueryFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return empty, fmt.Errorf("%w: decode: %v", ErrSearchQueryFailed, err)
	}

	set := models.CandidateSet{Shadows: make(map[string]models.ShadowRecord)}
	for _, hit := range parsed.Hits.Hits {
		bid := hit.Source.BusinessID
		if bid == "" {
			continue
		}
		if _, seen := set.Shadows[bid]; seen {
			continue
		}
		set.IDs = append(set.IDs, bid)
		set.Shadows[bid] = models.ShadowRecord{
			Name:    hit.Source.Name,
			Address: hit.Source.Address,
		}
	}

	return set, nil
}

// normCuisine folds a cuisine key to the title-cased form the index stores.
func normCuisine(cuisine string) string {
	c := strings.ToLower(strings.TrimSpace(cuisine))
	if c == "" {
		return ""
	}
	return strings.ToUpper(c[:1]) + c[1:]
}
