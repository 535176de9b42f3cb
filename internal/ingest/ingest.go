// internal/ingest/ingest.go
package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
)

const ComponentName = "restaurant-ingest"

// Summary reports what one ingest run accomplished.
type Summary struct {
	Fetched int `json:"fetched"`
	Stored  int `json:"stored"`
	Indexed int `json:"indexed"`
}

// Ingestor crawls Yelp per cuisine and neighborhood, appends full records to
// Postgres and indexes the searchable projection into Elasticsearch.
type Ingestor struct {
	config config.IngestConfig
	yelp   *YelpClient
	db     *sql.DB
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIngestor(cfg config.IngestConfig, yelp *YelpClient, db *sql.DB, es *elasticsearch.Client, index string, log logger.Logger) *Ingestor {
	return &Ingestor{
		config: cfg,
		yelp:   yelp,
		db:     db,
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": ComponentName}),
	}
}

// Run crawls every configured cuisine in every configured neighborhood.
// Store and index failures are logged and skipped so one bad record does not
// abort the crawl.
func (i *Ingestor) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	for _, cuisine := range i.config.Cuisines {
		cuisine = strings.TrimSpace(cuisine)
		if cuisine == "" {
			continue
		}
		term := cuisine + " restaurant"

		for _, neighborhood := range i.config.Neighborhoods {
			loc := strings.TrimSpace(neighborhood)
			if loc == "" {
				continue
			}

			businesses, err := i.yelp.SearchBusinesses(ctx, term, loc, i.config.PerCuisine)
			if err != nil {
				return sum, fmt.Errorf("ingest crawl %q in %q: %w", cuisine, loc, err)
			}
			sum.Fetched += len(businesses)

			i.logger.Info("fetched businesses", map[string]interface{}{
				"cuisine":      cuisine,
				"neighborhood": loc,
				"count":        len(businesses),
			})

			for _, b := range businesses {
				if err := i.storeRecord(ctx, b, cuisine); err != nil {
					i.logger.Error("store failed", map[string]interface{}{
						"businessId": b.ID,
						"error":      err.Error(),
					})
				} else {
					sum.Stored++
				}

				if err := i.indexDocument(ctx, b, cuisine); err != nil {
					i.logger.Error("index failed", map[string]interface{}{
						"businessId": b.ID,
						"error":      err.Error(),
					})
				} else {
					sum.Indexed++
				}
			}
		}
	}

	i.logger.Info("ingest complete", map[string]interface{}{
		"fetched": sum.Fetched,
		"stored":  sum.Stored,
		"indexed": sum.Indexed,
	})
	return sum, nil
}

// storeRecord appends a full row. Rows are never updated in place; the
// enrichment store reads the newest row per business id.
func (i *Ingestor) storeRecord(ctx context.Context, b YelpBusiness, cuisine string) error {
	query := `INSERT INTO restaurants (business_id, name, address, cuisine, rating, review_count, inserted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := i.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Address(), cuisine, b.Rating, b.ReviewCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// indexDocument puts the searchable projection, keyed by business id so
// re-running the ingest overwrites rather than duplicates.
func (i *Ingestor) indexDocument(ctx context.Context, b YelpBusiness, cuisine string) error {
	doc := map[string]interface{}{
		"business_id": b.ID,
		"name":        b.Name,
		"address":     b.Address(),
		"cuisine":     cuisine,
		"zip_code":    b.Location.ZipCode,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: b.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index document: status %s", res.Status())
	}
	return nil
}
