// internal/workers/suggestions/enrich-record/handler.go
package enrichrecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const (
	ComponentName = "enrich-record"
)

var (
	ErrRecordLookupFailed = errors.New("RECORD_LOOKUP_FAILED")
)

// Store reads full restaurant records from Postgres. The search index only
// carries a projection; this is where the authoritative row lives.
type Store struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewStore(config *Config, db *sql.DB, log logger.Logger) *Store {
	return &Store{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": ComponentName}),
	}
}

// Latest returns the newest record for a business id, or (nil, nil) when no
// row exists. The caller decides how to degrade on lookup errors.
func (s *Store) Latest(ctx context.Context, businessID string) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT business_id, name, address, cuisine, rating, review_count, inserted_at
		FROM %s
		WHERE business_id = $1
		ORDER BY inserted_at DESC
		LIMIT 1`, s.config.Table)

	var rec models.Restaurant
	err := s.db.QueryRowContext(ctx, query, businessID).Scan(
		&rec.BusinessID,
		&rec.Name,
		&rec.Address,
		&rec.Cuisine,
		&rec.Rating,
		&rec.ReviewCount,
		&rec.InsertedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordLookupFailed, businessID, err)
	}

	return &rec, nil
}
