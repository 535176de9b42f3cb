// internal/workers/suggestions/enrich-record/handler_test.go
package enrichrecord

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(LoadConfig(), db, logger.NewTestLogger(t)), mock
}

func TestLatestReturnsNewestRow(t *testing.T) {
	store, mock := newTestStore(t)

	insertedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"business_id", "name", "address", "cuisine", "rating", "review_count", "inserted_at",
	}).AddRow("b1", "Trattoria Uno", "1 Mulberry St", "Italian", 4.5, 812, insertedAt)

	mock.ExpectQuery("SELECT business_id, name, address").
		WithArgs("b1").
		WillReturnRows(rows)

	rec, err := store.Latest(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "b1", rec.BusinessID)
	assert.Equal(t, "Trattoria Uno", rec.Name)
	assert.Equal(t, "1 Mulberry St", rec.Address)
	assert.Equal(t, "Italian", rec.Cuisine)
	assert.Equal(t, 4.5, rec.Rating)
	assert.Equal(t, 812, rec.ReviewCount)
	assert.Equal(t, insertedAt, rec.InsertedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestMissReturnsNilNil(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT business_id, name, address").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{
			"business_id", "name", "address", "cuisine", "rating", "review_count", "inserted_at",
		}))

	rec, err := store.Latest(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, rec)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestWrapsQueryError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT business_id, name, address").
		WithArgs("b1").
		WillReturnError(assert.AnError)

	rec, err := store.Latest(context.Background(), "b1")
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordLookupFailed)
}
