package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daileit/wedding-planner/internal/catalog"
	"github.com/daileit/wedding-planner/internal/domain"
)

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStore_SearchVendors(t *testing.T) {
	s, mock := newStore(t)

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM vendors WHERE name ILIKE \\$1 AND \\$2 = ANY\\(category_tags\\) "+
		"ORDER BY is_verified DESC, rating DESC NULLS LAST, name ASC LIMIT 50").
		WithArgs("%lens%", "photography").
		WillReturnRows(sqlmock.NewRows(vendorColumns).
			AddRow(uuid.NewString(), "Lens & Light", nil, nil, "{photography}", nil, "4.80", nil, true, now))

	got, err := s.SearchVendors(context.Background(), catalog.Filter{Query: "lens", Tag: "photography", Limit: 50})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsVerified)
	assert.True(t, got[0].Rating.Decimal.Equal(decimal.RequireFromString("4.8")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetVendor_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM vendors WHERE id = \\$1").WillReturnError(sql.ErrNoRows)

	_, err := s.GetVendor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SeedTx(t *testing.T) {
	t.Run("Commits", func(t *testing.T) {
		s, mock := newStore(t)

		id := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO vendors .+ ON CONFLICT \\(LOWER\\(name\\)\\) DO UPDATE").
			WithArgs("Lens & Light", nil, nil, "{\"photography\"}", nil, nil, nil, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))
		mock.ExpectCommit()

		ctx := context.Background()

		stx, err := s.BeginSeed(ctx)
		require.NoError(t, err)

		v := &domain.Vendor{Name: "Lens & Light", CategoryTags: domain.StringList{"photography"}}
		require.NoError(t, stx.UpsertVendor(ctx, v))
		require.NoError(t, stx.Commit())

		assert.Equal(t, id, v.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnFailure", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO vendors").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		ctx := context.Background()

		stx, err := s.BeginSeed(ctx)
		require.NoError(t, err)

		err = stx.UpsertVendor(ctx, &domain.Vendor{Name: "Lens & Light", CategoryTags: domain.StringList{}})
		assert.ErrorContains(t, err, "upserting vendor")
		require.NoError(t, stx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
