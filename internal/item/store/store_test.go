package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/item"
)

var (
	itemCols = []string{"id", "category_id", "name", "description", "status", "estimated_cost",
		"actual_cost", "paid_amount", "priority", "due_date", "vendor_id", "vendor_link", "notes",
		"attachments", "created_at", "updated_at"}
	vendorCols = []string{"id", "name", "website", "affiliate_link", "category_tags", "location",
		"rating", "logo_url", "is_verified", "created_at"}
)

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStore_GetItem_WithVendor(t *testing.T) {
	s, mock := newStore(t)

	var (
		now      = time.Now()
		id       = uuid.New()
		vendorID = uuid.New()
	)

	mock.ExpectQuery("FROM items WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(
			id.String(), uuid.NewString(), "Photographer", nil, "booked", "1500.00",
			nil, "500.00", 2, now, vendorID.String(), nil, "bring two cameras", "{}", now, now,
		))
	mock.ExpectQuery("FROM vendors WHERE id = \\$1").
		WithArgs(vendorID).
		WillReturnRows(sqlmock.NewRows(vendorCols).AddRow(
			vendorID.String(), "Lens & Light", nil, nil, "{photography,video}", "Hanoi",
			"4.80", nil, true, now,
		))

	it, err := s.GetItem(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.False(t, it.ActualCost.Valid)
	assert.True(t, it.PaidAmount.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, it.Notes)
	assert.Equal(t, "bring two cameras", *it.Notes)
	require.NotNil(t, it.Vendor)
	assert.Equal(t, "Lens & Light", it.Vendor.Name)
	assert.Equal(t, domain.StringList{"photography", "video"}, it.Vendor.CategoryTags)
}

func TestStore_GetItem_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM items WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := s.GetItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CreateItem_UnknownVendor(t *testing.T) {
	s, mock := newStore(t)

	vendorID := uuid.New()

	mock.ExpectQuery("INSERT INTO items").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "items_vendor_id_fkey"})

	err := s.CreateItem(context.Background(), &domain.Item{
		CategoryID: uuid.New(),
		Name:       "Florist",
		Status:     domain.ItemStatusPending,
		VendorID:   &vendorID,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_UpdateItem(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectExec("UPDATE items SET actual_cost = \\$1, notes = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs(nil, "call back", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateItem(context.Background(), id, item.UpdateParams{
		ActualCost: domain.Null[decimal.Decimal](),
		Notes:      domain.Some("call back"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Import(t *testing.T) {
	s, mock := newStore(t)

	categoryID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM categories WHERE id = \\$1 FOR UPDATE").
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(categoryID.String()))
	for range 2 {
		mock.ExpectQuery("INSERT INTO items").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(uuid.NewString(), now, now))
	}
	mock.ExpectCommit()

	ctx := context.Background()

	itx, err := s.BeginImport(ctx, categoryID)
	require.NoError(t, err)

	items := []*domain.Item{
		{CategoryID: categoryID, Name: "Venue", Status: domain.ItemStatusPending, Attachments: domain.StringList{}},
		{CategoryID: categoryID, Name: "Cake", Status: domain.ItemStatusPending, Attachments: domain.StringList{}},
	}

	require.NoError(t, itx.CreateItems(ctx, items))
	require.NoError(t, itx.Commit())

	for _, it := range items {
		assert.NotEqual(t, uuid.Nil, it.ID)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_BeginImport_MissingCategory(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM categories").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.BeginImport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
