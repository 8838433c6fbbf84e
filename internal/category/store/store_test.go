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

	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/domain"
)

var categoryCols = []string{"id", "plan_id", "name", "description", "color", "icon", "sort_order",
	"allocated_budget", "created_at", "updated_at"}

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStore_CreateCategory(t *testing.T) {
	newCategory := func() *domain.Category {
		return &domain.Category{
			PlanID:          uuid.New(),
			Name:            "Catering",
			Color:           domain.DefaultCategoryColor,
			AllocatedBudget: decimal.Zero,
		}
	}

	t.Run("LocksPlanBeforeInsert", func(t *testing.T) {
		s, mock := newStore(t)

		c := newCategory()
		now := time.Now()
		newID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM plans WHERE id = \\$1 FOR UPDATE").
			WithArgs(c.PlanID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO categories .+ COALESCE\\(MAX\\(sort_order\\) \\+ 1, 0\\)").
			WithArgs(c.PlanID, "Catering", nil, "#6366f1", nil, "0").
			WillReturnRows(sqlmock.NewRows([]string{"id", "sort_order", "created_at", "updated_at"}).
				AddRow(newID.String(), 1, now, now))
		mock.ExpectCommit()

		require.NoError(t, s.CreateCategory(context.Background(), c))
		assert.Equal(t, newID, c.ID)
		assert.Equal(t, 1, c.SortOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenInsertFails", func(t *testing.T) {
		s, mock := newStore(t)

		c := newCategory()

		mock.ExpectBegin()
		mock.ExpectExec("FOR UPDATE").WithArgs(c.PlanID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO categories").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := s.CreateCategory(context.Background(), c)
		assert.ErrorContains(t, err, "creating category")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_ListCategories(t *testing.T) {
	s, mock := newStore(t)

	planID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM categories\\s+WHERE plan_id = \\$1\\s+ORDER BY sort_order ASC").
		WithArgs(planID).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(uuid.NewString(), planID.String(), "Venue", nil, "#6366f1", nil, 0, "0.00", now, now))
	mock.ExpectQuery("FROM items i\\s+JOIN categories c").
		WithArgs(planID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := s.ListCategories(context.Background(), planID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetCategory_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM categories WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := s.GetCategory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateCategory(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectExec("UPDATE categories SET color = \\$1, icon = \\$2, name = \\$3, updated_at = NOW\\(\\) WHERE id = \\$4").
		WithArgs("#ff0000", nil, "Reception", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateCategory(context.Background(), id, category.UpdateParams{
		Name:  new("Reception"),
		Color: new("#ff0000"),
		Icon:  domain.Null[string](),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Reorder(t *testing.T) {
	s, mock := newStore(t)

	var (
		planID = uuid.New()
		a      = uuid.New()
		b      = uuid.New()
	)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM categories WHERE plan_id = \\$1 ORDER BY sort_order FOR UPDATE").
		WithArgs(planID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(a.String()).AddRow(b.String()))
	mock.ExpectExec("UPDATE categories SET sort_order").
		WithArgs(0, b, planID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE categories SET sort_order").
		WithArgs(1, a, planID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()

	rtx, err := s.BeginReorder(ctx, planID)
	require.NoError(t, err)

	ids, err := rtx.CategoryIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	require.NoError(t, rtx.SetSortOrder(ctx, b, 0))
	require.NoError(t, rtx.SetSortOrder(ctx, a, 1))
	require.NoError(t, rtx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
