package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
)

const selectCategoryColumns = `id, plan_id, name, description, color, icon, sort_order,
	allocated_budget, created_at, updated_at`

const selectItemColumns = `i.id, i.category_id, i.name, i.description, i.status, i.estimated_cost,
	i.actual_cost, i.paid_amount, i.priority, i.due_date, i.vendor_id, i.vendor_link, i.notes,
	i.attachments, i.created_at, i.updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCategories(ctx context.Context, planID uuid.UUID) ([]*domain.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE plan_id = $1
		ORDER BY sort_order ASC, created_at ASC`

	var categories []*domain.Category
	if err := s.db.SelectContext(ctx, &categories, query, planID); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	if len(categories) == 0 {
		return categories, nil
	}

	var items []*domain.Item

	err := s.db.SelectContext(ctx, &items, `
		SELECT `+selectItemColumns+`
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE c.plan_id = $1
		ORDER BY i.priority DESC, i.created_at DESC`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		c.Items = []*domain.Item{}
		byID[c.ID] = c
	}

	for _, it := range items {
		if c, ok := byID[it.CategoryID]; ok {
			c.Items = append(c.Items, it)
		}
	}

	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	var c domain.Category
	if err := s.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	c.Items = []*domain.Item{}

	err := s.db.SelectContext(ctx, &c.Items, `
		SELECT `+selectItemColumns+`
		FROM items i
		WHERE i.category_id = $1
		ORDER BY i.priority DESC, i.created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("listing category items: %w", err)
	}

	return &c, nil
}

// CreateCategory appends c after the plan's last category. The plan row is
// locked first so concurrent creates on one plan take turns and each insert
// reads the maximum the previous one committed.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create category tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT id FROM plans WHERE id = $1 FOR UPDATE`, c.PlanID); err != nil {
		return fmt.Errorf("locking plan: %w", err)
	}

	query := `
		INSERT INTO categories (plan_id, name, description, color, icon, sort_order, allocated_budget, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories WHERE plan_id = $1),
			$6, NOW(), NOW())
		RETURNING id, sort_order, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		c.PlanID,
		c.Name,
		c.Description,
		c.Color,
		c.Icon,
		c.AllocatedBudget,
	).Scan(&c.ID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", database.MapError(err, "plan_id"))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing category: %w", err)
	}

	c.Items = []*domain.Item{}

	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, id uuid.UUID, params category.UpdateParams) error {
	changes := map[string]any{}

	if params.Name != nil {
		changes["name"] = *params.Name
	}

	if params.Description.Set {
		changes["description"] = params.Description.Ptr()
	}

	if params.Color != nil {
		changes["color"] = *params.Color
	}

	if params.Icon.Set {
		changes["icon"] = params.Icon.Ptr()
	}

	if params.AllocatedBudget != nil {
		changes["allocated_budget"] = *params.AllocatedBudget
	}

	query, args, err := psql.Update("categories").
		SetMap(changes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building category update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return requireRow(res)
}

// DeleteCategory relies on ON DELETE CASCADE for the category's items.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return requireRow(res)
}

type reorderTx struct {
	tx     *sqlx.Tx
	planID uuid.UUID
}

func (s *Store) BeginReorder(ctx context.Context, planID uuid.UUID) (category.ReorderTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reorder tx: %w", err)
	}

	return &reorderTx{tx: tx, planID: planID}, nil
}

func (r *reorderTx) Commit() error   { return r.tx.Commit() }
func (r *reorderTx) Rollback() error { return r.tx.Rollback() }

// CategoryIDs locks the plan's categories for the rest of the transaction.
func (r *reorderTx) CategoryIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := r.tx.SelectContext(ctx, &ids,
		`SELECT id FROM categories WHERE plan_id = $1 ORDER BY sort_order FOR UPDATE`, r.planID)
	if err != nil {
		return nil, fmt.Errorf("locking categories: %w", err)
	}

	return ids, nil
}

func (r *reorderTx) SetSortOrder(ctx context.Context, id uuid.UUID, order int) error {
	_, err := r.tx.ExecContext(ctx,
		`UPDATE categories SET sort_order = $1, updated_at = NOW() WHERE id = $2 AND plan_id = $3`,
		order, id, r.planID)
	if err != nil {
		return fmt.Errorf("updating sort order: %w", err)
	}

	return nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
