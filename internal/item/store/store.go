package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/item"
)

const selectItemColumns = `id, category_id, name, description, status, estimated_cost,
	actual_cost, paid_amount, priority, due_date, vendor_id, vendor_link, notes,
	attachments, created_at, updated_at`

const selectVendorColumns = `id, name, website, affiliate_link, category_tags, location,
	rating, logo_url, is_verified, created_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListItems(ctx context.Context, categoryID uuid.UUID) ([]*domain.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items
		WHERE category_id = $1
		ORDER BY priority DESC, created_at DESC`

	items := []*domain.Item{}
	if err := s.db.SelectContext(ctx, &items, query, categoryID); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	return items, nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items WHERE id = $1`

	var it domain.Item
	if err := s.db.GetContext(ctx, &it, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	if it.VendorID == nil {
		return &it, nil
	}

	var v domain.Vendor

	err := s.db.GetContext(ctx, &v, `SELECT `+selectVendorColumns+` FROM vendors WHERE id = $1`, *it.VendorID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// vendor removed between the two reads; the FK will null the reference
	case err != nil:
		return nil, fmt.Errorf("getting item vendor: %w", err)
	default:
		it.Vendor = &v
	}

	return &it, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, plan_id, name, description, color, icon, sort_order, allocated_budget, created_at, updated_at
		FROM categories WHERE id = $1`

	var c domain.Category
	if err := s.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) VendorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	if err := s.db.GetContext(ctx, &ok, `SELECT EXISTS (SELECT 1 FROM vendors WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("checking vendor: %w", err)
	}

	return ok, nil
}

func (s *Store) CreateItem(ctx context.Context, it *domain.Item) error {
	return insertItem(ctx, s.db, it)
}

func insertItem(ctx context.Context, q database.DBTX, it *domain.Item) error {
	query := `
		INSERT INTO items (category_id, name, description, status, estimated_cost, actual_cost, paid_amount,
			priority, due_date, vendor_id, vendor_link, notes, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		it.CategoryID,
		it.Name,
		it.Description,
		it.Status,
		it.EstimatedCost,
		it.ActualCost,
		it.PaidAmount,
		it.Priority,
		it.DueDate,
		it.VendorID,
		it.VendorLink,
		it.Notes,
		it.Attachments,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", database.MapError(err, "vendor_id"))
	}

	return nil
}

func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, params item.UpdateParams) error {
	query, args, err := psql.Update("items").
		SetMap(itemChanges(params)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building item update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating item: %w", database.MapError(err, "vendor_id"))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func itemChanges(p item.UpdateParams) map[string]any {
	changes := map[string]any{}

	if p.Name != nil {
		changes["name"] = *p.Name
	}

	if p.Description.Set {
		changes["description"] = p.Description.Ptr()
	}

	if p.Status != nil {
		changes["status"] = *p.Status
	}

	if p.EstimatedCost != nil {
		changes["estimated_cost"] = *p.EstimatedCost
	}

	if p.ActualCost.Set {
		changes["actual_cost"] = p.ActualCost.Ptr()
	}

	if p.PaidAmount != nil {
		changes["paid_amount"] = *p.PaidAmount
	}

	if p.Priority != nil {
		changes["priority"] = *p.Priority
	}

	if p.DueDate.Set {
		changes["due_date"] = p.DueDate.Ptr()
	}

	if p.VendorID.Set {
		changes["vendor_id"] = p.VendorID.Ptr()
	}

	if p.VendorLink.Set {
		changes["vendor_link"] = p.VendorLink.Ptr()
	}

	if p.Notes.Set {
		changes["notes"] = p.Notes.Ptr()
	}

	if p.Attachments != nil {
		changes["attachments"] = domain.StringList(p.Attachments)
	}

	return changes
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type importTx struct {
	tx *sqlx.Tx
}

// BeginImport locks the category row so a concurrent delete cannot leave a
// half-imported batch behind.
func (s *Store) BeginImport(ctx context.Context, categoryID uuid.UUID) (item.ImportTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	var locked uuid.UUID
	if err := tx.GetContext(ctx, &locked, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, categoryID); err != nil {
		tx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("locking category: %w", err)
	}

	return &importTx{tx: tx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateItems(ctx context.Context, items []*domain.Item) error {
	for _, it := range items {
		if err := insertItem(ctx, itx.tx, it); err != nil {
			return err
		}
	}

	return nil
}
