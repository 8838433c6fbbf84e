package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/plan"
)

const planColumns = `id, user_id, title, description, type, status, total_budget, currency,
	event_date, metadata, created_at, updated_at`

const categoryColumns = `c.id, c.plan_id, c.name, c.description, c.color, c.icon, c.sort_order,
	c.allocated_budget, c.created_at, c.updated_at`

const itemColumns = `i.id, i.category_id, i.name, i.description, i.status, i.estimated_cost,
	i.actual_cost, i.paid_amount, i.priority, i.due_date, i.vendor_id, i.vendor_link, i.notes,
	i.attachments, i.created_at, i.updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db database.DBTX
}

func New(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) ListPlans(ctx context.Context, userID uuid.UUID) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE user_id = $1 ORDER BY created_at DESC`

	var plans []*domain.Plan
	if err := s.db.SelectContext(ctx, &plans, query, userID); err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	if err := s.loadTree(ctx, plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (s *Store) GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	var p domain.Plan
	if err := s.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting plan: %w", err)
	}

	if err := s.loadTree(ctx, []*domain.Plan{&p}); err != nil {
		return nil, err
	}

	return &p, nil
}

// loadTree attaches categories (sort order ascending) and their items
// (priority descending, newest first) to the given plans.
func (s *Store) loadTree(ctx context.Context, plans []*domain.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	ids := make(pq.StringArray, 0, len(plans))
	byID := make(map[uuid.UUID]*domain.Plan, len(plans))

	for _, p := range plans {
		ids = append(ids, p.ID.String())
		byID[p.ID] = p
		p.Categories = []*domain.Category{}
	}

	var categories []*domain.Category

	err := s.db.SelectContext(ctx, &categories, `
		SELECT `+categoryColumns+`
		FROM categories c
		WHERE c.plan_id = ANY($1::uuid[])
		ORDER BY c.sort_order ASC, c.created_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	categoryByID := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		c.Items = []*domain.Item{}
		categoryByID[c.ID] = c

		if p, ok := byID[c.PlanID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}

	if len(categories) == 0 {
		return nil
	}

	var items []*domain.Item

	err = s.db.SelectContext(ctx, &items, `
		SELECT `+itemColumns+`
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE c.plan_id = ANY($1::uuid[])
		ORDER BY i.priority DESC, i.created_at DESC`, ids)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	for _, it := range items {
		if c, ok := categoryByID[it.CategoryID]; ok {
			c.Items = append(c.Items, it)
		}
	}

	return nil
}

func (s *Store) CreatePlan(ctx context.Context, p *domain.Plan) error {
	query := `
		INSERT INTO plans (user_id, title, description, type, status, total_budget, currency, event_date, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Title,
		p.Description,
		p.Type,
		p.Status,
		p.TotalBudget,
		p.Currency,
		p.EventDate,
		p.Metadata,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating plan: %w", database.MapError(err, "user_id"))
	}

	p.Categories = []*domain.Category{}

	return nil
}

func (s *Store) UpdatePlan(ctx context.Context, id uuid.UUID, params plan.UpdateParams) error {
	query, args, err := psql.Update("plans").
		SetMap(planChanges(params)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building plan update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}

	return requireRow(res)
}

func planChanges(params plan.UpdateParams) map[string]any {
	changes := map[string]any{}

	if params.Title != nil {
		changes["title"] = *params.Title
	}

	if params.Description.Set {
		changes["description"] = params.Description.Ptr()
	}

	if params.Type != nil {
		changes["type"] = *params.Type
	}

	if params.Status != nil {
		changes["status"] = *params.Status
	}

	if params.TotalBudget != nil {
		changes["total_budget"] = *params.TotalBudget
	}

	if params.Currency != nil {
		changes["currency"] = *params.Currency
	}

	if params.EventDate.Set {
		changes["event_date"] = params.EventDate.Ptr()
	}

	if params.Metadata != nil {
		changes["metadata"] = params.Metadata
	}

	return changes
}

// DeletePlan relies on ON DELETE CASCADE for categories and items.
func (s *Store) DeletePlan(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	return requireRow(res)
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
