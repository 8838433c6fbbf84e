package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
	"github.com/daileit/wedding-planner/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	// ListCategories returns the plan's categories by sort order with their
	// items loaded.
	ListCategories(ctx context.Context, planID uuid.UUID) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	// CreateCategory appends the category after the plan's current last one.
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, id uuid.UUID, params UpdateParams) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	BeginReorder(ctx context.Context, planID uuid.UUID) (ReorderTx, error)
}

// ReorderTx holds the plan's categories locked until Commit or Rollback.
type ReorderTx interface {
	CategoryIDs(ctx context.Context) ([]uuid.UUID, error)
	SetSortOrder(ctx context.Context, id uuid.UUID, order int) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	guard *ownership.Guard
}

func NewService(repo Repository, guard *ownership.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

func (s *Service) List(ctx context.Context, principal, planID uuid.UUID) ([]Summary, error) {
	if err := s.guard.AuthorizePlan(ctx, principal, planID); err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx, planID)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(categories))
	for _, c := range categories {
		out = append(out, Summary{Category: c, Totals: budget.CategoryTotals(c)})
	}

	return out, nil
}

func (s *Service) Create(ctx context.Context, principal uuid.UUID, params CreateParams) (*domain.Category, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if err := s.guard.AuthorizePlan(ctx, principal, params.PlanID); err != nil {
		return nil, err
	}

	c := &domain.Category{
		PlanID:      params.PlanID,
		Name:        params.Name,
		Description: params.Description,
		Color:       params.Color,
		Icon:        params.Icon,
	}

	if c.Color == "" {
		c.Color = domain.DefaultCategoryColor
	}

	if params.AllocatedBudget != nil {
		c.AllocatedBudget = *params.AllocatedBudget
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, principal, id uuid.UUID, params UpdateParams) (*domain.Category, error) {
	if _, err := s.guard.AuthorizeCategory(ctx, principal, id); err != nil {
		return nil, err
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if !params.IsEmpty() {
		if err := s.repo.UpdateCategory(ctx, id, params); err != nil {
			return nil, err
		}
	}

	return s.repo.GetCategory(ctx, id)
}

// Delete removes the category and its items.
func (s *Service) Delete(ctx context.Context, principal, id uuid.UUID) error {
	if _, err := s.guard.AuthorizeCategory(ctx, principal, id); err != nil {
		return err
	}

	return s.repo.DeleteCategory(ctx, id)
}

// Reorder assigns sort orders 0..n-1 following ordered. Categories of the
// plan that are not listed keep their sort order. An unknown or repeated id
// rejects the whole request and nothing is written.
func (s *Service) Reorder(ctx context.Context, principal, planID uuid.UUID, ordered []uuid.UUID) ([]Summary, error) {
	if err := s.guard.AuthorizePlan(ctx, principal, planID); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(ordered))
	for _, id := range ordered {
		if _, dup := seen[id]; dup {
			return nil, domain.NewValidationError("category_ids", fmt.Sprintf("%s is listed more than once", id))
		}

		seen[id] = struct{}{}
	}

	if len(ordered) > 0 {
		if err := s.applyOrder(ctx, planID, ordered); err != nil {
			return nil, err
		}
	}

	return s.List(ctx, principal, planID)
}

func (s *Service) applyOrder(ctx context.Context, planID uuid.UUID, ordered []uuid.UUID) error {
	rtx, err := s.repo.BeginReorder(ctx, planID)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer rtx.Rollback()

	current, err := rtx.CategoryIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	owned := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		owned[id] = struct{}{}
	}

	for _, id := range ordered {
		if _, ok := owned[id]; !ok {
			return domain.NewValidationError("category_ids", fmt.Sprintf("%s is not a category of this plan", id))
		}
	}

	for i, id := range ordered {
		if err := rtx.SetSortOrder(ctx, id, i); err != nil {
			return fmt.Errorf("setting sort order: %w", err)
		}
	}

	if err := rtx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}

	return nil
}
