package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
	"github.com/daileit/wedding-planner/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=plan
type Repository interface {
	// ListPlans returns the user's plans newest first with categories and
	// items loaded.
	ListPlans(ctx context.Context, userID uuid.UUID) ([]*domain.Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	CreatePlan(ctx context.Context, p *domain.Plan) error
	UpdatePlan(ctx context.Context, id uuid.UUID, params UpdateParams) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo  Repository
	guard *ownership.Guard
}

func NewService(repo Repository, guard *ownership.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

func (s *Service) List(ctx context.Context, principal uuid.UUID) ([]Summary, error) {
	if principal == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	plans, err := s.repo.ListPlans(ctx, principal)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(plans))
	for _, p := range plans {
		out = append(out, Summary{Plan: p, Totals: budget.PlanTotals(p)})
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, principal, id uuid.UUID) (*Detail, error) {
	if err := s.guard.AuthorizePlan(ctx, principal, id); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	return newDetail(p), nil
}

func (s *Service) Create(ctx context.Context, principal uuid.UUID, params CreateParams) (*domain.Plan, error) {
	if principal == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	p := &domain.Plan{
		UserID:      principal,
		Title:       params.Title,
		Description: params.Description,
		Type:        params.Type,
		Status:      params.Status,
		TotalBudget: *params.TotalBudget,
		Currency:    params.Currency,
		EventDate:   params.EventDate,
		Metadata:    params.Metadata,
	}

	if p.Type == "" {
		p.Type = domain.DefaultPlanType
	}

	if p.Status == "" {
		p.Status = domain.PlanStatusDraft
	}

	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}

	if p.Metadata == nil {
		p.Metadata = domain.Metadata{}
	}

	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Update applies a partial update. Empty params write nothing and return
// the stored plan.
func (s *Service) Update(ctx context.Context, principal, id uuid.UUID, params UpdateParams) (*domain.Plan, error) {
	if err := s.guard.AuthorizePlan(ctx, principal, id); err != nil {
		return nil, err
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if !params.IsEmpty() {
		if err := s.repo.UpdatePlan(ctx, id, params); err != nil {
			return nil, err
		}
	}

	return s.repo.GetPlan(ctx, id)
}

// Delete removes the plan with its categories and items.
func (s *Service) Delete(ctx context.Context, principal, id uuid.UUID) error {
	if err := s.guard.AuthorizePlan(ctx, principal, id); err != nil {
		return err
	}

	return s.repo.DeletePlan(ctx, id)
}

func (s *Service) Overview(ctx context.Context, principal, id uuid.UUID) (*Overview, error) {
	if err := s.guard.AuthorizePlan(ctx, principal, id); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Overview:   budget.PlanOverview(p),
		Categories: budget.CategoryBreakdown(p),
	}, nil
}

func (s *Service) Dashboard(ctx context.Context, principal uuid.UUID, now time.Time) (budget.Dashboard, error) {
	if principal == uuid.Nil {
		return budget.Dashboard{}, domain.ErrUnauthorized
	}

	plans, err := s.repo.ListPlans(ctx, principal)
	if err != nil {
		return budget.Dashboard{}, fmt.Errorf("loading plans: %w", err)
	}

	return budget.Summarize(plans, now), nil
}
