package plan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
)

type CreateParams struct {
	Title       string            `validate:"required,min=1,max=200"`
	Description *string           `validate:"omitempty,max=2000"`
	Type        domain.PlanType   `validate:"omitempty,oneof=wedding party corporate_event house_renovation travel other"`
	Status      domain.PlanStatus `validate:"omitempty,oneof=draft active completed archived"`
	TotalBudget *decimal.Decimal  `validate:"required,money"`
	Currency    string            `validate:"omitempty,currency"`
	EventDate   *time.Time
	Metadata    domain.Metadata
}

// UpdateParams is a partial update. Nil pointers and unset Nullables leave
// the stored value untouched.
type UpdateParams struct {
	Title       *string                    `validate:"omitempty,min=1,max=200"`
	Description domain.Nullable[string]    `validate:"omitempty,max=2000"`
	Type        *domain.PlanType           `validate:"omitempty,oneof=wedding party corporate_event house_renovation travel other"`
	Status      *domain.PlanStatus         `validate:"omitempty,oneof=draft active completed archived"`
	TotalBudget *decimal.Decimal           `validate:"omitempty,money"`
	Currency    *string                    `validate:"omitempty,currency"`
	EventDate   domain.Nullable[time.Time] `validate:"-"`
	Metadata    domain.Metadata
}

func (p UpdateParams) IsEmpty() bool {
	return p.Title == nil &&
		!p.Description.Set &&
		p.Type == nil &&
		p.Status == nil &&
		p.TotalBudget == nil &&
		p.Currency == nil &&
		!p.EventDate.Set &&
		p.Metadata == nil
}

// Summary is a plan row in a listing, with its flattened totals.
type Summary struct {
	Plan   *domain.Plan
	Totals budget.Totals
}

// Detail is a fully loaded plan with totals at every level.
type Detail struct {
	Plan           *domain.Plan
	Totals         budget.Totals
	Overview       budget.Overview
	CategoryTotals map[uuid.UUID]budget.Totals
}

// Overview is the budget overview of a plan plus its per-category breakdown.
type Overview struct {
	budget.Overview
	Categories []budget.CategoryStatus
}

func newDetail(p *domain.Plan) *Detail {
	d := &Detail{
		Plan:           p,
		Totals:         budget.PlanTotals(p),
		Overview:       budget.PlanOverview(p),
		CategoryTotals: make(map[uuid.UUID]budget.Totals, len(p.Categories)),
	}

	for _, c := range p.Categories {
		d.CategoryTotals[c.ID] = budget.CategoryTotals(c)
	}

	return d
}
