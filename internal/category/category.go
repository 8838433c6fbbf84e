package category

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
)

type CreateParams struct {
	PlanID          uuid.UUID        `validate:"required"`
	Name            string           `validate:"required,min=1,max=100"`
	Description     *string          `validate:"omitempty,max=1000"`
	Color           string           `validate:"omitempty,hexcolor"`
	Icon            *string          `validate:"omitempty,max=50"`
	AllocatedBudget *decimal.Decimal `validate:"omitempty,money"`
}

// UpdateParams is a partial update. The owning plan never changes.
type UpdateParams struct {
	Name            *string                 `validate:"omitempty,min=1,max=100"`
	Description     domain.Nullable[string] `validate:"omitempty,max=1000"`
	Color           *string                 `validate:"omitempty,hexcolor"`
	Icon            domain.Nullable[string] `validate:"omitempty,max=50"`
	AllocatedBudget *decimal.Decimal        `validate:"omitempty,money"`
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil &&
		!p.Description.Set &&
		p.Color == nil &&
		!p.Icon.Set &&
		p.AllocatedBudget == nil
}

// Summary is a category with its items and derived totals.
type Summary struct {
	Category *domain.Category
	Totals   budget.Totals
}
