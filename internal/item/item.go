package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/domain"
)

type CreateParams struct {
	CategoryID    uuid.UUID         `validate:"required"`
	Name          string            `validate:"required,min=1,max=200"`
	Description   *string           `validate:"omitempty,max=2000"`
	Status        domain.ItemStatus `validate:"omitempty,oneof=pending in_progress booked paid completed cancelled"`
	EstimatedCost *decimal.Decimal  `validate:"omitempty,money"`
	ActualCost    *decimal.Decimal  `validate:"omitempty,money"`
	PaidAmount    *decimal.Decimal  `validate:"omitempty,money"`
	Priority      *int              `validate:"omitempty,min=0,max=100"`
	DueDate       *time.Time
	VendorID      *uuid.UUID
	VendorLink    *string  `validate:"omitempty,url"`
	Notes         *string  `validate:"omitempty,max=5000"`
	Attachments   []string `validate:"omitempty,dive,min=1,max=1000"`
}

// UpdateParams is a partial update. Nullable fields separate "leave as is"
// from "clear"; an ActualCost of null means the cost is no longer known.
type UpdateParams struct {
	Name          *string                          `validate:"omitempty,min=1,max=200"`
	Description   domain.Nullable[string]          `validate:"omitempty,max=2000"`
	Status        *domain.ItemStatus               `validate:"omitempty,oneof=pending in_progress booked paid completed cancelled"`
	EstimatedCost *decimal.Decimal                 `validate:"omitempty,money"`
	ActualCost    domain.Nullable[decimal.Decimal] `validate:"omitempty,money"`
	PaidAmount    *decimal.Decimal                 `validate:"omitempty,money"`
	Priority      *int                             `validate:"omitempty,min=0,max=100"`
	DueDate       domain.Nullable[time.Time]       `validate:"-"`
	VendorID      domain.Nullable[uuid.UUID]       `validate:"-"`
	VendorLink    domain.Nullable[string]          `validate:"omitempty,url"`
	Notes         domain.Nullable[string]          `validate:"omitempty,max=5000"`
	Attachments   []string                         `validate:"omitempty,dive,min=1,max=1000"` // nil leaves attachments untouched
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil &&
		!p.Description.Set &&
		p.Status == nil &&
		p.EstimatedCost == nil &&
		!p.ActualCost.Set &&
		p.PaidAmount == nil &&
		p.Priority == nil &&
		!p.DueDate.Set &&
		!p.VendorID.Set &&
		!p.VendorLink.Set &&
		!p.Notes.Set &&
		p.Attachments == nil
}

// Detail is an item with its vendor and parent category.
type Detail struct {
	Item     *domain.Item
	Category *domain.Category
}
