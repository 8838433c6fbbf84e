package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is a budgeting project owned by exactly one user.
type Plan struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Title       string          `db:"title"`
	Description *string         `db:"description"`
	Type        PlanType        `db:"type"`
	Status      PlanStatus      `db:"status"`
	TotalBudget decimal.Decimal `db:"total_budget"`
	Currency    string          `db:"currency"`
	EventDate   *time.Time      `db:"event_date"`
	Metadata    Metadata        `db:"metadata"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	Categories []*Category `db:"-"` // Loaded separately, ordered by SortOrder
}

// Category is a budget bucket inside a plan.
type Category struct {
	ID              uuid.UUID       `db:"id"`
	PlanID          uuid.UUID       `db:"plan_id"`
	Name            string          `db:"name"`
	Description     *string         `db:"description"`
	Color           string          `db:"color"`
	Icon            *string         `db:"icon"`
	SortOrder       int             `db:"sort_order"`
	AllocatedBudget decimal.Decimal `db:"allocated_budget"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	Items []*Item `db:"-"` // Priority desc, then newest first
}

// Item is a single budget line. ActualCost is nil until known, which is not
// the same as a known cost of zero.
type Item struct {
	ID            uuid.UUID           `db:"id"`
	CategoryID    uuid.UUID           `db:"category_id"`
	Name          string              `db:"name"`
	Description   *string             `db:"description"`
	Status        ItemStatus          `db:"status"`
	EstimatedCost decimal.Decimal     `db:"estimated_cost"`
	ActualCost    decimal.NullDecimal `db:"actual_cost"`
	PaidAmount    decimal.Decimal     `db:"paid_amount"`
	Priority      int                 `db:"priority"`
	DueDate       *time.Time          `db:"due_date"`
	VendorID      *uuid.UUID          `db:"vendor_id"`
	VendorLink    *string             `db:"vendor_link"`
	Notes         *string             `db:"notes"`
	Attachments   StringList          `db:"attachments"`
	CreatedAt     time.Time           `db:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at"`

	Vendor *Vendor `db:"-"` // Only populated on item detail
}

// Vendor is shared catalog data. Items reference vendors without owning them.
type Vendor struct {
	ID            uuid.UUID           `db:"id"`
	Name          string              `db:"name"`
	Website       *string             `db:"website"`
	AffiliateLink *string             `db:"affiliate_link"`
	CategoryTags  StringList          `db:"category_tags"`
	Location      *string             `db:"location"`
	Rating        decimal.NullDecimal `db:"rating"`
	LogoURL       *string             `db:"logo_url"`
	IsVerified    bool                `db:"is_verified"`
	CreatedAt     time.Time           `db:"created_at"`
}

// AllItems flattens the items of every category in the plan.
func (p *Plan) AllItems() []*Item {
	var items []*Item
	for _, c := range p.Categories {
		items = append(items, c.Items...)
	}

	return items
}
