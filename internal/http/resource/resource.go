// Package resource holds the JSON shapes of the API. Money is always a
// decimal string.
package resource

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
)

type User struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	Name      *string           `json:"name"`
	Image     *string           `json:"image"`
	IsGuest   bool              `json:"is_guest"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewUser(u *domain.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		IsGuest:   u.IsGuest,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type Totals struct {
	TotalEstimated  decimal.Decimal `json:"total_estimated"`
	TotalActual     decimal.Decimal `json:"total_actual"`
	CategoriesCount int             `json:"categories_count"`
	ItemsCount      int             `json:"items_count"`
}

func NewTotals(t budget.Totals) Totals {
	return Totals(t)
}

type Plan struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Type        domain.PlanType   `json:"type"`
	Status      domain.PlanStatus `json:"status"`
	TotalBudget decimal.Decimal   `json:"total_budget"`
	Currency    string            `json:"currency"`
	EventDate   *time.Time        `json:"event_date"`
	Metadata    domain.Metadata   `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewPlan(p *domain.Plan) Plan {
	return Plan{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Status:      p.Status,
		TotalBudget: p.TotalBudget,
		Currency:    p.Currency,
		EventDate:   p.EventDate,
		Metadata:    p.Metadata,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PlanSummary is a plan row in a listing.
type PlanSummary struct {
	Plan
	Totals Totals `json:"totals"`
}

type Overview struct {
	TotalBudget        decimal.Decimal `json:"total_budget"`
	TotalEstimated     decimal.Decimal `json:"total_estimated"`
	TotalActual        decimal.Decimal `json:"total_actual"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	Remaining          decimal.Decimal `json:"remaining"`
	RemainingEstimated decimal.Decimal `json:"remaining_estimated"`
	PercentageUsed     int64           `json:"percentage_used"`
	PercentagePaid     int64           `json:"percentage_paid"`
	Currency           string          `json:"currency"`
}

func NewOverview(o budget.Overview) Overview {
	return Overview(o)
}

type CategoryStatus struct {
	CategoryID        uuid.UUID       `json:"category_id"`
	CategoryName      string          `json:"category_name"`
	Color             string          `json:"color"`
	Allocated         decimal.Decimal `json:"allocated"`
	Estimated         decimal.Decimal `json:"estimated"`
	Actual            decimal.Decimal `json:"actual"`
	PercentageOfTotal int64           `json:"percentage_of_total"`
}

// PlanOverview is the overview plus the per-category breakdown.
type PlanOverview struct {
	Overview
	Categories []CategoryStatus `json:"categories"`
}

func NewPlanOverview(o budget.Overview, breakdown []budget.CategoryStatus) PlanOverview {
	out := PlanOverview{Overview: NewOverview(o), Categories: make([]CategoryStatus, 0, len(breakdown))}
	for _, c := range breakdown {
		out.Categories = append(out.Categories, CategoryStatus(c))
	}

	return out
}

// PlanDetail is a fully loaded plan.
type PlanDetail struct {
	Plan
	Categories []CategoryDetail `json:"categories"`
	Totals     Totals           `json:"totals"`
	Overview   Overview         `json:"overview"`
}

type Category struct {
	ID              uuid.UUID       `json:"id"`
	PlanID          uuid.UUID       `json:"plan_id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	Color           string          `json:"color"`
	Icon            *string         `json:"icon"`
	SortOrder       int             `json:"sort_order"`
	AllocatedBudget decimal.Decimal `json:"allocated_budget"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewCategory(c *domain.Category) Category {
	return Category{
		ID:              c.ID,
		PlanID:          c.PlanID,
		Name:            c.Name,
		Description:     c.Description,
		Color:           c.Color,
		Icon:            c.Icon,
		SortOrder:       c.SortOrder,
		AllocatedBudget: c.AllocatedBudget,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CategoryDetail is a category with its loaded items and their totals.
type CategoryDetail struct {
	Category
	Items  []Item `json:"items"`
	Totals Totals `json:"totals"`
}

func NewCategoryDetail(c *domain.Category, t budget.Totals) CategoryDetail {
	return CategoryDetail{Category: NewCategory(c), Items: NewItems(c.Items), Totals: NewTotals(t)}
}

type Item struct {
	ID            uuid.UUID         `json:"id"`
	CategoryID    uuid.UUID         `json:"category_id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	Status        domain.ItemStatus `json:"status"`
	EstimatedCost decimal.Decimal   `json:"estimated_cost"`
	ActualCost    *decimal.Decimal  `json:"actual_cost"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	Priority      int               `json:"priority"`
	DueDate       *time.Time        `json:"due_date"`
	VendorID      *uuid.UUID        `json:"vendor_id"`
	VendorLink    *string           `json:"vendor_link"`
	Notes         *string           `json:"notes"`
	Attachments   []string          `json:"attachments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Vendor        *Vendor           `json:"vendor,omitempty"`
}

func NewItem(it *domain.Item) Item {
	out := Item{
		ID:            it.ID,
		CategoryID:    it.CategoryID,
		Name:          it.Name,
		Description:   it.Description,
		Status:        it.Status,
		EstimatedCost: it.EstimatedCost,
		PaidAmount:    it.PaidAmount,
		Priority:      it.Priority,
		DueDate:       it.DueDate,
		VendorID:      it.VendorID,
		VendorLink:    it.VendorLink,
		Notes:         it.Notes,
		Attachments:   []string(it.Attachments),
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}

	if it.ActualCost.Valid {
		out.ActualCost = new(it.ActualCost.Decimal)
	}

	if out.Attachments == nil {
		out.Attachments = []string{}
	}

	if it.Vendor != nil {
		out.Vendor = new(NewVendor(it.Vendor))
	}

	return out
}

func NewItems(items []*domain.Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = NewItem(it)
	}

	return out
}

type Vendor struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Website       *string          `json:"website"`
	AffiliateLink *string          `json:"affiliate_link"`
	CategoryTags  []string         `json:"category_tags"`
	Location      *string          `json:"location"`
	Rating        *decimal.Decimal `json:"rating"`
	LogoURL       *string          `json:"logo_url"`
	IsVerified    bool             `json:"is_verified"`
}

func NewVendor(v *domain.Vendor) Vendor {
	out := Vendor{
		ID:            v.ID,
		Name:          v.Name,
		Website:       v.Website,
		AffiliateLink: v.AffiliateLink,
		CategoryTags:  []string(v.CategoryTags),
		Location:      v.Location,
		LogoURL:       v.LogoURL,
		IsVerified:    v.IsVerified,
	}

	if v.Rating.Valid {
		out.Rating = new(v.Rating.Decimal)
	}

	if out.CategoryTags == nil {
		out.CategoryTags = []string{}
	}

	return out
}

type Dashboard struct {
	TotalPlans        int `json:"total_plans"`
	ActivePlans       int `json:"active_plans"`
	CompletedItems    int `json:"completed_items"`
	PendingItems      int `json:"pending_items"`
	UpcomingDeadlines int `json:"upcoming_deadlines"`
}

func NewDashboard(d budget.Dashboard) Dashboard {
	return Dashboard(d)
}
