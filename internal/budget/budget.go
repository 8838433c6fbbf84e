// Package budget derives totals from plans, categories and items that have
// already been loaded. Nothing here touches storage and all money math is
// exact decimal arithmetic.
package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived figures shown next to a category or plan.
type Totals struct {
	TotalEstimated  decimal.Decimal
	TotalActual     decimal.Decimal
	CategoriesCount int
	ItemsCount      int
}

// Overview is the budget summary of a plan.
type Overview struct {
	TotalBudget    decimal.Decimal
	TotalEstimated decimal.Decimal
	TotalActual    decimal.Decimal
	TotalPaid      decimal.Decimal
	Remaining      decimal.Decimal // Budget minus actual; negative when overspent
	// RemainingEstimated is the budget minus the estimated total, useful
	// before any actual costs are recorded.
	RemainingEstimated decimal.Decimal
	PercentageUsed     int64
	PercentagePaid     int64
	Currency           string
}

// CategoryStatus compares what a category was allocated with what it costs.
type CategoryStatus struct {
	CategoryID        uuid.UUID
	CategoryName      string
	Color             string
	Allocated         decimal.Decimal
	Estimated         decimal.Decimal
	Actual            decimal.Decimal
	PercentageOfTotal int64 // Share of the plan budget allocated here
}

func SumEstimated(items []*domain.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.EstimatedCost)
	}

	return sum
}

// SumActual ignores items whose actual cost is unknown. It never falls back
// to the estimate.
func SumActual(items []*domain.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		if it.ActualCost.Valid {
			sum = sum.Add(it.ActualCost.Decimal)
		}
	}

	return sum
}

func SumPaid(items []*domain.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.PaidAmount)
	}

	return sum
}

// CategoryTotals uses only the category's own items.
func CategoryTotals(c *domain.Category) Totals {
	return Totals{
		TotalEstimated: SumEstimated(c.Items),
		TotalActual:    SumActual(c.Items),
		ItemsCount:     len(c.Items),
	}
}

// PlanTotals flattens every item of every category before summing.
func PlanTotals(p *domain.Plan) Totals {
	items := p.AllItems()

	return Totals{
		TotalEstimated:  SumEstimated(items),
		TotalActual:     SumActual(items),
		CategoriesCount: len(p.Categories),
		ItemsCount:      len(items),
	}
}

// PlanOverview computes remaining budget and usage percentages. A zero budget
// yields zero percentages rather than a division error.
func PlanOverview(p *domain.Plan) Overview {
	items := p.AllItems()

	estimated := SumEstimated(items)
	actual := SumActual(items)
	paid := SumPaid(items)

	return Overview{
		TotalBudget:        p.TotalBudget,
		TotalEstimated:     estimated,
		TotalActual:        actual,
		TotalPaid:          paid,
		Remaining:          p.TotalBudget.Sub(actual),
		RemainingEstimated: p.TotalBudget.Sub(estimated),
		PercentageUsed:     Percentage(actual, p.TotalBudget),
		PercentagePaid:     Percentage(paid, p.TotalBudget),
		Currency:           p.Currency,
	}
}

// CategoryBreakdown returns one status per category in display order.
func CategoryBreakdown(p *domain.Plan) []CategoryStatus {
	out := make([]CategoryStatus, 0, len(p.Categories))

	for _, c := range p.Categories {
		out = append(out, CategoryStatus{
			CategoryID:        c.ID,
			CategoryName:      c.Name,
			Color:             c.Color,
			Allocated:         c.AllocatedBudget,
			Estimated:         SumEstimated(c.Items),
			Actual:            SumActual(c.Items),
			PercentageOfTotal: Percentage(c.AllocatedBudget, p.TotalBudget),
		})
	}

	return out
}

// Percentage returns round(part / total * 100), half away from zero, or 0
// when total is zero.
func Percentage(part, total decimal.Decimal) int64 {
	if total.IsZero() {
		return 0
	}

	return part.Mul(hundred).Div(total).Round(0).IntPart()
}
