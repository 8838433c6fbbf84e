// Package export writes a plan budget as a spreadsheet-friendly CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/budget"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/plan"
)

const ContentType = "text/csv; charset=utf-8"

var header = []string{
	"Category", "Item", "Status", "Priority", "Estimated Cost", "Actual Cost",
	"Paid Amount", "Due Date", "Vendor Link", "Notes",
}

// PlanLoader loads a plan the principal owns, with categories and items.
type PlanLoader interface {
	Get(ctx context.Context, principal, id uuid.UUID) (*plan.Detail, error)
}

type Service struct {
	plans PlanLoader
}

func NewService(plans PlanLoader) *Service {
	return &Service{plans: plans}
}

// Export writes the plan to w and returns the plan it wrote, so callers can
// name the download before the first byte goes out.
func (s *Service) Export(ctx context.Context, principal, planID uuid.UUID, w io.Writer) (*domain.Plan, error) {
	d, err := s.plans.Get(ctx, principal, planID)
	if err != nil {
		return nil, err
	}

	if err := Write(w, d.Plan); err != nil {
		return nil, fmt.Errorf("writing export: %w", err)
	}

	return d.Plan, nil
}

// Write emits one row per item, a subtotal row after each category and the
// plan totals at the end. Categories and items keep the order they were
// loaded in.
func Write(w io.Writer, p *domain.Plan) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range p.Categories {
		for _, it := range c.Items {
			if err := cw.Write(itemRow(c, it)); err != nil {
				return err
			}
		}

		subtotal := []string{
			c.Name, "Subtotal", "", "",
			money(budget.SumEstimated(c.Items)),
			money(budget.SumActual(c.Items)),
			money(budget.SumPaid(c.Items)),
			"", "", "",
		}
		if err := cw.Write(subtotal); err != nil {
			return err
		}
	}

	ov := budget.PlanOverview(p)

	footer := [][]string{
		{"", "Total", "", "", money(ov.TotalEstimated), money(ov.TotalActual), money(ov.TotalPaid), "", "", ""},
		{"", "Budget", "", "", money(ov.TotalBudget), "", "", "", "", p.Currency},
		{"", "Remaining", "", "", "", money(ov.Remaining), "", "", "", ""},
	}
	if err := cw.WriteAll(footer); err != nil {
		return err
	}

	cw.Flush()

	return cw.Error()
}

func itemRow(c *domain.Category, it *domain.Item) []string {
	actual := ""
	if it.ActualCost.Valid {
		actual = money(it.ActualCost.Decimal)
	}

	due := ""
	if it.DueDate != nil {
		due = it.DueDate.Format("2006-01-02")
	}

	return []string{
		c.Name,
		it.Name,
		string(it.Status),
		strconv.Itoa(it.Priority),
		money(it.EstimatedCost),
		actual,
		money(it.PaidAmount),
		due,
		deref(it.VendorLink),
		deref(it.Notes),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// Filename builds a download name from the plan title, e.g.
// "summer-wedding-budget.csv".
func Filename(p *domain.Plan) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}

		return '-'
	}, p.Title)

	slug = strings.Trim(collapseDashes(slug), "-")
	if slug == "" {
		slug = "plan"
	}

	return slug + "-budget.csv"
}

func collapseDashes(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return s
}
