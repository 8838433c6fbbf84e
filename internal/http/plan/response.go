package plan

import (
	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/http/resource"
	"github.com/daileit/wedding-planner/internal/plan"
)

func toSummaryList(summaries []plan.Summary) []resource.PlanSummary {
	resp := make([]resource.PlanSummary, len(summaries))
	for i, s := range summaries {
		resp[i] = resource.PlanSummary{Plan: resource.NewPlan(s.Plan), Totals: resource.NewTotals(s.Totals)}
	}

	return resp
}

func toDetail(d *plan.Detail) resource.PlanDetail {
	resp := resource.PlanDetail{
		Plan:       resource.NewPlan(d.Plan),
		Categories: make([]resource.CategoryDetail, len(d.Plan.Categories)),
		Totals:     resource.NewTotals(d.Totals),
		Overview:   resource.NewOverview(d.Overview),
	}

	for i, c := range d.Plan.Categories {
		resp.Categories[i] = resource.NewCategoryDetail(c, d.CategoryTotals[c.ID])
	}

	return resp
}

func toCategoryList(summaries []category.Summary) []resource.CategoryDetail {
	resp := make([]resource.CategoryDetail, len(summaries))
	for i, s := range summaries {
		resp[i] = resource.NewCategoryDetail(s.Category, s.Totals)
	}

	return resp
}
