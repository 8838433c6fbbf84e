package plan

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/export"
	"github.com/daileit/wedding-planner/internal/http/resource"
	"github.com/daileit/wedding-planner/internal/http/respond"
	"github.com/daileit/wedding-planner/internal/plan"
)

type Handler struct {
	plans      *plan.Service
	categories *category.Service
	exporter   *export.Service
	now        func() time.Time
}

func NewHandler(plans *plan.Service, categories *category.Service, exporter *export.Service) *Handler {
	return &Handler{plans: plans, categories: categories, exporter: exporter, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/overview", h.overview)
	r.Get("/{id}/export", h.export)
	r.Get("/{id}/categories", h.listCategories)
	r.Post("/{id}/categories", h.createCategory)
	r.Put("/{id}/categories/order", h.reorderCategories)
}

// Dashboard serves the cross-plan statistics of the caller.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.plans.Dashboard(r.Context(), auth.PrincipalFrom(r.Context()), h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewDashboard(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.plans.List(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryList(summaries))
}

type createPlanRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Type        domain.PlanType   `json:"type"`
	Status      domain.PlanStatus `json:"status"`
	TotalBudget *decimal.Decimal  `json:"total_budget"`
	Currency    string            `json:"currency"`
	EventDate   *time.Time        `json:"event_date"`
	Metadata    domain.Metadata   `json:"metadata"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.plans.Create(r.Context(), auth.PrincipalFrom(r.Context()), plan.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		TotalBudget: req.TotalBudget,
		Currency:    req.Currency,
		EventDate:   req.EventDate,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.NewPlan(p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.plans.Get(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDetail(d))
}

type updatePlanRequest struct {
	Title       *string                    `json:"title"`
	Description domain.Nullable[string]    `json:"description"`
	Type        *domain.PlanType           `json:"type"`
	Status      *domain.PlanStatus         `json:"status"`
	TotalBudget *decimal.Decimal           `json:"total_budget"`
	Currency    *string                    `json:"currency"`
	EventDate   domain.Nullable[time.Time] `json:"event_date"`
	Metadata    domain.Metadata            `json:"metadata"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updatePlanRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.plans.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, plan.UpdateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewPlan(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.plans.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	o, err := h.plans.Overview(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewPlanOverview(o.Overview, o.Categories))
}

// export buffers the CSV so a failure can still produce a JSON error.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	p, err := h.exporter.Export(r.Context(), auth.PrincipalFrom(r.Context()), id, &buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(p)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	summaries, err := h.categories.List(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryList(summaries))
}

type createCategoryRequest struct {
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	Color           string           `json:"color"`
	Icon            *string          `json:"icon"`
	AllocatedBudget *decimal.Decimal `json:"allocated_budget"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createCategoryRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.categories.Create(r.Context(), auth.PrincipalFrom(r.Context()), category.CreateParams{
		PlanID:          id,
		Name:            req.Name,
		Description:     req.Description,
		Color:           req.Color,
		Icon:            req.Icon,
		AllocatedBudget: req.AllocatedBudget,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.NewCategory(c))
}

type reorderRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

func (h *Handler) reorderCategories(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req reorderRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	summaries, err := h.categories.Reorder(r.Context(), auth.PrincipalFrom(r.Context()), id, req.CategoryIDs)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryList(summaries))
}
