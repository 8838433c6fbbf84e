package item

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/http/resource"
	"github.com/daileit/wedding-planner/internal/http/respond"
	"github.com/daileit/wedding-planner/internal/item"
)

type Handler struct {
	svc *item.Service
}

func NewHandler(svc *item.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type itemDetailResponse struct {
	resource.Item
	Category resource.Category `json:"category"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, itemDetailResponse{
		Item:     resource.NewItem(d.Item),
		Category: resource.NewCategory(d.Category),
	})
}

// updateItemRequest separates an absent actual_cost from an explicit null,
// which marks the cost as unknown again.
type updateItemRequest struct {
	Name          *string                          `json:"name"`
	Description   domain.Nullable[string]          `json:"description"`
	Status        *domain.ItemStatus               `json:"status"`
	EstimatedCost *decimal.Decimal                 `json:"estimated_cost"`
	ActualCost    domain.Nullable[decimal.Decimal] `json:"actual_cost"`
	PaidAmount    *decimal.Decimal                 `json:"paid_amount"`
	Priority      *int                             `json:"priority"`
	DueDate       domain.Nullable[time.Time]       `json:"due_date"`
	VendorID      domain.Nullable[uuid.UUID]       `json:"vendor_id"`
	VendorLink    domain.Nullable[string]          `json:"vendor_link"`
	Notes         domain.Nullable[string]          `json:"notes"`
	Attachments   []string                         `json:"attachments"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateItemRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	it, err := h.svc.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, item.UpdateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewItem(it))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
