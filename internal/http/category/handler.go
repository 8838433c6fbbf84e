package category

import (
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/http/resource"
	"github.com/daileit/wedding-planner/internal/http/respond"
	"github.com/daileit/wedding-planner/internal/importer"
	"github.com/daileit/wedding-planner/internal/item"
)

// maxUploadBytes caps item spreadsheets.
const maxUploadBytes = 5 << 20

type Handler struct {
	categories *category.Service
	items      *item.Service
	importer   *importer.Service
}

func NewHandler(categories *category.Service, items *item.Service, importSvc *importer.Service) *Handler {
	return &Handler{categories: categories, items: items, importer: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/items", h.listItems)
	r.Post("/{id}/items", h.createItem)
	r.Post("/{id}/items/import", h.importItems)
}

type updateCategoryRequest struct {
	Name            *string                 `json:"name"`
	Description     domain.Nullable[string] `json:"description"`
	Color           *string                 `json:"color"`
	Icon            domain.Nullable[string] `json:"icon"`
	AllocatedBudget *decimal.Decimal        `json:"allocated_budget"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateCategoryRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.categories.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, category.UpdateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewCategory(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items, err := h.items.List(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.NewItems(items))
}

type createItemRequest struct {
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	Status        domain.ItemStatus `json:"status"`
	EstimatedCost *decimal.Decimal  `json:"estimated_cost"`
	ActualCost    *decimal.Decimal  `json:"actual_cost"`
	PaidAmount    *decimal.Decimal  `json:"paid_amount"`
	Priority      *int              `json:"priority"`
	DueDate       *time.Time        `json:"due_date"`
	VendorID      *uuid.UUID        `json:"vendor_id"`
	VendorLink    *string           `json:"vendor_link"`
	Notes         *string           `json:"notes"`
	Attachments   []string          `json:"attachments"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createItemRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	it, err := h.items.Create(r.Context(), auth.PrincipalFrom(r.Context()), item.CreateParams{
		CategoryID:    id,
		Name:          req.Name,
		Description:   req.Description,
		Status:        req.Status,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		PaidAmount:    req.PaidAmount,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		VendorID:      req.VendorID,
		VendorLink:    req.VendorLink,
		Notes:         req.Notes,
		Attachments:   req.Attachments,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.NewItem(it))
}

type importResponse struct {
	Profile  string          `json:"profile"`
	Charset  string          `json:"charset"`
	Imported int             `json:"imported"`
	Items    []resource.Item `json:"items"`
}

// importItems accepts the spreadsheet either as a multipart "file" field or
// as the raw request body. The optional profile query parameter skips header
// detection.
func (h *Handler) importItems(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	body, closeBody, err := upload(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer closeBody()

	parsed, err := h.importer.Parse(body, r.URL.Query().Get("profile"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items, err := h.items.Import(r.Context(), auth.PrincipalFrom(r.Context()), id, parsed.Items)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Profile:  parsed.Profile,
		Charset:  parsed.Charset,
		Imported: len(items),
		Items:    resource.NewItems(items),
	})
}

func upload(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, domain.NewValidationError("file", "is required")
	}

	return f, func() { f.Close() }, nil
}
