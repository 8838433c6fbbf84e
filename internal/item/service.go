package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
	"github.com/daileit/wedding-planner/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=item
type Repository interface {
	// ListItems orders by priority descending, then newest first.
	ListItems(ctx context.Context, categoryID uuid.UUID) ([]*domain.Item, error)
	// GetItem loads the item with its vendor, when it has one.
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	CreateItem(ctx context.Context, it *domain.Item) error
	UpdateItem(ctx context.Context, id uuid.UUID, params UpdateParams) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	VendorExists(ctx context.Context, id uuid.UUID) (bool, error)

	BeginImport(ctx context.Context, categoryID uuid.UUID) (ImportTx, error)
}

type ImportTx interface {
	CreateItems(ctx context.Context, items []*domain.Item) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	guard *ownership.Guard
}

func NewService(repo Repository, guard *ownership.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

func (s *Service) List(ctx context.Context, principal, categoryID uuid.UUID) ([]*domain.Item, error) {
	if _, err := s.guard.AuthorizeCategory(ctx, principal, categoryID); err != nil {
		return nil, err
	}

	return s.repo.ListItems(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, principal, id uuid.UUID) (*Detail, error) {
	categoryID, _, err := s.guard.AuthorizeItem(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("loading parent category: %w", err)
	}

	return &Detail{Item: it, Category: c}, nil
}

func (s *Service) Create(ctx context.Context, principal uuid.UUID, params CreateParams) (*domain.Item, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if _, err := s.guard.AuthorizeCategory(ctx, principal, params.CategoryID); err != nil {
		return nil, err
	}

	if err := s.checkVendor(ctx, "vendor_id", params.VendorID); err != nil {
		return nil, err
	}

	it := newItem(params)
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// Update applies a partial update. Empty params write nothing and return
// the stored item.
func (s *Service) Update(ctx context.Context, principal, id uuid.UUID, params UpdateParams) (*domain.Item, error) {
	if _, _, err := s.guard.AuthorizeItem(ctx, principal, id); err != nil {
		return nil, err
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if params.IsEmpty() {
		return s.repo.GetItem(ctx, id)
	}

	if err := s.checkVendor(ctx, "vendor_id", params.VendorID.Ptr()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, id, params); err != nil {
		return nil, err
	}

	return s.repo.GetItem(ctx, id)
}

func (s *Service) Delete(ctx context.Context, principal, id uuid.UUID) error {
	if _, _, err := s.guard.AuthorizeItem(ctx, principal, id); err != nil {
		return err
	}

	return s.repo.DeleteItem(ctx, id)
}

// Import creates every item in one transaction, or none of them. The
// category id of each params entry is overridden by categoryID.
func (s *Service) Import(ctx context.Context, principal, categoryID uuid.UUID, params []CreateParams) ([]*domain.Item, error) {
	if _, err := s.guard.AuthorizeCategory(ctx, principal, categoryID); err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return []*domain.Item{}, nil
	}

	verr := &domain.ValidationError{}
	items := make([]*domain.Item, 0, len(params))

	for i, p := range params {
		p.CategoryID = categoryID

		if err := validate.Struct(p); err != nil {
			if !prefixFields(verr, err, fmt.Sprintf("items[%d].", i)) {
				return nil, err
			}

			continue
		}

		if err := s.checkVendor(ctx, fmt.Sprintf("items[%d].vendor_id", i), p.VendorID); err != nil {
			if !prefixFields(verr, err, "") {
				return nil, err
			}

			continue
		}

		items = append(items, newItem(p))
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	itx, err := s.repo.BeginImport(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create items: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return items, nil
}

func (s *Service) checkVendor(ctx context.Context, field string, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	ok, err := s.repo.VendorExists(ctx, *id)
	if err != nil {
		return fmt.Errorf("checking vendor: %w", err)
	}

	if !ok {
		return domain.NewValidationError(field, "vendor does not exist")
	}

	return nil
}

// prefixFields merges the field errors of err into dst. It reports false when
// err is not a validation error.
func prefixFields(dst *domain.ValidationError, err error, prefix string) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	for _, f := range verr.Fields {
		dst.Fields = append(dst.Fields, domain.FieldError{Field: prefix + f.Field, Reason: f.Reason})
	}

	return true
}

func newItem(p CreateParams) *domain.Item {
	it := &domain.Item{
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Status,
		EstimatedCost: decimal.Zero,
		PaidAmount:    decimal.Zero,
		DueDate:       p.DueDate,
		VendorID:      p.VendorID,
		VendorLink:    p.VendorLink,
		Notes:         p.Notes,
		Attachments:   domain.StringList(p.Attachments),
	}

	if it.Status == "" {
		it.Status = domain.ItemStatusPending
	}

	if p.EstimatedCost != nil {
		it.EstimatedCost = *p.EstimatedCost
	}

	if p.ActualCost != nil {
		it.ActualCost = decimal.NewNullDecimal(*p.ActualCost)
	}

	if p.PaidAmount != nil {
		it.PaidAmount = *p.PaidAmount
	}

	if p.Priority != nil {
		it.Priority = *p.Priority
	}

	if it.Attachments == nil {
		it.Attachments = domain.StringList{}
	}

	return it
}
