package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Filter struct {
	Query string // Case-insensitive substring of the name
	Tag   string
	Limit int
}

// SeedParams describes one catalog entry supplied by an operator.
type SeedParams struct {
	Name          string   `validate:"required,max=200"`
	Website       *string  `validate:"omitempty,url"`
	AffiliateLink *string  `validate:"omitempty,url"`
	CategoryTags  []string `validate:"omitempty,dive,min=1,max=50"`
	Location      *string  `validate:"omitempty,max=200"`
	Rating        *string  `validate:"omitempty,numeric"`
	LogoURL       *string  `validate:"omitempty,url"`
	IsVerified    bool
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	SearchVendors(ctx context.Context, filter Filter) ([]*domain.Vendor, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)

	BeginSeed(ctx context.Context) (SeedTx, error)
}

type SeedTx interface {
	// UpsertVendor matches existing vendors by case-insensitive name.
	UpsertVendor(ctx context.Context, v *domain.Vendor) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search lists catalog vendors, verified first and then by rating.
func (s *Service) Search(ctx context.Context, filter Filter) ([]*domain.Vendor, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))

	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}

	return s.repo.SearchVendors(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}
