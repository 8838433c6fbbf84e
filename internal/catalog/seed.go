package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/validate"
)

var maxRating = decimal.NewFromInt(5)

// Seed validates every entry before writing any of them, then upserts them
// in one transaction. It returns the number of vendors written.
func (s *Service) Seed(ctx context.Context, params []SeedParams) (int, error) {
	vendors := make([]*domain.Vendor, 0, len(params))

	for i, p := range params {
		v, err := fromSeed(p)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}

		vendors = append(vendors, v)
	}

	if len(vendors) == 0 {
		return 0, nil
	}

	stx, err := s.repo.BeginSeed(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer stx.Rollback()

	for _, v := range vendors {
		if err := stx.UpsertVendor(ctx, v); err != nil {
			return 0, fmt.Errorf("seeding %q: %w", v.Name, err)
		}
	}

	if err := stx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}

	return len(vendors), nil
}

func fromSeed(p SeedParams) (*domain.Vendor, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	v := &domain.Vendor{
		Name:          strings.TrimSpace(p.Name),
		Website:       p.Website,
		AffiliateLink: p.AffiliateLink,
		Location:      p.Location,
		LogoURL:       p.LogoURL,
		IsVerified:    p.IsVerified,
		CategoryTags:  domain.StringList{},
	}

	for _, tag := range p.CategoryTags {
		v.CategoryTags = append(v.CategoryTags, strings.ToLower(strings.TrimSpace(tag)))
	}

	if p.Rating != nil {
		r, err := decimal.NewFromString(*p.Rating)
		if err != nil || r.IsNegative() || r.GreaterThan(maxRating) {
			return nil, domain.NewValidationError("rating", "must be between 0 and 5")
		}

		v.Rating = decimal.NewNullDecimal(r)
	}

	return v, nil
}
