package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daileit/wedding-planner/internal/catalog"
	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
)

var vendorColumns = []string{
	"id", "name", "website", "affiliate_link", "category_tags", "location",
	"rating", "logo_url", "is_verified", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SearchVendors(ctx context.Context, filter catalog.Filter) ([]*domain.Vendor, error) {
	b := psql.Select(vendorColumns...).From("vendors")

	if filter.Query != "" {
		b = b.Where(sq.ILike{"name": "%" + filter.Query + "%"})
	}

	if filter.Tag != "" {
		b = b.Where(sq.Expr("? = ANY(category_tags)", filter.Tag))
	}

	b = b.OrderBy("is_verified DESC", "rating DESC NULLS LAST", "name ASC")

	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building vendor search: %w", err)
	}

	vendors := []*domain.Vendor{}
	if err := s.db.SelectContext(ctx, &vendors, query, args...); err != nil {
		return nil, fmt.Errorf("searching vendors: %w", err)
	}

	return vendors, nil
}

func (s *Store) GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	query, args, err := psql.Select(vendorColumns...).From("vendors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building vendor query: %w", err)
	}

	var v domain.Vendor
	if err := s.db.GetContext(ctx, &v, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting vendor: %w", err)
	}

	return &v, nil
}

type seedTx struct {
	tx *sqlx.Tx
}

func (s *Store) BeginSeed(ctx context.Context) (catalog.SeedTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seed tx: %w", err)
	}

	return &seedTx{tx: tx}, nil
}

func (stx *seedTx) Commit() error   { return stx.tx.Commit() }
func (stx *seedTx) Rollback() error { return stx.tx.Rollback() }

func (stx *seedTx) UpsertVendor(ctx context.Context, v *domain.Vendor) error {
	return upsertVendor(ctx, stx.tx, v)
}

func upsertVendor(ctx context.Context, q database.DBTX, v *domain.Vendor) error {
	query := `
		INSERT INTO vendors (name, website, affiliate_link, category_tags, location, rating, logo_url, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (LOWER(name)) DO UPDATE SET
			website = EXCLUDED.website,
			affiliate_link = EXCLUDED.affiliate_link,
			category_tags = EXCLUDED.category_tags,
			location = EXCLUDED.location,
			rating = EXCLUDED.rating,
			logo_url = EXCLUDED.logo_url,
			is_verified = EXCLUDED.is_verified
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		v.Name,
		v.Website,
		v.AffiliateLink,
		v.CategoryTags,
		v.Location,
		v.Rating,
		v.LogoURL,
		v.IsVerified,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting vendor: %w", err)
	}

	return nil
}
