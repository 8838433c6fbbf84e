package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
)

// Store resolves owners with one joined query per lookup.
type Store struct {
	db database.DBTX
}

func New(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) PlanOwner(ctx context.Context, planID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := s.db.GetContext(ctx, &owner, `SELECT user_id FROM plans WHERE id = $1`, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("getting plan owner: %w", err)
	}

	return owner, nil
}

func (s *Store) CategoryOwner(ctx context.Context, categoryID uuid.UUID) (ownership.CategoryRef, error) {
	query := `
		SELECT c.plan_id, p.user_id AS owner_id
		FROM categories c
		JOIN plans p ON p.id = c.plan_id
		WHERE c.id = $1`

	var ref ownership.CategoryRef
	if err := s.db.GetContext(ctx, &ref, query, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ownership.CategoryRef{}, domain.ErrNotFound
		}

		return ownership.CategoryRef{}, fmt.Errorf("getting category owner: %w", err)
	}

	return ref, nil
}

func (s *Store) ItemOwner(ctx context.Context, itemID uuid.UUID) (ownership.ItemRef, error) {
	query := `
		SELECT i.category_id, c.plan_id, p.user_id AS owner_id
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN plans p ON p.id = c.plan_id
		WHERE i.id = $1`

	var ref ownership.ItemRef
	if err := s.db.GetContext(ctx, &ref, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ownership.ItemRef{}, domain.ErrNotFound
		}

		return ownership.ItemRef{}, fmt.Errorf("getting item owner: %w", err)
	}

	return ref, nil
}
