package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daileit/wedding-planner/internal/domain"
)

// ErrNotOwner is never surfaced to clients on its own. It always wraps
// domain.ErrNotFound so a foreign record looks exactly like a missing one.
var ErrNotOwner = errors.New("record belongs to another user")

// CategoryRef is the parent chain of a category.
type CategoryRef struct {
	PlanID  uuid.UUID `db:"plan_id"`
	OwnerID uuid.UUID `db:"owner_id"`
}

// ItemRef is the parent chain of an item.
type ItemRef struct {
	CategoryID uuid.UUID `db:"category_id"`
	PlanID     uuid.UUID `db:"plan_id"`
	OwnerID    uuid.UUID `db:"owner_id"`
}

// Resolver looks up the owner of a record by walking its parent chain.
// Implementations return domain.ErrNotFound when the record does not exist.
//
//go:generate mockgen -source=guard.go -destination=resolver_mock.go -package=ownership
type Resolver interface {
	PlanOwner(ctx context.Context, planID uuid.UUID) (uuid.UUID, error)
	CategoryOwner(ctx context.Context, categoryID uuid.UUID) (CategoryRef, error)
	ItemOwner(ctx context.Context, itemID uuid.UUID) (ItemRef, error)
}

type Guard struct {
	resolver Resolver
	denials  *prometheus.CounterVec
}

// NewGuard registers the denial counter on reg when it is non-nil.
func NewGuard(resolver Resolver, reg prometheus.Registerer) *Guard {
	denials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_authorization_denials_total",
		Help: "Ownership checks that did not grant access, by record kind and reason.",
	}, []string{"kind", "reason"})

	if reg != nil {
		reg.MustRegister(denials)
	}

	return &Guard{resolver: resolver, denials: denials}
}

func (g *Guard) AuthorizePlan(ctx context.Context, principal, planID uuid.UUID) error {
	if principal == uuid.Nil {
		g.deny(ctx, "plan", "anonymous", planID)
		return domain.ErrUnauthorized
	}

	owner, err := g.resolver.PlanOwner(ctx, planID)
	if err != nil {
		return g.lookupFailed(ctx, "plan", planID, err)
	}

	return g.check(ctx, "plan", principal, owner, planID)
}

// AuthorizeCategory returns the plan the category belongs to.
func (g *Guard) AuthorizeCategory(ctx context.Context, principal, categoryID uuid.UUID) (uuid.UUID, error) {
	if principal == uuid.Nil {
		g.deny(ctx, "category", "anonymous", categoryID)
		return uuid.Nil, domain.ErrUnauthorized
	}

	ref, err := g.resolver.CategoryOwner(ctx, categoryID)
	if err != nil {
		return uuid.Nil, g.lookupFailed(ctx, "category", categoryID, err)
	}

	if err := g.check(ctx, "category", principal, ref.OwnerID, categoryID); err != nil {
		return uuid.Nil, err
	}

	return ref.PlanID, nil
}

// AuthorizeItem returns the category and plan the item belongs to.
func (g *Guard) AuthorizeItem(ctx context.Context, principal, itemID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	if principal == uuid.Nil {
		g.deny(ctx, "item", "anonymous", itemID)
		return uuid.Nil, uuid.Nil, domain.ErrUnauthorized
	}

	ref, err := g.resolver.ItemOwner(ctx, itemID)
	if err != nil {
		return uuid.Nil, uuid.Nil, g.lookupFailed(ctx, "item", itemID, err)
	}

	if err := g.check(ctx, "item", principal, ref.OwnerID, itemID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return ref.CategoryID, ref.PlanID, nil
}

func (g *Guard) check(ctx context.Context, kind string, principal, owner, id uuid.UUID) error {
	if owner != principal {
		g.deny(ctx, kind, "foreign", id)
		return fmt.Errorf("%s %s: %w: %w", kind, id, domain.ErrNotFound, ErrNotOwner)
	}

	return nil
}

func (g *Guard) lookupFailed(ctx context.Context, kind string, id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		g.deny(ctx, kind, "missing", id)
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	return fmt.Errorf("resolving %s owner: %w", kind, err)
}

func (g *Guard) deny(ctx context.Context, kind, reason string, id uuid.UUID) {
	g.denials.WithLabelValues(kind, reason).Inc()
	slog.DebugContext(ctx, "authorization denied", "kind", kind, "reason", reason, "id", id)
}
