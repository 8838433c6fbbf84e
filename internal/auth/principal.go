package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithPrincipal stores the authenticated user id on the request context.
func WithPrincipal(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// PrincipalFrom returns the user id of the request, or uuid.Nil when the
// request is anonymous.
func PrincipalFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(contextKey{}).(uuid.UUID)
	return id
}
