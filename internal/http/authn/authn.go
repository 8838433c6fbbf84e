// Package authn turns bearer tokens into request principals.
package authn

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/http/respond"
)

type TokenParser interface {
	Parse(token string) (uuid.UUID, *auth.Claims, error)
}

// Authenticate attaches the principal of a bearer token to the request.
// Requests without an Authorization header pass through anonymous; a header
// carrying a bad token is rejected.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				respond.Error(w, r, domain.ErrUnauthorized)
				return
			}

			id, _, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				respond.Error(w, r, domain.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), id)))
		})
	}
}

// Require rejects anonymous requests.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.PrincipalFrom(r.Context()) == uuid.Nil {
			respond.Error(w, r, domain.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
