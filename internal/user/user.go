package user

import (
	"fmt"

	"github.com/daileit/wedding-planner/internal/domain"
)

const (
	GuestName        = "Guest User"
	GuestEmailDomain = "guest.wedding-planner.local"
)

// ErrInvalidCredentials is the only error a failed login produces. It does
// not say whether the email, the password or the account kind was wrong.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)

type RegisterParams struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,bcryptlen"`
}

type LoginParams struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ProfileParams is a partial update of the caller's own profile.
type ProfileParams struct {
	Name  *string                 `validate:"omitempty,min=2,max=100"`
	Image domain.Nullable[string] `validate:"omitempty,url"`
}

func (p ProfileParams) IsEmpty() bool {
	return p.Name == nil && !p.Image.Set
}

// Credentials are written when an account gains a password.
type Credentials struct {
	Name         string
	Email        string
	PasswordHash string
}
