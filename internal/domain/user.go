package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns plans. Guests have no password and can be
// upgraded in place, keeping their id.
type User struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	Name         *string    `db:"name"`
	Image        *string    `db:"image"`
	PasswordHash *string    `db:"password_hash"`
	IsGuest      bool       `db:"is_guest"`
	Role         Role       `db:"role"`
	Status       UserStatus `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// HasPassword reports whether the user can log in with credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// NormalizeEmail lowercases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
