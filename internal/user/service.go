package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, params ProfileParams) error

	BeginAccount(ctx context.Context) (AccountTx, error)
}

// AccountTx serializes account changes that read before they write. Both
// lookups lock the row they return.
type AccountTx interface {
	LockUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	LockUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	Promote(ctx context.Context, id uuid.UUID, creds Credentials) (*domain.User, error)
	Commit() error
	Rollback() error
}

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Service struct {
	repo   Repository
	hasher Hasher
}

func NewService(repo Repository, hasher Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Register creates an account. A guest that already holds the email is
// upgraded in place and keeps its id.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = domain.NormalizeEmail(params.Email)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	creds := Credentials{Name: params.Name, Email: params.Email, PasswordHash: hash}

	tx, err := s.repo.BeginAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin register: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.LockUserByEmail(ctx, params.Email)

	var u *domain.User

	switch {
	case errors.Is(err, domain.ErrNotFound):
		u = &domain.User{
			Email:        creds.Email,
			Name:         &creds.Name,
			PasswordHash: &creds.PasswordHash,
			Role:         domain.RoleUser,
			Status:       domain.UserStatusActive,
		}

		if err := tx.CreateUser(ctx, u); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("looking up email: %w", err)
	case existing.IsGuest:
		if u, err = tx.Promote(ctx, existing.ID, creds); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: an account with this email already exists", domain.ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit register: %w", err)
	}

	return u, nil
}

// CreateGuest creates a password-less account under a synthetic address.
func (s *Service) CreateGuest(ctx context.Context) (*domain.User, error) {
	u := &domain.User{
		Email:   fmt.Sprintf("guest_%s@%s", strings.ReplaceAll(uuid.NewString(), "-", ""), GuestEmailDomain),
		Name:    new(GuestName),
		IsGuest: true,
		Role:    domain.RoleUser,
		Status:  domain.UserStatusActive,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating guest: %w", err)
	}

	return u, nil
}

// UpgradeGuest turns the principal's guest account into a full account.
func (s *Service) UpgradeGuest(ctx context.Context, principal uuid.UUID, params RegisterParams) (*domain.User, error) {
	if principal == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	params.Name = strings.TrimSpace(params.Name)
	params.Email = domain.NormalizeEmail(params.Email)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin upgrade: %w", err)
	}
	defer tx.Rollback()

	current, err := tx.LockUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	if !current.IsGuest {
		return nil, domain.NewValidationError("account", "is not a guest account")
	}

	other, err := tx.LockUserByEmail(ctx, params.Email)

	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("looking up email: %w", err)
	case other.ID != current.ID:
		return nil, fmt.Errorf("%w: an account with this email already exists", domain.ErrConflict)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u, err := tx.Promote(ctx, current.ID, Credentials{Name: params.Name, Email: params.Email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upgrade: %w", err)
	}

	return u, nil
}

// Authenticate checks credentials. Guests and accounts without a password
// can never log in this way.
func (s *Service) Authenticate(ctx context.Context, params LoginParams) (*domain.User, error) {
	params.Email = domain.NormalizeEmail(params.Email)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByEmail(ctx, params.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	if u.IsGuest || !u.HasPassword() || !u.Status.CanLogin() {
		slog.DebugContext(ctx, "login refused", "user_id", u.ID, "guest", u.IsGuest, "status", u.Status)
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(*u.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, principal uuid.UUID) (*domain.User, error) {
	if principal == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.GetUser(ctx, principal)
}

func (s *Service) UpdateProfile(ctx context.Context, principal uuid.UUID, params ProfileParams) (*domain.User, error) {
	if principal == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	if params.Name != nil {
		params.Name = new(strings.TrimSpace(*params.Name))
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if !params.IsEmpty() {
		if err := s.repo.UpdateProfile(ctx, principal, params); err != nil {
			return nil, err
		}
	}

	return s.repo.GetUser(ctx, principal)
}
