package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/user"
)

const selectUserColumns = `id, email, name, image, password_hash, is_guest, role, status, created_at, updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return getUser(ctx, s.db, `SELECT `+selectUserColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getUser(ctx, s.db, `SELECT `+selectUserColumns+` FROM users WHERE email = $1`, email)
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return insertUser(ctx, s.db, u)
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, params user.ProfileParams) error {
	changes := map[string]any{"updated_at": sq.Expr("NOW()")}

	if params.Name != nil {
		changes["name"] = *params.Name
	}

	if params.Image.Set {
		changes["image"] = params.Image.Ptr()
	}

	query, args, err := psql.Update("users").SetMap(changes).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building profile update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	return requireRow(res)
}

type accountTx struct {
	tx *sqlx.Tx
}

func (s *Store) BeginAccount(ctx context.Context) (user.AccountTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning account tx: %w", err)
	}

	return &accountTx{tx: tx}, nil
}

func (a *accountTx) Commit() error   { return a.tx.Commit() }
func (a *accountTx) Rollback() error { return a.tx.Rollback() }

func (a *accountTx) LockUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return getUser(ctx, a.tx, `SELECT `+selectUserColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (a *accountTx) LockUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getUser(ctx, a.tx, `SELECT `+selectUserColumns+` FROM users WHERE email = $1 FOR UPDATE`, email)
}

func (a *accountTx) CreateUser(ctx context.Context, u *domain.User) error {
	return insertUser(ctx, a.tx, u)
}

// Promote gives an account credentials and clears its guest flag. The id is
// never touched, so everything the guest owns stays attached.
func (a *accountTx) Promote(ctx context.Context, id uuid.UUID, creds user.Credentials) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, is_guest = FALSE, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + selectUserColumns

	var u domain.User
	if err := a.tx.GetContext(ctx, &u, query, creds.Name, creds.Email, creds.PasswordHash, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("promoting user: %w", database.MapError(err, "email"))
	}

	return &u, nil
}

func getUser(ctx context.Context, q database.DBTX, query string, arg any) (*domain.User, error) {
	var u domain.User
	if err := q.GetContext(ctx, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func insertUser(ctx context.Context, q database.DBTX, u *domain.User) error {
	query := `
		INSERT INTO users (email, name, image, password_hash, is_guest, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		u.Email,
		u.Name,
		u.Image,
		u.PasswordHash,
		u.IsGuest,
		u.Role,
		u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", database.MapError(err, "email"))
	}

	return nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
