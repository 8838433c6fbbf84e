package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/user"
)

var userCols = []string{"id", "email", "name", "image", "password_hash", "is_guest", "role", "status", "created_at", "updated_at"}

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStore_GetUserByEmail(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM users WHERE email = \\$1").
		WithArgs("linh@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "linh@example.com", "Linh", nil, "hashed", false, "user", "active", now, now))

	u, err := s.GetUserByEmail(context.Background(), "linh@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.HasPassword())
	assert.Equal(t, domain.UserStatusActive, u.Status)
}

func TestStore_GetUser_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WillReturnError(sql.ErrNoRows)

	_, err := s.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CreateUser_Conflict(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := s.CreateUser(context.Background(), &domain.User{Email: "linh@example.com", Role: domain.RoleUser, Status: domain.UserStatusActive})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStore_UpdateProfile(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectExec("UPDATE users SET image = \\$1, name = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs(nil, "Linh", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateProfile(context.Background(), id, user.ProfileParams{Name: new("Linh"), Image: domain.Null[string]()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountTx_Promote(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM users WHERE id = \\$1 FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "guest_1@guest.wedding-planner.local", "Guest User", nil, nil, true, "user", "active", now, now))
	mock.ExpectQuery("UPDATE users SET name = \\$1, email = \\$2, password_hash = \\$3, is_guest = FALSE").
		WithArgs("Linh", "linh@example.com", "hashed", id).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id.String(), "linh@example.com", "Linh", nil, "hashed", false, "user", "active", now, now))
	mock.ExpectCommit()

	tx, err := s.BeginAccount(context.Background())
	require.NoError(t, err)

	guest, err := tx.LockUser(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, guest.IsGuest)

	u, err := tx.Promote(context.Background(), id, user.Credentials{Name: "Linh", Email: "linh@example.com", PasswordHash: "hashed"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, id, u.ID)
	assert.False(t, u.IsGuest)
	assert.NoError(t, mock.ExpectationsWereMet())
}
