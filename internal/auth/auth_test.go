package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daileit/wedding-planner/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: uuid.New(), Email: "a@example.com", IsGuest: true}

	token, expires, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.True(t, claims.IsGuest)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: uuid.New(), Email: "a@example.com"}

	token, _, err := m.Issue(user)
	require.NoError(t, err)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		_, _, err := other.Parse(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewTokenManager("test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, _, err := expired.Parse(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := m.Parse("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestPrincipal(t *testing.T) {
	assert.Equal(t, uuid.Nil, PrincipalFrom(context.Background()))

	id := uuid.New()
	assert.Equal(t, id, PrincipalFrom(WithPrincipal(context.Background(), id)))
}
