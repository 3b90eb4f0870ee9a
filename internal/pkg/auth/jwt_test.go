package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

const testSecret = "test-secret-key-at-least-32-chars"

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "stockflow")
	admin := domain.Actor{UserID: 42, RoleID: domain.RoleAdmin}

	token, expiresAt, err := m.Issue(admin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	actor, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin, actor)
	assert.True(t, actor.IsAdmin())
}

func TestTokenManager_Parse_Rejections(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "stockflow")
	staff := domain.Actor{UserID: 7, RoleID: domain.RoleStaff}

	t.Run("expired_token", func(t *testing.T) {
		past := NewTokenManager(testSecret, time.Minute, "stockflow")
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := past.Issue(staff)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-key-at-least-32-chars", time.Hour, "stockflow")
		token, _, err := other.Issue(staff)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		other := NewTokenManager(testSecret, time.Hour, "someone-else")
		token, _, err := other.Issue(staff)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing_role", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stockflow",
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrMissingRole)
	})

	t.Run("non_numeric_subject", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stockflow",
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			RoleID: domain.RoleAdmin,
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
