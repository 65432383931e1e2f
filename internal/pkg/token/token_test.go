package token

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleRecruiter}

	raw, err := iss.Issue(user)
	require.NoError(t, err)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "u1", Email: "alice@example.com", Role: domain.RoleRecruiter}, claims.Identity())
	assert.NotNil(t, claims.ExpiresAt)
}

func TestIssuer_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := iss.Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("one", time.Hour).Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssuer_RejectsUnknownRole(t *testing.T) {
	c := Claims{
		ID:   "u1",
		Role: "manager",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssuer_RejectsMissingExpiry(t *testing.T) {
	c := Claims{ID: "u1", Role: domain.RoleAdmin}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssuer_EmptySecretCannotIssue(t *testing.T) {
	_, err := NewIssuer("", time.Hour).Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
