// Package token issues and verifies the signed identity tokens carried by
// every authenticated request.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/talentbridge/referral-system/internal/core/domain"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const defaultTTL = 30 * 24 * time.Hour

// Claims is the payload of an identity token.
type Claims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`

	jwtlib.RegisteredClaims
}

// Identity converts verified claims into the caller identity.
func (c Claims) Identity() domain.Identity {
	return domain.Identity{ID: c.ID, Email: c.Email, Role: c.Role}
}

// Issuer signs and verifies HS256 identity tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := i.now().UTC()
	c := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the claims. Tokens without
// a user id or with an unknown role are rejected.
func (i *Issuer) Verify(raw string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(i.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(raw, &c, func(*jwtlib.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if c.ID == "" || !c.Role.Valid() {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
