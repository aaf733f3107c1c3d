// Package token issues and verifies the signed identity tokens used for
// access and refresh, and renders the cookies that carry them.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/newsroom/publishing-api/internal/core/domain"
)

var errEmptySecret = errors.New("token: empty signing secret")

// claims is the JWT body: the identity claim plus registered jti/iat/exp.
type claims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	Email  string      `json:"email"`
	jwt.RegisteredClaims
}

// Parsed is a verified token.
type Parsed struct {
	domain.Claim
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 tokens.
type Codec struct {
	now func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(opts ...Option) *Codec {
	c := &Codec{now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Issue signs claim with secret. The token expires ttl after issuance.
func (c *Codec) Issue(claim domain.Claim, secret string, ttl time.Duration) (string, error) {
	raw, _, err := c.sign(claim, secret, ttl)
	return raw, err
}

func (c *Codec) sign(claim domain.Claim, secret string, ttl time.Duration) (string, jwt.RegisteredClaims, error) {
	if secret == "" {
		return "", jwt.RegisteredClaims{}, errEmptySecret
	}
	now := c.now()
	body := claims{
		UserID: claim.ID,
		Role:   claim.Role,
		Email:  claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, body).SignedString([]byte(secret))
	if err != nil {
		return "", jwt.RegisteredClaims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, body.RegisteredClaims, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// domain.ErrInvalidToken.
func (c *Codec) Verify(raw, secret string) (*Parsed, error) {
	if raw == "" || secret == "" {
		return nil, domain.ErrInvalidToken
	}

	var body claims
	tkn, err := jwt.ParseWithClaims(raw, &body, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if body.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	p := &Parsed{
		Claim:   domain.Claim{ID: body.UserID, Role: body.Role, Email: body.Email},
		TokenID: body.ID,
	}
	if body.IssuedAt != nil {
		p.IssuedAt = body.IssuedAt.Time
	}
	if body.ExpiresAt != nil {
		p.ExpiresAt = body.ExpiresAt.Time
	}
	return p, nil
}
