package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

const (
	claimKey          = "claim"
	accessTokenHeader = "x-access-token"
	accessTokenQuery  = "token"
)

// AccessVerifier validates a raw access token.
type AccessVerifier interface {
	VerifyAccess(raw string) (*token.Parsed, error)
}

// Identify resolves the caller from the first access token it finds and
// stores the claim in the context. It never rejects a request: a missing
// or invalid token leaves the request anonymous, and RequireRoles decides.
func Identify(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}

			parsed, err := verifier.VerifyAccess(raw)
			if err != nil {
				c.Logger().Debugf("ignoring access token: %v", err)
				return next(c)
			}

			claim := parsed.Claim
			c.Set(claimKey, &claim)
			return next(c)
		}
	}
}

// ClaimFrom returns the identity stored by Identify, or nil for an
// anonymous request.
func ClaimFrom(c echo.Context) *domain.Claim {
	claim, _ := c.Get(claimKey).(*domain.Claim)
	return claim
}

// extractToken checks, in order: the Authorization bearer header, the
// x-access-token header, the token query parameter and the accessToken
// cookie.
func extractToken(c echo.Context) string {
	req := c.Request()

	if h := req.Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1])
		}
	}
	if h := req.Header.Get(accessTokenHeader); h != "" {
		return h
	}
	if q := c.QueryParam(accessTokenQuery); q != "" {
		return q
	}
	if cookie, err := c.Cookie(token.AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
