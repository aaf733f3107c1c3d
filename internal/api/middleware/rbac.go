package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/core/domain"
)

// RequireRoles admits requests whose identity holds one of roles. With no
// roles any authenticated identity passes. Refusals are domain.ForbiddenError
// values, rendered as 403 by the central error handler.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	guard := domain.NewGuard(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := guard.Allow(ClaimFrom(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAuth admits any authenticated identity.
func RequireAuth() echo.MiddlewareFunc {
	return RequireRoles()
}
