package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// RequireAdmin must be chained after Authenticate. Used standalone it fails
// every request with domain.ErrMissingIdentity (a 500) rather than letting
// the request through.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := IdentityFrom(c)
			if err != nil {
				return err
			}
			if !identity.IsAdmin() {
				return domain.ErrAdminRequired
			}
			return next(c)
		}
	}
}
