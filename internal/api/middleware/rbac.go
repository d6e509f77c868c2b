package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/base-platform/account-api/internal/core/domain"
)

// Require rejects requests whose caller does not satisfy the minimal role:
// 401 when no identity was authenticated at all, 403 when the identity lacks
// the ADMIN role an admin-only route demands. Enforcement happens before the
// handler body runs, so rejected requests have no partial side effects.
func Require(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if role == domain.RoleAdmin && !identity.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}
