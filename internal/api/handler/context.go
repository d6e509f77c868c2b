package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/base-platform/account-api/internal/api/middleware"
	"github.com/base-platform/account-api/internal/core/domain"
)

// currentIdentity extracts the authenticated caller injected by the
// Authenticate middleware. Handlers behind a Require middleware can assume
// it succeeds; the error path covers misrouted handlers only.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}

// rawToken returns the bearer token that authenticated this request, or ""
// when the request is unauthenticated.
func rawToken(c echo.Context) string {
	raw, _ := c.Get(middleware.RawTokenKey).(string)
	return raw
}
