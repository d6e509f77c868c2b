package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/base-platform/account-api/internal/api/metrics"
	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/ports"
	"github.com/base-platform/account-api/internal/token"
)

const (
	// IdentityKey is the echo context key holding the authenticated
	// domain.Identity, set only when a valid bearer token was presented.
	IdentityKey = "identity"
	// RawTokenKey holds the bearer token string that authenticated the
	// request, for logout to revoke.
	RawTokenKey = "raw_token"
)

// Authenticate resolves the bearer token, if any, into a request-scoped
// identity. It is deliberately lenient: a missing, malformed, expired, or
// revoked token leaves the request unauthenticated and passes it on — the
// role requirement declared per route decides whether that is acceptable.
// Every successfully authenticated request refreshes the caller's activity
// entry.
func Authenticate(codec *token.Codec, tracker ports.ActivityTracker, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			claims, err := codec.Parse(raw)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			revoked, err := denylist.IsRevoked(c.Request().Context(), raw)
			if err != nil {
				// Best-effort revocation: fail open so a Redis outage
				// cannot lock every caller out.
				log.Warn().Err(err).Msg("denylist check failed, accepting token")
			} else if revoked {
				metrics.TokenRejectionsTotal.WithLabelValues("revoked").Inc()
				return next(c)
			}

			tracker.MarkActive(claims.Subject)
			c.Set(IdentityKey, domain.Identity{Username: claims.Subject, IsAdmin: claims.IsAdmin})
			c.Set(RawTokenKey, raw)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
