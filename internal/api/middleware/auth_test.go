package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/token"
)

type stubTracker struct {
	marked []string
}

func (t *stubTracker) MarkActive(username string) { t.marked = append(t.marked, username) }
func (t *stubTracker) MarkInactive(string) {}
func (t *stubTracker) IsActive(string) bool { return false }
func (t *stubTracker) CountActive() int { return 0 }
func (t *stubTracker) ListActive(context.Context) ([]domain.Info, error) {
	return nil, nil
}

type stubDenylist struct {
	revoked bool
	err     error
}

func (d *stubDenylist) Revoke(context.Context, string, time.Duration) error { return nil }
func (d *stubDenylist) IsRevoked(context.Context, string) (bool, error) {
	return d.revoked, d.err
}

func runAuthenticate(t *testing.T, header string, denylist *stubDenylist) (echo.Context, *stubTracker, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tracker := &stubTracker{}
	mw := Authenticate(token.NewCodec("secret", time.Hour), tracker, denylist, zerolog.Nop())

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c, tracker, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	raw, err := codec.Generate("alice", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	c, tracker, called := runAuthenticate(t, "Bearer "+raw, &stubDenylist{})
	if !called {
		t.Fatalf("next not called")
	}

	identity, ok := c.Get(IdentityKey).(domain.Identity)
	if !ok {
		t.Fatalf("identity not set")
	}
	if identity.Username != "alice" || !identity.IsAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if raw2, _ := c.Get(RawTokenKey).(string); raw2 != raw {
		t.Fatalf("raw token not stored")
	}
	if len(tracker.marked) != 1 || tracker.marked[0] != "alice" {
		t.Fatalf("activity not marked: %v", tracker.marked)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	c, tracker, called := runAuthenticate(t, "", &stubDenylist{})
	if !called {
		t.Fatalf("request must pass through unauthenticated")
	}
	if c.Get(IdentityKey) != nil {
		t.Fatalf("identity must not be set")
	}
	if len(tracker.marked) != 0 {
		t.Fatalf("activity must not be marked")
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	c, tracker, called := runAuthenticate(t, "Bearer not-a-token", &stubDenylist{})
	if !called {
		t.Fatalf("request must pass through unauthenticated")
	}
	if c.Get(IdentityKey) != nil {
		t.Fatalf("identity must not be set for an invalid token")
	}
	if len(tracker.marked) != 0 {
		t.Fatalf("activity must not be marked")
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	shortCodec := token.NewCodec("secret", time.Millisecond)
	raw, _ := shortCodec.Generate("alice", false)
	time.Sleep(5 * time.Millisecond)

	c, _, called := runAuthenticate(t, "Bearer "+raw, &stubDenylist{})
	if !called {
		t.Fatalf("request must pass through unauthenticated")
	}
	if c.Get(IdentityKey) != nil {
		t.Fatalf("identity must not be set for an expired token")
	}
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	raw, _ := codec.Generate("alice", false)

	c, _, called := runAuthenticate(t, "Bearer "+raw, &stubDenylist{revoked: true})
	if !called {
		t.Fatalf("request must pass through unauthenticated")
	}
	if c.Get(IdentityKey) != nil {
		t.Fatalf("identity must not be set for a revoked token")
	}
}

func TestAuthenticate_DenylistFailureFailsOpen(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	raw, _ := codec.Generate("alice", false)

	c, _, _ := runAuthenticate(t, "Bearer "+raw, &stubDenylist{err: errors.New("redis down")})
	if c.Get(IdentityKey) == nil {
		t.Fatalf("a denylist outage must not lock callers out")
	}
}
