// Package token implements creation and validation of the signed bearer
// tokens issued at login and registration. Tokens are stateless: validity is
// fully determined by signature and expiry at verification time.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// Claims are the payload embedded in every issued token.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 bearer tokens with a fixed time-to-live.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. A non-positive ttl falls back to 24h.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Generate produces a signed token carrying the subject and admin claim.
func (c *Codec) Generate(username string, isAdmin bool) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
func (c *Codec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("token: invalid token")
	}
	return claims, nil
}

// ExtractSubject returns the embedded subject without requiring validity.
// Malformed tokens yield ok=false; an expired or badly signed token with a
// well-formed payload still yields its subject.
func (c *Codec) ExtractSubject(raw string) (string, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", false
	}
	if claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// Validate reports whether the token verifies, is unexpired, and names the
// expected subject. Fails closed on any parse or signature error.
func (c *Codec) Validate(raw, expectedSubject string) bool {
	claims, err := c.Parse(raw)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// RemainingTTL reports how long a token stays valid from now, ignoring its
// signature. Used to size denylist entries at logout. Returns 0 for tokens
// already expired or without an exp claim.
func (c *Codec) RemainingTTL(raw string) time.Duration {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Sub(c.now())
	if d < 0 {
		return 0
	}
	return d
}
