// Package session inspects persisted bearer tokens.
// Tokens are decoded without signature verification: the backend stays the
// authority, the client only avoids replaying a token it knows has expired.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned for a value that is not a JWT.
var ErrMalformed = errors.New("malformed token")

// Claims is the part of the token the client cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Inspect decodes token without verifying its signature.
func Inspect(token string) (Claims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := Claims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// CanReuse evaluates whether a persisted token may be replayed at now.
// Rules:
// - Empty tokens are never reused
// - Opaque (non-JWT) tokens are reused; the backend decides
// - A JWT whose exp is at or before now is not reused
func CanReuse(token string, now time.Time) GuardResult {
	if token == "" {
		return GuardResult{Allowed: false, Reason: "no token stored"}
	}

	claims, err := Inspect(token)
	if err != nil {
		return GuardResult{Allowed: true}
	}

	if !claims.ExpiresAt.IsZero() && !now.Before(claims.ExpiresAt) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("token expired at %s", claims.ExpiresAt.Format(time.RFC3339)),
		}
	}

	return GuardResult{Allowed: true}
}
