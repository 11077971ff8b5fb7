// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of the bearer token's JWT claims that the
// client displays. The token is decoded without signature
// verification — the client holds no signing key, and the claims are
// informational ("staffdeck whoami" showing when the session expires).
// The backend remains the authority on token validity.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. A token
// without an exp claim never reads as expired here.
func (claims TokenClaims) Expired(now time.Time) bool {
	return !claims.ExpiresAt.IsZero() && now.After(claims.ExpiresAt)
}

// DecodeTokenClaims parses the bearer token as an unverified JWT.
// Returns an error for tokens that are not JWTs at all (some backend
// variants issue opaque tokens); callers should degrade to showing
// nothing rather than failing the command.
func DecodeTokenClaims(token string) (*TokenClaims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("ems: decoding token: %w", err)
	}

	claims := &TokenClaims{}
	if subject, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = subject
	}
	if issuedAt, err := parsed.Claims.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}
	if expiresAt, err := parsed.Claims.GetExpirationTime(); err == nil && expiresAt != nil {
		claims.ExpiresAt = expiresAt.Time
	}
	return claims, nil
}
