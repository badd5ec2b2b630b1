// Package jwtx issues and verifies the signed access/refresh token pairs
// that carry user identity between requests.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators. Embedding the type in the claims prevents a
// refresh token from being replayed where an access token is expected and
// vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the token claims shared by access and refresh tokens. The
// subject is the user ID; the email is a snapshot at issuance time and may
// go stale relative to the user record.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the subject at issuance time.
	Email string `json:"email,omitempty"`

	// TokenType discriminates "access" from "refresh".
	TokenType string `json:"type"`
}

// NewClaims builds minimally-correct claims for one token of the pair.
func NewClaims(userID, email, tokenType, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:     email,
		TokenType: tokenType,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
