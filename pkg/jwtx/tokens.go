package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrWrongType  = errors.New("jwtx: wrong token type")
)

// Pair is the result of a token issuance: a short-lived access token and a
// longer-lived refresh token, signed with independent secrets.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // access token lifetime
}

// TokenService signs and verifies HS256 token pairs. The access and refresh
// secrets must be distinct so that compromise of one does not expose the
// other capability. It holds no persisted state; a token is valid until its
// signature or expiry check fails.
type TokenService struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL != 0 {
		return s.AccessTTL
	}
	return DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL != 0 {
		return s.RefreshTTL
	}
	return DefaultRefreshTokenTTL
}

// IssuePair builds and signs an access/refresh token pair for the user.
// The two tokens are never derivable from one another.
func (s *TokenService) IssuePair(userID, email string) (Pair, error) {
	now := time.Now().UTC()

	access, err := sign(NewClaims(userID, email, TypeAccess, s.Issuer, s.accessTTL(), now), s.AccessSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := sign(NewClaims(userID, email, TypeRefresh, s.Issuer, s.refreshTTL(), now), s.RefreshSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// VerifyAccess validates a token against the access secret and the "access"
// type discriminator.
func (s *TokenService) VerifyAccess(token string) (Claims, error) {
	return verify(token, s.AccessSecret, TypeAccess)
}

// VerifyRefresh validates a token against the refresh secret and the
// "refresh" type discriminator.
func (s *TokenService) VerifyRefresh(token string) (Claims, error) {
	return verify(token, s.RefreshSecret, TypeRefresh)
}

func sign(claims Claims, secret []byte) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func verify(raw string, secret []byte, wantType string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if claims.TokenType != wantType {
		return Claims{}, ErrWrongType
	}

	return claims, nil
}

// ExtractBearer parses an "Authorization: Bearer <token>" header value.
// An absent or malformed header returns ok=false rather than an error;
// whether that is fatal is the caller's decision.
func ExtractBearer(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 3)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
