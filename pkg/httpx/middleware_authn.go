package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/vitalog/vitalog/pkg/jwtx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(token string) (jwtx.Claims, error)
}

// IdentityResolver looks the token subject up in the persistence store.
// found=false means the user no longer exists (e.g. deleted after the token
// was issued); err is reserved for store failures.
type IdentityResolver func(ctx context.Context, userID string) (identity Identity, found bool, err error)

// AuthnRequired rejects requests that do not carry a valid access token for
// an existing user. On success the identity is attached to the request
// context for downstream handlers.
func AuthnRequired(v TokenVerifier, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := jwtx.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				writeBearerError(w, "Access token required")
				return
			}

			claims, err := v.VerifyAccess(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "Token expired")
					return
				}
				log.Warn("access token verification failed", "err", err)
				writeBearerError(w, "Invalid token")
				return
			}

			identity, found, err := resolve(ctx, claims.Subject)
			if err != nil {
				log.Error("identity lookup failed", "err", err, "user_id", claims.Subject)
				WriteJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"error":   "Internal server error",
				})
				return
			}
			if !found {
				writeBearerError(w, "User not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// AuthnOptional performs the same extraction and verification as
// AuthnRequired but proceeds without an identity on any failure. Downstream
// handlers must treat the identity as possibly absent.
func AuthnOptional(v TokenVerifier, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := jwtx.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.VerifyAccess(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			identity, found, err := resolve(ctx, claims.Subject)
			if err != nil || !found {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// writeBearerError sends a 401 with an RFC 6750 WWW-Authenticate header and
// the standard JSON error envelope.
func writeBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   msg,
	})
}
