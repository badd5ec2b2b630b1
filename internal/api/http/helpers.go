package http

import (
	"net/http"

	"github.com/vitalog/vitalog/pkg/httpx"
)

// requireIdentity pulls the authenticated identity off the context. The
// authentication middleware guarantees it for protected routes; the check
// guards against a route wired up without it.
func requireIdentity(w http.ResponseWriter, r *http.Request) (httpx.Identity, bool) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required", nil)
	}
	return identity, ok
}

// pathID reads the {id} segment of the route pattern.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing record id", nil)
		return "", false
	}
	return id, true
}
