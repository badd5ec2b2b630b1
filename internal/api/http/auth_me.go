package http

import (
	"net/http"

	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/pkg/httpx"
)

type MeHandler struct {
	errorResponder
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required", nil)
		return
	}

	u, err := h.UserService.GetUserByID(r.Context(), identity.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"user": toProfileView(u)})
}
