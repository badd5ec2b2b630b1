package http

import (
	"net/http"

	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/pkg/httpx"
)

type RefreshHandler struct {
	errorResponder
	AuthService *service.AuthService
	Cookies     cookiePolicy
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, ok := httpx.RefreshCookie(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Refresh token required", nil)
		return
	}

	u, pair, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		// An unusable refresh cookie is cleared so the client stops
		// replaying it.
		h.Cookies.clear(w)
		h.serviceError(w, r, err)
		return
	}

	h.Cookies.set(w, pair.RefreshToken)
	writeMessage(w, http.StatusOK, authView{
		User:        toUserView(u),
		AccessToken: pair.AccessToken,
		ExpiresIn:   int(pair.ExpiresIn.Seconds()),
	}, "Token refreshed successfully")
}
