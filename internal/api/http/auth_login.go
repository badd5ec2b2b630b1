package http

import (
	"net/http"

	"github.com/vitalog/vitalog/internal/api/service"
)

type LoginHandler struct {
	errorResponder
	AuthService *service.AuthService
	Cookies     cookiePolicy
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.Cookies.set(w, pair.RefreshToken)
	writeMessage(w, http.StatusOK, authView{
		User:        toUserView(u),
		AccessToken: pair.AccessToken,
		ExpiresIn:   int(pair.ExpiresIn.Seconds()),
	}, "Login successful")
}
