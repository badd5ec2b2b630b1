package http

import (
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/service"
)

type RegisterHandler struct {
	errorResponder
	AuthService *service.AuthService
	Cookies     cookiePolicy
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	params := service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Gender:   req.Gender,
	}
	if req.DOB != "" {
		dob, _ := time.Parse("2006-01-02", req.DOB)
		params.DOB = &dob
	}

	u, pair, err := h.AuthService.Register(r.Context(), params)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.Cookies.set(w, pair.RefreshToken)
	writeMessage(w, http.StatusCreated, authView{
		User:        toUserView(u),
		AccessToken: pair.AccessToken,
		ExpiresIn:   int(pair.ExpiresIn.Seconds()),
	}, "User registered successfully")
}
