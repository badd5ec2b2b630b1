package http

import "net/http"

// LogoutHandler clears the refresh cookie. It deliberately requires no
// authentication: a client with an expired access token must still be able
// to log out, and clearing an absent cookie is harmless.
type LogoutHandler struct {
	Cookies cookiePolicy
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Cookies.clear(w)
	writeMessage(w, http.StatusOK, nil, "Logged out successfully")
}
