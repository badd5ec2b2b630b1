package httpx

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the refresh token. The token
// never travels anywhere else: not in response bodies, not in headers.
const RefreshCookieName = "refreshToken"

// SetRefreshCookie stores the refresh token in a cookie that client-side
// scripts cannot read and that is not sent on cross-site navigations.
// Secure should be true everywhere except local development.
func SetRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearRefreshCookie expires the refresh cookie. Clearing an absent cookie
// is not an error; the operation is idempotent.
func ClearRefreshCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// RefreshCookie extracts the refresh token from the request cookie.
func RefreshCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
