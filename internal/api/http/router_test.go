package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/internal/api/store/drivers/sqlite"
	"github.com/vitalog/vitalog/pkg/cryptox"
	"github.com/vitalog/vitalog/pkg/httpx"
	"github.com/vitalog/vitalog/pkg/jwtx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &jwtx.TokenService{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		Issuer:        "vitalog-test",
	}

	logger := slogx.New(slogx.Config{Service: "test", Level: "error", Format: "text"})

	r := NewRouter(tokens, false, "", "test", st, logger)
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	r.UserService = &service.UserService{Store: st}
	r.HealthService = &service.HealthService{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, router *Router, method, path, token string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env testEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerUser(t *testing.T, router *Router, email string) (accessToken string, refreshCookie *http.Cookie) {
	t.Helper()

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "Sup3rSecret",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, env.Success)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	for _, c := range w.Result().Cookies() {
		if c.Name == httpx.RefreshCookieName {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)
	return data.AccessToken, refreshCookie
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "new@example.com",
		"password": "Sup3rSecret",
		"name":     "Newcomer",
		"dob":      "1990-04-12",
		"gender":   "other",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, env.Success)
	require.Equal(t, "User registered successfully", env.Message)

	var data struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
		ExpiresIn   int    `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "new@example.com", data.User.Email)
	require.Equal(t, int(jwtx.DefaultAccessTokenTTL.Seconds()), data.ExpiresIn)

	// The hash must never leak, and the refresh token travels only in the
	// cookie.
	body := w.Body.String()
	require.NotContains(t, body, "passwordHash")
	require.NotContains(t, body, "refreshToken")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == httpx.RefreshCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.NotEmpty(t, cookie.Value)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"password": "weak",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	require.Equal(t, "Validation failed", env.Error)

	var details []FieldError
	require.NoError(t, json.Unmarshal(env.Details, &details))
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "password")
}

func TestRegisterDuplicate(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "dup@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "Dup@Example.com",
		"password": "An0therSecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "User with this email already exists", env.Error)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "parity@example.com")

	wWrong, envWrong := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "parity@example.com",
		"password": "WrongPassw0rd",
	})
	wUnknown, envUnknown := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "WrongPassw0rd",
	})

	require.Equal(t, http.StatusUnauthorized, wWrong.Code)
	require.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	require.Equal(t, envWrong.Error, envUnknown.Error)
	require.Equal(t, "Invalid credentials", envWrong.Error)
}

func TestRefreshEndpoint(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := registerUser(t, router, "refresh@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/refresh", "", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, env.Success)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	// Without the cookie the endpoint refuses.
	wNone, envNone := doJSON(t, router, http.MethodPost, "/api/auth/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, wNone.Code)
	require.Equal(t, "Refresh token required", envNone.Error)

	// A garbage cookie is rejected and cleared.
	bad := &http.Cookie{Name: httpx.RefreshCookieName, Value: "garbage"}
	wBad, envBad := doJSON(t, router, http.MethodPost, "/api/auth/refresh", "", nil, bad)
	require.Equal(t, http.StatusUnauthorized, wBad.Code)
	require.Equal(t, "Invalid refresh token", envBad.Error)
	for _, c := range wBad.Result().Cookies() {
		if c.Name == httpx.RefreshCookieName {
			require.Less(t, c.MaxAge, 0)
		}
	}
}

func TestLogoutWithoutAuth(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	require.Equal(t, "Logged out successfully", env.Message)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == httpx.RefreshCookieName {
			cleared = c.MaxAge < 0 && c.Value == ""
		}
	}
	require.True(t, cleared, "logout must clear the refresh cookie")
}

func TestMeEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "me@example.com")

	w, env := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "me@example.com", data.User.Email)

	// Tampering with the signature invalidates the token.
	tampered := token + "x"
	wBad, envBad := doJSON(t, router, http.MethodGet, "/api/auth/me", tampered, nil)
	require.Equal(t, http.StatusUnauthorized, wBad.Code)
	require.Equal(t, "Invalid token", envBad.Error)

	// No token at all.
	wNone, envNone := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, wNone.Code)
	require.Equal(t, "Access token required", envNone.Error)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := registerUser(t, router, "confused@example.com")

	w, env := doJSON(t, router, http.MethodGet, "/api/auth/me", cookie.Value, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid token", env.Error)
}

func TestMetricsEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "metrics@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/metrics", token, map[string]any{
		"date":       "2026-08-25",
		"weight":     71.2,
		"bodyFatPct": 18.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	// Second metric for the same day conflicts.
	wDup, envDup := doJSON(t, router, http.MethodPost, "/api/metrics", token, map[string]any{
		"date":       "2026-08-25",
		"bodyFatPct": 18.6,
	})
	require.Equal(t, http.StatusConflict, wDup.Code)
	require.Equal(t, "Record already exists", envDup.Error)

	wList, envList := doJSON(t, router, http.MethodGet, "/api/metrics?from=2026-08-01&to=2026-08-31", token, nil)
	require.Equal(t, http.StatusOK, wList.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(envList.Data, &list))
	require.Len(t, list, 1)

	wBadRange, _ := doJSON(t, router, http.MethodGet, "/api/metrics?from=25-08-2026", token, nil)
	require.Equal(t, http.StatusBadRequest, wBadRange.Code)

	wDel, _ := doJSON(t, router, http.MethodDelete, "/api/metrics/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, wDel.Code)

	wGone, envGone := doJSON(t, router, http.MethodDelete, "/api/metrics/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, wGone.Code)
	require.Equal(t, "Record not found", envGone.Error)
}

func TestCrossUserIsolation(t *testing.T) {
	router := newTestRouter(t)
	tokenA, _ := registerUser(t, router, "owner@example.com")
	tokenB, _ := registerUser(t, router, "intruder@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/workouts", tokenA, map[string]any{
		"startTime": time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
		"endTime":   time.Now().UTC().Format(time.RFC3339),
		"type":      "cardio",
		"intensity": 6,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Another user's delete behaves as if the record does not exist.
	wDel, _ := doJSON(t, router, http.MethodDelete, "/api/workouts/"+created.ID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, wDel.Code)

	// And their listing does not include it.
	wList, envList := doJSON(t, router, http.MethodGet, "/api/workouts", tokenB, nil)
	require.Equal(t, http.StatusOK, wList.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(envList.Data, &list))
	require.Empty(t, list)
}

func TestFastingEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "faster@example.com")

	start := time.Now().UTC().Add(-16 * time.Hour)
	w, env := doJSON(t, router, http.MethodPost, "/api/fasting", token, map[string]any{
		"startTime": start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID      string     `json:"id"`
		EndTime *time.Time `json:"endTime"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Nil(t, created.EndTime)

	wEnd, envEnd := doJSON(t, router, http.MethodPatch, "/api/fasting/"+created.ID+"/end", token, map[string]any{})
	require.Equal(t, http.StatusOK, wEnd.Code, wEnd.Body.String())
	var closed struct {
		EndTime *time.Time `json:"endTime"`
	}
	require.NoError(t, json.Unmarshal(envEnd.Data, &closed))
	require.NotNil(t, closed.EndTime)

	// Ending twice reports the window as gone.
	wAgain, _ := doJSON(t, router, http.MethodPatch, "/api/fasting/"+created.ID+"/end", token, map[string]any{})
	require.Equal(t, http.StatusNotFound, wAgain.Code)

	// An end before the start is a validation failure.
	w2, env2 := doJSON(t, router, http.MethodPost, "/api/fasting", token, map[string]any{
		"startTime": start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w2.Code)
	var second struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &second))

	wBad, _ := doJSON(t, router, http.MethodPatch, "/api/fasting/"+second.ID+"/end", token, map[string]any{
		"endTime": start.Add(-time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, wBad.Code)
}

func TestGoalsEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerUser(t, router, "goals@example.com")

	w, env := doJSON(t, router, http.MethodPost, "/api/goals", token, map[string]any{
		"type":   "weight_loss",
		"target": 68,
		"unit":   "kg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.False(t, created.CreatedAt.IsZero())

	wUp, envUp := doJSON(t, router, http.MethodPut, "/api/goals/"+created.ID, token, map[string]any{
		"type":    "weight_loss",
		"target":  68,
		"current": 71.5,
		"unit":    "kg",
	})
	require.Equal(t, http.StatusOK, wUp.Code, wUp.Body.String())
	var updated struct {
		Current   *float64  `json:"current"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(envUp.Data, &updated))
	require.NotNil(t, updated.Current)
	require.InDelta(t, 71.5, *updated.Current, 0.001)

	// The update response reflects the stored row, so the creation
	// timestamp survives the update.
	require.False(t, updated.CreatedAt.IsZero())
	require.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)

	wBadType, _ := doJSON(t, router, http.MethodPost, "/api/goals", token, map[string]any{
		"type":   "get_swole",
		"target": 1,
		"unit":   "x",
	})
	require.Equal(t, http.StatusBadRequest, wBadType.Code)
}

func TestUnknownFieldsRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@b.co","password":"x","role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRateLimit(t *testing.T) {
	router := newTestRouter(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < httpx.StrictLimit.Burst+1; i++ {
		last, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "limit@example.com",
			"password": "Sup3rSecret",
		})
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "ok", body.Database)
}
