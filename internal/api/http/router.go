// Package http wires the HTTP surface: routing, request validation, and
// the JSON response envelope.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/pkg/httpx"
	"github.com/vitalog/vitalog/pkg/jwtx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

// cookiePolicy carries the refresh-cookie settings shared by the auth
// handlers.
type cookiePolicy struct {
	TTL    time.Duration
	Secure bool
}

func (p cookiePolicy) set(w http.ResponseWriter, token string) {
	httpx.SetRefreshCookie(w, token, p.TTL, p.Secure)
}

func (p cookiePolicy) clear(w http.ResponseWriter) {
	httpx.ClearRefreshCookie(w, p.Secure)
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.TokenService
	cookies      cookiePolicy
	errs         errorResponder
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	AuthService   *service.AuthService
	UserService   *service.UserService
	HealthService *service.HealthService
}

func NewRouter(
	tokens *jwtx.TokenService,
	prod bool,
	frontendURL, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:    http.NewServeMux(),
		tokens: tokens,
		cookies: cookiePolicy{
			TTL:    tokens.RefreshTTL,
			Secure: prod,
		},
		// Outside prod, 500 responses carry the underlying error message
		// to speed up debugging. Prod responses stay generic.
		errs: errorResponder{exposeDetails: !prod},
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
	if r.cookies.TTL == 0 {
		r.cookies.TTL = jwtx.DefaultRefreshTokenTTL
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(frontendURL),
		httpx.RateLimitByIP(httpx.LenientLimit),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMetrics()
	r.registerWorkouts()
	r.registerMeals()
	r.registerSleep()
	r.registerFasting()
	r.registerMoods()
	r.registerGoals()

	r.Mux.Handle("GET /health", HealthzHandler(r.startTime, r.buildVersion, r.store))
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// resolveIdentity adapts the user store into the shape the authentication
// middleware needs. A token whose subject no longer exists resolves to
// found=false rather than an error.
func (r *Router) resolveIdentity(ctx context.Context, userID string) (httpx.Identity, bool, error) {
	u, err := r.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, false, nil
		}
		return httpx.Identity{}, false, err
	}
	return httpx.Identity{ID: u.ID, Email: u.Email}, true, nil
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnRequired(r.tokens, r.resolveIdentity)
}

func (r *Router) registerAuth() {
	register := &RegisterHandler{errorResponder: r.errs, AuthService: r.AuthService, Cookies: r.cookies}
	login := &LoginHandler{errorResponder: r.errs, AuthService: r.AuthService, Cookies: r.cookies}
	refresh := &RefreshHandler{errorResponder: r.errs, AuthService: r.AuthService, Cookies: r.cookies}
	logout := &LogoutHandler{Cookies: r.cookies}
	me := &MeHandler{errorResponder: r.errs, UserService: r.UserService}

	// Credential endpoints get the strict per-IP limit to slow down
	// guessing and enumeration.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(refresh, httpx.RateLimitByIP(httpx.StrictLimit)))

	// Logout stays reachable without a valid access token.
	r.Mux.Handle("POST /api/auth/logout", logout)

	r.Mux.Handle("GET /api/auth/me", httpx.Chain(me, r.authn()))
}

func (r *Router) registerMetrics() {
	h := &MetricsHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/metrics", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/metrics", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/metrics/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerWorkouts() {
	h := &WorkoutsHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/workouts", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/workouts", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/workouts/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerMeals() {
	h := &MealsHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/meals", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/meals", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/meals/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSleep() {
	h := &SleepHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/sleep", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/sleep", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/sleep/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerFasting() {
	h := &FastingHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/fasting", r.protected(http.HandlerFunc(h.HandleStart)))
	r.Mux.Handle("PATCH /api/fasting/{id}/end", r.protected(http.HandlerFunc(h.HandleEnd)))
	r.Mux.Handle("GET /api/fasting", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/fasting/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerMoods() {
	h := &MoodsHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/moods", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/moods", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("DELETE /api/moods/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerGoals() {
	h := &GoalsHandler{errorResponder: r.errs, Health: r.HealthService}
	r.Mux.Handle("POST /api/goals", r.protected(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/goals", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("PUT /api/goals/{id}", r.protected(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/goals/{id}", r.protected(http.HandlerFunc(h.HandleDelete)))
}

// protected wraps a mutating handler with authentication and the moderate
// per-user rate limit.
func (r *Router) protected(h http.Handler) http.Handler {
	return httpx.Chain(h,
		r.authn(),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}
