// Package app assembles the service: configuration, database, services,
// HTTP server, and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/vitalog/vitalog/internal/api/http"
	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/internal/api/store/drivers/sqlite"
	"github.com/vitalog/vitalog/pkg/cryptox"
	"github.com/vitalog/vitalog/pkg/jwtx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.TokenService

	authService   *service.AuthService
	userService   *service.UserService
	healthService *service.HealthService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "vitalog-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initTokens(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("vitalog api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vitalog api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("vitalog api stopped")
	return nil
}

// initTokens builds the token service from the configured secrets. In dev
// the secrets may be generated per process; in prod they must be provided
// so tokens survive restarts.
func (app *Application) initTokens() error {
	access := app.cfg.AccessSecret
	refresh := app.cfg.RefreshSecret

	if access == "" || refresh == "" {
		if app.cfg.IsProd() {
			return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required in prod")
		}
		access = cryptox.MustGenerateToken(cryptox.TokenSize256)
		refresh = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("JWT secrets not configured, generated ephemeral secrets; tokens will not survive restart")
	}
	if access == refresh {
		return fmt.Errorf("access and refresh token secrets must differ")
	}

	app.tokens = &jwtx.TokenService{
		AccessSecret:  []byte(access),
		RefreshSecret: []byte(refresh),
		Issuer:        app.cfg.Issuer,
		AccessTTL:     app.cfg.AccessTTL,
		RefreshTTL:    app.cfg.RefreshTTL,
	}
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokens,
	}
	app.userService = &service.UserService{Store: app.db}
	app.healthService = &service.HealthService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		app.cfg.IsProd(),
		app.cfg.FrontendURL,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.HealthService = app.healthService

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
