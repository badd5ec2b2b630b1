// Package service holds the business logic between the HTTP handlers and
// the persistence store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vitalog/vitalog/internal/api/domain"
	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/pkg/cryptox"
	"github.com/vitalog/vitalog/pkg/idx"
	"github.com/vitalog/vitalog/pkg/jwtx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

type AuthService struct {
	Store  store.Store
	Tokens *jwtx.TokenService
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	DOB      *time.Time
	Gender   string
}

// Register creates a new account and issues its first token pair. Email
// uniqueness is arbitrated by the store's unique index, so two racing
// registrations resolve to exactly one winner.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, jwtx.Pair, error) {
	l := slogx.FromContext(ctx)

	email := normalizeEmail(p.Email)

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, jwtx.Pair{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(p.Name),
		PasswordHash: hash,
		DOB:          p.DOB,
		Gender:       p.Gender,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, jwtx.Pair{}, ErrUserExists
		}
		return domain.User{}, jwtx.Pair{}, err
	}

	pair, err := s.Tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return domain.User{}, jwtx.Pair{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u, pair, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email and a wrong password both return ErrInvalidCredentials; the dummy
// verify keeps the two paths taking comparable time.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, jwtx.Pair, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerify(password)
			return domain.User{}, jwtx.Pair{}, ErrInvalidCredentials
		}
		return domain.User{}, jwtx.Pair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login password verification failed", slog.String("user_id", u.ID))
		return domain.User{}, jwtx.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return domain.User{}, jwtx.Pair{}, err
	}

	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user is
// re-fetched so tokens stop refreshing once the account is gone.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.User, jwtx.Pair, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.User{}, jwtx.Pair{}, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, jwtx.Pair{}, ErrUserNotFound
		}
		return domain.User{}, jwtx.Pair{}, err
	}

	pair, err := s.Tokens.IssuePair(u.ID, u.Email)
	if err != nil {
		return domain.User{}, jwtx.Pair{}, err
	}

	return u, pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
