package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/api/store/drivers/sqlite"
	"github.com/vitalog/vitalog/pkg/cryptox"
	"github.com/vitalog/vitalog/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &AuthService{
		Store: s,
		Tokens: &jwtx.TokenService{
			AccessSecret:  []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
			Issuer:        "vitalog-test",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, RegisterParams{
		Email:    "  Alice@Example.COM ",
		Password: "Sup3rSecret",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotEmpty(t, u.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.Tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)

	// The timestamps handed back at registration are the ones on the row.
	stored, err := svc.Store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.WithinDuration(t, u.CreatedAt, stored.CreatedAt, time.Second)
	require.WithinDuration(t, u.UpdatedAt, stored.UpdatedAt, time.Second)

	// Login matches regardless of email casing.
	got, loginPair, err := svc.Login(ctx, "ALICE@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, loginPair.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterParams{Email: "bob@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{Email: "Bob@Example.com", Password: "An0therSecret"})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterRace(t *testing.T) {
	svc := newAuthService(t)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Register(context.Background(), RegisterParams{
				Email:    "race@example.com",
				Password: "Sup3rSecret",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrUserExists)
		}
	}
	require.Equal(t, 1, winners)
}

func TestLoginFailureParity(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterParams{Email: "carol@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Unknown email and wrong password surface the same sentinel, so a
	// caller cannot distinguish the two cases.
	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "Sup3rSecret")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, _, wrongErr := svc.Login(ctx, "carol@example.com", "WrongPassw0rd")
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, RegisterParams{Email: "dora@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	got, fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, fresh.AccessToken)

	// An access token must not be accepted on the refresh path.
	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	_, _, err = svc.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshAfterUserDeleted(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, RegisterParams{Email: "gone@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Store.Users().DeleteUser(ctx, u.ID))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestPasswordHashNeverEmpty(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterParams{Email: "hash@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	stored, err := svc.Store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("Sup3rSecret", stored.PasswordHash))
}

func TestExpiredRefreshToken(t *testing.T) {
	svc := newAuthService(t)
	svc.Tokens.RefreshTTL = -time.Minute
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, RegisterParams{Email: "late@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}
