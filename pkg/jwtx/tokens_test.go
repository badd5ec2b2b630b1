package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService() *TokenService {
	return &TokenService{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		Issuer:        "vitalog-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func TestIssuePair_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, 15*time.Minute, pair.ExpiresIn)

	access, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", access.Subject)
	require.Equal(t, "a@b.com", access.Email)
	require.Equal(t, TypeAccess, access.TokenType)

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", refresh.Subject)
	require.Equal(t, TypeRefresh, refresh.TokenType)
}

func TestVerify_TypeConfusionRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	// An access token must never pass refresh verification. The secrets
	// differ, so it fails at the signature before the type check.
	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.Error(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.Error(t, err)
}

func TestVerify_TypeCheckedEvenWithSharedSecret(t *testing.T) {
	t.Parallel()

	// A misconfigured deployment with identical secrets still refuses to
	// confuse token types, thanks to the discriminator claim.
	svc := &TokenService{
		AccessSecret:  []byte("shared"),
		RefreshSecret: []byte("shared"),
		Issuer:        "vitalog-test",
	}

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrWrongType)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrWrongType)
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	svc.AccessTTL = -time.Minute // already expired at issuance

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerify_ValidBeforeExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	svc.AccessTTL = time.Second // one second short of expiring

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.VerifyAccess(tampered)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	pair, err := svc.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	other := newTestService()
	other.AccessSecret = []byte("a different secret")

	_, err = other.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	_, err := svc.VerifyAccess("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = svc.VerifyAccess("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"empty header", "", "", false},
		{"missing token", "Bearer", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"lowercase scheme", "bearer abc", "", false},
		{"extra parts", "Bearer abc def", "", false},
		{"empty token", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearer(tt.header)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
