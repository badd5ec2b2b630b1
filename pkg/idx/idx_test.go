package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)
	require.Len(t, a.String(), 26)
}

func TestNewAt_Ordering(t *testing.T) {
	t.Parallel()

	early := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, early.String(), late.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	valid := New().String()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid ulid", valid, false},
		{"valid with whitespace", "  " + valid + "  ", false},
		{"empty string", "", true},
		{"garbage", "not-a-ulid", true},
		{"too short", valid[:10], true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				require.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			require.False(t, id.IsZero())
		})
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustParse("bogus") })
}
