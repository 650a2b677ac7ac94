package cache

import (
	"context"
	"testing"

	"github.com/RyoWakabayashi/pm-study/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewCache(0)

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", []byte("value")))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	got[0] = 'X'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)

	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 0, c.Size())
}

func TestCache_Capacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		capacity int
		writes   []string
		wantErr  bool
		wantSize int
	}{
		{
			name:     "fits",
			capacity: 10,
			writes:   []string{"12345", "1234567890"},
			wantSize: 10,
		},
		{
			name:     "overwrite counts replaced value",
			capacity: 6,
			writes:   []string{"123456", "abc"},
			wantSize: 3,
		},
		{
			name:     "exceeds",
			capacity: 4,
			writes:   []string{"12345"},
			wantErr:  true,
			wantSize: 0,
		},
		{
			name:     "unbounded",
			capacity: 0,
			writes:   []string{"a very long value that would not fit anywhere small"},
			wantSize: 51,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			c := NewCache(tt.capacity)

			var err error
			for _, w := range tt.writes {
				err = c.Set(ctx, "k", []byte(w))
			}
			if tt.wantErr {
				require.ErrorIs(t, err, storage.ErrQuotaExceeded)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSize, c.Size())
		})
	}
}
