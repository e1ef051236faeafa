package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStorageRoundTrip(t *testing.T) {
	s := NewCacheStorage(time.Minute, time.Minute)
	ctx := context.Background()

	_, err := s.GetSessionID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetSessionID(ctx, 42, "sess-1"))

	got, err := s.GetSessionID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got)

	require.NoError(t, s.Delete(ctx, 42))
	_, err = s.GetSessionID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheStorageRebind(t *testing.T) {
	s := NewCacheStorage(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.SetSessionID(ctx, 7, "old"))
	require.NoError(t, s.SetSessionID(ctx, 7, "new"))

	got, err := s.GetSessionID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}
