package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", 42, time.Hour))

	userID, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStore_GetExpired(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", 42, -time.Second))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStore_TouchExtendsExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", 42, 50*time.Millisecond))
	require.NoError(t, store.Touch(ctx, "sid-1", time.Hour))

	time.Sleep(60 * time.Millisecond)

	userID, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", 42, time.Hour))
	require.NoError(t, store.Delete(ctx, "sid-1"))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManager_CreateResolveDestroy(t *testing.T) {
	store := NewMemoryStore()
	manager := NewManager(store, time.Hour)
	defer manager.Close()
	ctx := context.Background()

	sid, err := manager.Create(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	userID, err := manager.Resolve(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	require.NoError(t, manager.Destroy(ctx, sid))

	_, err = manager.Resolve(ctx, sid)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManager_DestroyEmptySID(t *testing.T) {
	store := NewMemoryStore()
	manager := NewManager(store, time.Hour)
	defer manager.Close()

	assert.NoError(t, manager.Destroy(context.Background(), ""))
}
