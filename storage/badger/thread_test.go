package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/docrag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadCreateAndGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	thread, err := repos.Threads.Create(ctx, "asset-1")
	require.NoError(t, err)
	require.NotNil(t, thread)
	assert.NotEmpty(t, thread.ID)
	assert.Equal(t, "asset-1", thread.AssetID)
	assert.Equal(t, thread.CreatedAt, thread.LastUsed)

	got, err := repos.Threads.Get(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, thread.ID, got.ID)
	assert.Equal(t, thread.AssetID, got.AssetID)
}

func TestThreadCreate_UniqueIDs(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		thread, err := repos.Threads.Create(ctx, "asset-1")
		require.NoError(t, err)
		assert.False(t, seen[thread.ID])
		seen[thread.ID] = true
	}
}

func TestThreadGet_NotFound(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Threads.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestThreadTouch(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	thread, err := repos.Threads.Create(ctx, "asset-1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repos.Threads.Touch(ctx, thread.ID))

	got, err := repos.Threads.Get(ctx, thread.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUsed.After(thread.LastUsed))
	assert.True(t, got.CreatedAt.Equal(thread.CreatedAt))
}

func TestThreadTouch_UnknownIsNoop(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	assert.NoError(t, repos.Threads.Touch(context.Background(), "missing"))
}

func TestThreadList_FilterAndOrder(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	a1, err := repos.Threads.Create(ctx, "asset-a")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = repos.Threads.Create(ctx, "asset-b")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	a2, err := repos.Threads.Create(ctx, "asset-a")
	require.NoError(t, err)

	all, err := repos.Threads.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Touching the older thread moves it to the front
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repos.Threads.Touch(ctx, a1.ID))

	filtered, err := repos.Threads.List(ctx, "asset-a")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, a1.ID, filtered[0].ID)
	assert.Equal(t, a2.ID, filtered[1].ID)
}

func TestThreadList_Empty(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	threads, err := repos.Threads.List(context.Background(), "asset-x")
	require.NoError(t, err)
	assert.Empty(t, threads)
}
