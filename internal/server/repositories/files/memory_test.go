package files

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := r.GetByID(ctx, "u1|a")
	require.ErrorIs(t, err, common.ErrorNotFound)

	f, err := r.CreateIfAbsent(ctx, models.NewFile("u1", "a", 10, 2, models.Envelope{}, now))
	require.NoError(t, err)
	assert.Equal(t, models.StateNew, f.State())

	// a second create keeps the first record
	again, err := r.CreateIfAbsent(ctx, models.NewFile("u1", "a", 99, 5, models.Envelope{}, now))
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.SizeBytes)

	ok, err := r.SetStorageObjectID(ctx, f.ID, "obj-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.SetStorageObjectID(ctx, f.ID, "obj-2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.MarkUploaded(ctx, f.ID, 2, now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.MarkUploaded(ctx, f.ID, 2, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.SetDownloadGrant(ctx, f.ID, "tok", now.Add(time.Hour)))

	got, err := r.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "obj-1", got.StorageObjectID)
	assert.Equal(t, models.StateUploaded, got.State())
	assert.True(t, got.UploadedAt.Equal(now))
	assert.Equal(t, 2, got.PartsUploaded)
	assert.True(t, got.DownloadGrantValid(now))

	require.NoError(t, r.Delete(ctx, f.ID))
	require.NoError(t, r.Delete(ctx, f.ID))
	require.ErrorIs(t, r.SetDownloadGrant(ctx, f.ID, "tok", now), common.ErrorNotFound)
}

func TestMemoryRepository_ConcurrentAssignHasOneWinner(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	f, err := r.CreateIfAbsent(ctx, models.NewFile("u1", "a", 10, 2, models.Envelope{}, time.Now()))
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := r.SetStorageObjectID(ctx, f.ID, "obj"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	f, err := r.CreateIfAbsent(ctx, models.NewFile("u1", "a", 10, 1, models.Envelope{}, time.Now()))
	require.NoError(t, err)

	f.StorageObjectID = "mutated"

	got, err := r.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Empty(t, got.StorageObjectID)
}
