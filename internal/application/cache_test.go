package application

import (
	"context"
	"testing"

	"georeview/internal/models"
	"georeview/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIDStorageKey(t *testing.T) {
	assert.Equal(t, "georeview_duel-abc", MatchID("duel-abc").StorageKey())
}

func TestReviewCacheIsWriteOnce(t *testing.T) {
	ctx := context.Background()
	cache := NewReviewCache(repository.NewMemoryStore())
	id := MatchID("m1")

	_, found, err := cache.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	first := models.ReviewReport{Rounds: []models.RoundReview{reviewFor(1)}}
	entry, added, err := cache.Put(ctx, id, first)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, first, entry.Report)

	second := models.ReviewReport{Rounds: []models.RoundReview{reviewFor(1), reviewFor(2)}}
	_, added, err = cache.Put(ctx, id, second)
	require.NoError(t, err)
	assert.False(t, added)

	got, found, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first, got.Report)
	assert.Equal(t, entry.Raw, got.Raw)

	require.NoError(t, cache.Forget(ctx, id))
	_, found, err = cache.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReviewCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, MatchID("m1").StorageKey(), "{not json"))

	_, found, err := NewReviewCache(store).Get(ctx, "m1")
	assert.Error(t, err)
	assert.False(t, found)
}
