package application

import (
	"context"
	"encoding/json"
	"fmt"

	"georeview/internal/models"
	"georeview/internal/repository"
)

// MatchID identifies a match and derives the key its review is cached under.
type MatchID string

func (id MatchID) StorageKey() string {
	return reviewCachePrefix + "_" + string(id)
}

// CacheEntry is a stored review together with its exact stored form.
type CacheEntry struct {
	Report models.ReviewReport
	Raw    string
}

// ReviewCache persists validated reports. Entries are write-once: the
// first report stored for a match is the one served from then on.
type ReviewCache struct {
	store repository.Store
}

func NewReviewCache(store repository.Store) *ReviewCache {
	return &ReviewCache{store: store}
}

func (c *ReviewCache) Get(ctx context.Context, id MatchID) (CacheEntry, bool, error) {
	raw, found, err := c.store.Get(ctx, id.StorageKey())
	if err != nil || !found {
		return CacheEntry{}, false, err
	}

	var report models.ReviewReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return CacheEntry{}, false, fmt.Errorf("corrupt cache entry %s: %w", id.StorageKey(), err)
	}
	return CacheEntry{Report: report, Raw: raw}, true, nil
}

// Put stores the report unless one is already cached. It reports whether
// this call wrote the entry.
func (c *ReviewCache) Put(ctx context.Context, id MatchID, report models.ReviewReport) (CacheEntry, bool, error) {
	entry, err := newCacheEntry(report)
	if err != nil {
		return CacheEntry{}, false, err
	}
	added, err := c.store.Add(ctx, id.StorageKey(), entry.Raw)
	return entry, added, err
}

func newCacheEntry(report models.ReviewReport) (CacheEntry, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return CacheEntry{}, fmt.Errorf("failed to serialize review: %w", err)
	}
	return CacheEntry{Report: report, Raw: string(data)}, nil
}

// Forget drops a cached review so the next request generates a new one.
func (c *ReviewCache) Forget(ctx context.Context, id MatchID) error {
	return c.store.Delete(ctx, id.StorageKey())
}
