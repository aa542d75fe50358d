package repository

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is a thread-safe in-process Store. Entries never expire.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Add(_ context.Context, key, value string) (bool, error) {
	if err := s.cache.Add(key, value, cache.NoExpiration); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// Size returns the number of stored entries.
func (s *MemoryStore) Size() int {
	return s.cache.ItemCount()
}
