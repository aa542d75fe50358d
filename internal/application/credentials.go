package application

import (
	"context"
	"fmt"
	"strings"

	"georeview/internal/models"
	"georeview/internal/repository"
)

// CredentialStore keeps the ordered API key pool in the persistent store.
type CredentialStore struct {
	store repository.Store
}

func NewCredentialStore(store repository.Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// Load returns the pool in order. A missing entry is an empty pool.
func (c *CredentialStore) Load(ctx context.Context) ([]string, error) {
	raw, found, err := c.store.Get(ctx, credentialsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if !found {
		return nil, nil
	}
	return ParseCredentials(raw), nil
}

// Save replaces the pool after validating it.
func (c *CredentialStore) Save(ctx context.Context, keys []string) error {
	if err := ValidateCredentials(keys); err != nil {
		return err
	}
	return c.store.Set(ctx, credentialsKey, strings.Join(keys, credentialSeparator))
}

// Seed stores keys only when no pool exists yet.
func (c *CredentialStore) Seed(ctx context.Context, keys []string) (bool, error) {
	if len(keys) == 0 {
		return false, nil
	}
	existing, err := c.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := c.Save(ctx, keys); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes the pool; reviews fail until /setup runs again.
func (c *CredentialStore) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, credentialsKey)
}

// ValidateCredentials requires at least one key, each of the expected
// length and none repeated.
func ValidateCredentials(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: at least one key is required", models.ErrInvalidCredentials)
	}
	seen := make(map[string]bool, len(keys))
	for i, k := range keys {
		if len(k) != apiKeyLength {
			return fmt.Errorf("%w: key %d must be %d characters, got %d", models.ErrInvalidCredentials, i+1, apiKeyLength, len(k))
		}
		if seen[k] {
			return fmt.Errorf("%w: key %d is a duplicate", models.ErrInvalidCredentials, i+1)
		}
		seen[k] = true
	}
	return nil
}

// MaskCredential hides all but the last four characters of a key.
func MaskCredential(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
