package repository

import (
	"context"
	"database/sql"
)

// Store is a flat key to string mapping. It backs both the credential list
// and cached review reports.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes or overwrites a value.
	Set(ctx context.Context, key, value string) error
	// Add writes a value only if the key is absent and reports whether it
	// did. Existing values are never replaced.
	Add(ctx context.Context, key, value string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Repository struct {
	Store
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Store: NewKVPostgres(db),
		db:    db,
	}
}

func NewMemoryRepository() *Repository {
	return &Repository{
		Store: NewMemoryStore(),
	}
}

func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
