// Package storage provides the key-value persistence adapter. All
// application state lives under logical keys (users, sessionUser,
// transactions_{username}, customers_{username}) with JSON values.
package storage

import (
	"context"
	"fmt"
)

// KV is the persistence contract: synchronous get/set/delete of raw
// strings by logical key. No transactions, no schema versioning.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CollectionKey namespaces a per-account collection, e.g.
// "transactions_amin".
func CollectionKey(collection, username string) string {
	return collection + "_" + username
}

// Config selects and configures a backend.
type Config struct {
	Backend      string // "sqlite" or "memory"
	SQLiteDBPath string
}

// Open builds the configured KV backend.
func Open(cfg Config) (KV, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteKV(cfg.SQLiteDBPath)
	case "memory", "":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
