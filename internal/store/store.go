// Package store implements the per-account domain collections on top of
// the key-value persistence adapter. Every mutation rewrites the full
// JSON list for its key, so a restart always sees the last completed
// write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"netkas/internal/storage"
)

var ErrNotFound = errors.New("record not found")

// collection holds one JSON-encoded list under a single KV key.
type collection[T any] struct {
	mu  sync.Mutex
	kv  storage.KV
	key string
}

// load decodes the stored list. A decode failure is recovered to an
// empty collection with a logged warning rather than propagated.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Stored collection is corrupt, starting empty",
			"key", c.key, "error", err)
		return nil, nil
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key, string(raw))
}
