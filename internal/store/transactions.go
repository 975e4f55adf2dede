package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"netkas/internal/core"
	"netkas/internal/storage"
)

// Transactions is one account's transaction collection.
type Transactions struct {
	collection[core.Transaction]
	username string
}

func NewTransactions(kv storage.KV, username string) *Transactions {
	t := &Transactions{username: username}
	t.kv = kv
	t.key = storage.CollectionKey("transactions", username)
	return t
}

// Username returns the owning account's username.
func (t *Transactions) Username() string { return t.username }

func (t *Transactions) List(ctx context.Context) ([]core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// Add validates the record, assigns a fresh ID and writes the extended
// list through.
func (t *Transactions) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}
	tx.ID = uuid.NewString()
	items = append(items, tx)
	if err := t.save(ctx, items); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}
	return tx, nil
}

// Update replaces the record with matching ID.
func (t *Transactions) Update(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	found := false
	for i := range items {
		if items[i].ID == tx.ID {
			items[i] = tx
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	if err := t.save(ctx, items); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// Delete removes the record with matching ID. Deleting an unknown ID is
// a successful no-op.
func (t *Transactions) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	items, err := t.load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := t.save(ctx, kept); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}
