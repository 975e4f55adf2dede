package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"netkas/internal/core"
	"netkas/internal/storage"
)

// Customers is one account's subscriber collection.
type Customers struct {
	collection[core.Customer]
	username string
}

func NewCustomers(kv storage.KV, username string) *Customers {
	c := &Customers{username: username}
	c.kv = kv
	c.key = storage.CollectionKey("customers", username)
	return c
}

func (c *Customers) Username() string { return c.username }

func (c *Customers) List(ctx context.Context) ([]core.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Customers) Add(ctx context.Context, cust core.Customer) (core.Customer, error) {
	if err := cust.Validate(); err != nil {
		return core.Customer{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return core.Customer{}, fmt.Errorf("load customers: %w", err)
	}
	cust.ID = uuid.NewString()
	items = append(items, cust)
	if err := c.save(ctx, items); err != nil {
		return core.Customer{}, fmt.Errorf("save customers: %w", err)
	}
	return cust, nil
}

func (c *Customers) Update(ctx context.Context, cust core.Customer) error {
	if err := cust.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	found := false
	for i := range items {
		if items[i].ID == cust.ID {
			items[i] = cust
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	if err := c.save(ctx, items); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	return nil
}

// Delete removes exactly the record with matching ID; unknown IDs are a
// successful no-op.
func (c *Customers) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := c.save(ctx, kept); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	return nil
}
