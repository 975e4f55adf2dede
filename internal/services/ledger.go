// Package services orchestrates domain-collection mutations and the
// optional audit-event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"netkas/internal/amqp"
	"netkas/internal/core"
	"netkas/internal/storage"
	"netkas/internal/store"
)

// Ledger owns the per-account collections. One Transactions/Customers
// instance is kept per username so concurrent requests for the same
// account serialize on the same lock.
type Ledger struct {
	kv    storage.KV
	audit *amqp.Client

	mu           sync.Mutex
	transactions map[string]*store.Transactions
	customers    map[string]*store.Customers
}

func NewLedger(kv storage.KV, audit *amqp.Client) *Ledger {
	return &Ledger{
		kv:           kv,
		audit:        audit,
		transactions: make(map[string]*store.Transactions),
		customers:    make(map[string]*store.Customers),
	}
}

func (l *Ledger) transactionsFor(username string) *store.Transactions {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.transactions[username]
	if !ok {
		t = store.NewTransactions(l.kv, username)
		l.transactions[username] = t
	}
	return t
}

func (l *Ledger) customersFor(username string) *store.Customers {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.customers[username]
	if !ok {
		c = store.NewCustomers(l.kv, username)
		l.customers[username] = c
	}
	return c
}

func (l *Ledger) ListTransactions(ctx context.Context, username string) ([]core.Transaction, error) {
	return l.transactionsFor(username).List(ctx)
}

func (l *Ledger) AddTransaction(ctx context.Context, username string, tx core.Transaction) (core.Transaction, error) {
	created, err := l.transactionsFor(username).Add(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	l.publishAudit(ctx, "transactions", "add", created.ID, username)
	return created, nil
}

func (l *Ledger) UpdateTransaction(ctx context.Context, username string, tx core.Transaction) error {
	if err := l.transactionsFor(username).Update(ctx, tx); err != nil {
		return err
	}
	l.publishAudit(ctx, "transactions", "update", tx.ID, username)
	return nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, username, id string) error {
	if err := l.transactionsFor(username).Delete(ctx, id); err != nil {
		return err
	}
	l.publishAudit(ctx, "transactions", "delete", id, username)
	return nil
}

func (l *Ledger) ListCustomers(ctx context.Context, username string) ([]core.Customer, error) {
	return l.customersFor(username).List(ctx)
}

func (l *Ledger) AddCustomer(ctx context.Context, username string, c core.Customer) (core.Customer, error) {
	created, err := l.customersFor(username).Add(ctx, c)
	if err != nil {
		return core.Customer{}, err
	}
	l.publishAudit(ctx, "customers", "add", created.ID, username)
	return created, nil
}

func (l *Ledger) UpdateCustomer(ctx context.Context, username string, c core.Customer) error {
	if err := l.customersFor(username).Update(ctx, c); err != nil {
		return err
	}
	l.publishAudit(ctx, "customers", "update", c.ID, username)
	return nil
}

func (l *Ledger) DeleteCustomer(ctx context.Context, username, id string) error {
	if err := l.customersFor(username).Delete(ctx, id); err != nil {
		return err
	}
	l.publishAudit(ctx, "customers", "delete", id, username)
	return nil
}

// publishAudit never fails the mutation; the record is already saved.
func (l *Ledger) publishAudit(ctx context.Context, collection, action, id, username string) {
	if l.audit == nil {
		return
	}
	event := amqp.NewAuditEvent(collection, action, id, username)
	if err := l.audit.PublishAuditEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish audit event",
			"collection", collection, "action", action, "record_id", id, "error", err)
	}
}

// Close releases storage and broker resources.
func (l *Ledger) Close() error {
	var errs []error

	if l.kv != nil {
		if err := l.kv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if l.audit != nil {
		if err := l.audit.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger: %v", errs)
	}
	return nil
}
