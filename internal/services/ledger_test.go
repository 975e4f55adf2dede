package services

import (
	"context"
	"errors"
	"testing"

	"netkas/internal/core"
	"netkas/internal/storage"
	"netkas/internal/store"
)

func testTransaction() core.Transaction {
	return core.Transaction{
		Description:   "Tagihan PPPoE",
		Amount:        core.Money{Cents: 15000000},
		Type:          core.Income,
		Date:          core.NewDate(2024, 3, 5),
		PaymentMethod: core.Transfer,
	}
}

func TestLedgerTransactionFlow(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(storage.NewMemoryKV(), nil)

	created, err := l.AddTransaction(ctx, "amin", testTransaction())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	created.Description = "Tagihan Maret"
	if err := l.UpdateTransaction(ctx, "amin", created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := l.ListTransactions(ctx, "amin")
	if err != nil || len(got) != 1 || got[0].Description != "Tagihan Maret" {
		t.Fatalf("unexpected list: %+v err=%v", got, err)
	}

	if err := l.DeleteTransaction(ctx, "amin", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := l.ListTransactions(ctx, "amin"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestLedgerCustomerFlow(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(storage.NewMemoryKV(), nil)

	created, err := l.AddCustomer(ctx, "amin", core.Customer{
		Name:                 "Budi",
		SubscriptionCategory: core.SubscriptionPPPoE,
		Amount:               core.Money{Cents: 15000000},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	missing := created
	missing.ID = "nope"
	if err := l.UpdateCustomer(ctx, "amin", missing); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerIsolatesAccounts(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(storage.NewMemoryKV(), nil)

	if _, err := l.AddTransaction(ctx, "amin", testTransaction()); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := l.ListTransactions(ctx, "budi")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("transactions leaked across accounts: %+v", got)
	}
}

func TestLedgerCloseWithoutBroker(t *testing.T) {
	l := NewLedger(storage.NewMemoryKV(), nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
