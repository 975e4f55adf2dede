package store

import (
	"context"
	"errors"
	"testing"

	"netkas/internal/core"
	"netkas/internal/storage"
)

func expense(desc string, cents int64) core.Transaction {
	return core.Transaction{
		Description:   desc,
		Amount:        core.Money{Cents: cents},
		Type:          core.Expense,
		Category:      core.CategoryOperational,
		Date:          core.NewDate(2024, 3, 10),
		PaymentMethod: core.Cash,
	}
}

func TestTransactionsAddListRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	ts := NewTransactions(kv, "amin")

	created, err := ts.Add(ctx, expense("internet", 50000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := ts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != created.ID || got[0].Description != "internet" {
		t.Fatalf("unexpected list: %+v", got)
	}

	// A fresh instance over the same KV sees the persisted record.
	got, err = NewTransactions(kv, "amin").List(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("reload: %+v err=%v", got, err)
	}
}

func TestTransactionsAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	ts := NewTransactions(storage.NewMemoryKV(), "amin")

	bad := expense("internet", 50000)
	bad.Category = ""
	if _, err := ts.Add(ctx, bad); !errors.Is(err, core.ErrCategoryMissing) {
		t.Fatalf("expected ErrCategoryMissing, got %v", err)
	}

	if got, _ := ts.List(ctx); len(got) != 0 {
		t.Fatalf("rejected record must not persist, got %+v", got)
	}
}

func TestTransactionsUpdate(t *testing.T) {
	ctx := context.Background()
	ts := NewTransactions(storage.NewMemoryKV(), "amin")

	created, err := ts.Add(ctx, expense("internet", 50000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated := created
	updated.Description = "internet kantor"
	updated.Amount.Cents = 75000
	if err := ts.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := ts.List(ctx)
	if len(got) != 1 || got[0].Description != "internet kantor" || got[0].Amount.Cents != 75000 {
		t.Fatalf("update not applied: %+v", got)
	}

	missing := updated
	missing.ID = "nope"
	if err := ts.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionsDelete(t *testing.T) {
	ctx := context.Background()
	ts := NewTransactions(storage.NewMemoryKV(), "amin")

	a, _ := ts.Add(ctx, expense("a", 1000))
	b, _ := ts.Add(ctx, expense("b", 2000))

	if err := ts.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := ts.List(ctx)
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected remainder: %+v", got)
	}

	// Unknown IDs delete as a successful no-op.
	if err := ts.Delete(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if got, _ := ts.List(ctx); len(got) != 1 {
		t.Fatalf("no-op delete changed the list: %+v", got)
	}
}

func TestTransactionsPerUserIsolation(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	amin := NewTransactions(kv, "amin")
	budi := NewTransactions(kv, "budi")

	if _, err := amin.Add(ctx, expense("internet", 50000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := budi.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("collections leaked across accounts: %+v", got)
	}
}

func TestTransactionsCorruptDataRecovers(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	_ = kv.Set(ctx, storage.CollectionKey("transactions", "amin"), "{not json")

	ts := NewTransactions(kv, "amin")
	got, err := ts.List(ctx)
	if err != nil {
		t.Fatalf("corrupt data must recover, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty recovery, got %+v", got)
	}

	// Writes proceed normally after recovery.
	if _, err := ts.Add(ctx, expense("internet", 50000)); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
	if got, _ := ts.List(ctx); len(got) != 1 {
		t.Fatalf("expected 1 record, got %+v", got)
	}
}
