package store

import (
	"context"
	"errors"
	"testing"

	"netkas/internal/core"
	"netkas/internal/storage"
)

func subscriber(name string, cents int64) core.Customer {
	return core.Customer{
		Name:                 name,
		Phone:                "0812000000",
		Address:              "Kp. Korod",
		SubscriptionCategory: core.SubscriptionPPPoE,
		Amount:               core.Money{Cents: cents},
	}
}

func TestCustomersCRUD(t *testing.T) {
	ctx := context.Background()
	cs := NewCustomers(storage.NewMemoryKV(), "amin")

	created, err := cs.Add(ctx, subscriber("Budi", 15000000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	created.SubscriptionCategory = core.SubscriptionStatic
	if err := cs.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := cs.List(ctx)
	if len(got) != 1 || got[0].SubscriptionCategory != core.SubscriptionStatic {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := cs.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := cs.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestCustomersValidation(t *testing.T) {
	ctx := context.Background()
	cs := NewCustomers(storage.NewMemoryKV(), "amin")

	bad := subscriber("", 15000000)
	if _, err := cs.Add(ctx, bad); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	missing := subscriber("Budi", 15000000)
	missing.ID = "nope"
	if err := cs.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
