package storage

import (
	"context"
	"testing"
)

func TestCollectionKey(t *testing.T) {
	cases := []struct {
		collection, username, want string
	}{
		{"transactions", "amin", "transactions_amin"},
		{"customers", "budi", "customers_budi"},
	}
	for _, tc := range cases {
		if got := CollectionKey(tc.collection, tc.username); got != tc.want {
			t.Fatalf("CollectionKey(%q, %q) = %q, want %q", tc.collection, tc.username, got, tc.want)
		}
	}
}

func TestMemoryKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "users", `[{"id":"u1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "users")
	if err != nil || !ok || v != `[{"id":"u1"}]` {
		t.Fatalf("get after set: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := kv.Set(ctx, "users", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "users")
	if v != `[]` {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	if err := kv.Delete(ctx, "users"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "users"); ok {
		t.Fatal("expected key gone after delete")
	}

	// Deleting a missing key is a no-op.
	if err := kv.Delete(ctx, "users"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	kv, err := Open(Config{Backend: "memory"})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := kv.(*MemoryKV); !ok {
		t.Fatalf("expected MemoryKV, got %T", kv)
	}

	if _, err := Open(Config{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(t.TempDir() + "/netkas.db")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer kv.Close()

	if err := kv.Set(ctx, "transactions_amin", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "transactions_amin", `[{"id":"t1"}]`); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	v, ok, err := kv.Get(ctx, "transactions_amin")
	if err != nil || !ok || v != `[{"id":"t1"}]` {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := kv.Delete(ctx, "transactions_amin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "transactions_amin"); ok {
		t.Fatal("expected key gone after delete")
	}
}
