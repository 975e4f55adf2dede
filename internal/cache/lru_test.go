package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("expected hit, got %q ok=%v", v, ok)
	}

	c.Set("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" is the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a retained")
	}
	if c.Size() != 2 {
		t.Fatalf("unexpected size: %d", c.Size())
	}
}

func TestLRUTTL(t *testing.T) {
	c := NewLRU[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry not removed, size=%d", c.Size())
	}
}

func TestLRUCleanExpired(t *testing.T) {
	c := NewLRU[int](10, 25*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(100 * time.Millisecond)
	c.Set("fresh", 3)

	if cleaned := c.CleanExpired(); cleaned != 2 {
		t.Fatalf("expected 2 cleaned, got %d", cleaned)
	}
	if c.Size() != 1 {
		t.Fatalf("unexpected size after cleanup: %d", c.Size())
	}
}
