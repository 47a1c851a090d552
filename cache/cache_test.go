package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateKeyOrderInvariant(t *testing.T) {
	a := map[string]interface{}{}
	a["quarter"] = "Q1"
	a["budget"] = 800
	a["climate"] = "moderate"
	a["brands"] = []string{"Everlane", "Aritzia"}

	b := map[string]interface{}{}
	b["brands"] = []string{"Everlane", "Aritzia"}
	b["climate"] = "moderate"
	b["budget"] = 800
	b["quarter"] = "Q1"

	keyA := GenerateKey("capsule", a)
	keyB := GenerateKey("capsule", b)
	if keyA != keyB {
		t.Errorf("Expected identical keys, got %s and %s", keyA, keyB)
	}
	if !strings.HasPrefix(keyA, "capsule:") {
		t.Errorf("Expected method prefix, got %s", keyA)
	}
}

func TestGenerateKeyDiffers(t *testing.T) {
	k1 := GenerateKey("capsule", map[string]interface{}{"budget": 800})
	k2 := GenerateKey("capsule", map[string]interface{}{"budget": 900})
	if k1 == k2 {
		t.Error("Expected different params to produce different keys")
	}
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("Expected hit with 'v', got %q, %v", got, ok)
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestMemoryLazyExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"), time.Hour)

	now = now.Add(59 * time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("Expected entry to be alive before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("Expected entry to expire after TTL")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
	if stats.TotalKeys != 0 {
		t.Errorf("Expected expired key removed, got %d keys", stats.TotalKeys)
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set(context.Background(), "k", []byte("v"), time.Hour)
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Error("Expected Noop cache to never hit")
	}
}
