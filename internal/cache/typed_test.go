package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testDeck struct {
	Title string `json:"title"`
	Owner string `json:"owner"`
}

func TestTypedCache_RoundTrip(t *testing.T) {
	base := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = base.Close() }()

	c := NewTypedCache[testDeck](base, time.Hour)
	ctx := context.Background()

	if err := c.Set(ctx, DeckKey("alice"), &testDeck{Title: "Work", Owner: "alice"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, DeckKey("alice"))
	if !ok {
		t.Fatal("Get: cache miss after Set")
	}
	if got.Title != "Work" || got.Owner != "alice" {
		t.Errorf("got %+v, want Work/alice", got)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	base := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = base.Close() }()

	c := NewTypedCache[testDeck](base, time.Hour)
	ctx := context.Background()
	calls := 0

	load := func() (*testDeck, error) {
		calls++
		return &testDeck{Title: "Work", Owner: "alice"}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := c.GetOrSet(ctx, DeckKey("alice"), load)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if got.Title != "Work" {
			t.Errorf("got %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestTypedCache_GetOrSet_ErrorNotCached(t *testing.T) {
	base := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = base.Close() }()

	c := NewTypedCache[testDeck](base, time.Hour)
	ctx := context.Background()
	sentinel := errors.New("db down")

	_, err := c.GetOrSet(ctx, "k", func() (*testDeck, error) { return nil, sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("GetOrSet returned %v, want sentinel", err)
	}

	if has := c.Has(ctx, "k"); has {
		t.Error("failed load was cached")
	}
}
