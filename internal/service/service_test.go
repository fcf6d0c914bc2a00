package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/store"
)

// fakeInvalidator records outbound invalidation calls in order.
type fakeInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeInvalidator) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeInvalidator) InvalidateDeck(_ context.Context, slug string) {
	f.record("deck:" + slug)
}

func (f *fakeInvalidator) InvalidateBackground(_ context.Context, slug string) {
	f.record("background:" + slug)
}

func (f *fakeInvalidator) InvalidatePage(_ context.Context, slug, category string) {
	f.record(fmt.Sprintf("page:%s:%s", slug, category))
}

func (f *fakeInvalidator) InvalidateProjectPage(_ context.Context, projectID int64, slug string) {
	f.record(fmt.Sprintf("project_page:%d:%s", projectID, slug))
}

func (f *fakeInvalidator) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeInvalidator) has(call string) bool {
	for _, c := range f.snapshot() {
		if c == call {
			return true
		}
	}
	return false
}

// testEnv wires a temp database, memory cache, and fake invalidator.
type testEnv struct {
	db    *sql.DB
	cache cache.Cacher
	inv   *fakeInvalidator
	note  *Notifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	f, err := os.CreateTemp("", "shmooz-service-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })

	inv := &fakeInvalidator{}
	return &testEnv{
		db:    db,
		cache: c,
		inv:   inv,
		note:  NewNotifier(inv, c, db),
	}
}
