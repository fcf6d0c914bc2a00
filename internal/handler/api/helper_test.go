// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/invalidate"
	"github.com/shmooz/shmooz-go/internal/service"
	"github.com/shmooz/shmooz-go/internal/store"
)

const testAdminKey = "test-secret-key-32-bytes-long!!!"

// recordingInvalidator records outbound invalidation calls for assertions.
type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (f *recordingInvalidator) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *recordingInvalidator) InvalidateDeck(_ context.Context, slug string) {
	f.record("deck:" + slug)
}

func (f *recordingInvalidator) InvalidateBackground(_ context.Context, slug string) {
	f.record("background:" + slug)
}

func (f *recordingInvalidator) InvalidatePage(_ context.Context, slug, category string) {
	f.record(fmt.Sprintf("page:%s:%s", slug, category))
}

func (f *recordingInvalidator) InvalidateProjectPage(_ context.Context, projectID int64, slug string) {
	f.record(fmt.Sprintf("project_page:%d:%s", projectID, slug))
}

func (f *recordingInvalidator) has(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

// newTestRouter wires the full route tree over a temp database, a memory
// cache, and a recording invalidator.
func newTestRouter(t *testing.T) (chi.Router, *recordingInvalidator) {
	t.Helper()

	f, err := os.CreateTemp("", "shmooz-api-*.db")
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

	inv := &recordingInvalidator{}
	notifier := service.NewNotifier(inv, c, db)
	events := service.NewEventService(db)
	ttl := time.Hour

	h := NewHandler(Deps{
		Slugs:       service.NewSlugService(db, notifier),
		Decks:       service.NewDeckService(db, notifier, c, ttl),
		Cards:       service.NewProjectCardService(db, notifier, c, ttl),
		Backgrounds: service.NewBackgroundService(db, notifier, c, ttl),
		Pages:       service.NewPageService(db, notifier, c, ttl),
		Media:       service.NewMediaService(db, t.TempDir()),
		Resync:      service.NewResyncService(db, notifier, c, events),
		Events:      events,
		Client:      invalidate.NewClient(invalidate.Options{URL: "http://frontend:4000/invalidate", AdminKey: testAdminKey}),
		Cache:       c,
	})

	return NewRouter(h, RouterConfig{
		AdminKey:       testAdminKey,
		AdminRateLimit: 1000,
		AdminRateBurst: 1000,
		IsDevelopment:  true,
	}), inv
}
