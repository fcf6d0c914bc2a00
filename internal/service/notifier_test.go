package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shmooz/shmooz-go/internal/cache"
)

func TestNotifier_BackgroundChangedAlsoInvalidatesDeck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.note.BackgroundChanged(ctx, "alice")

	if !env.inv.has("background:alice") || !env.inv.has("deck:alice") {
		t.Errorf("background change must invalidate background and deck, got %v", env.inv.snapshot())
	}
}

func TestNotifier_PageChangedDropsLocalCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	key := cache.PageKey("alice", "page_one")
	if err := env.cache.Set(ctx, key, []byte("stale"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	env.note.PageChanged(ctx, "alice", "page_one", sql.NullInt64{})

	if has, _ := env.cache.Has(ctx, key); has {
		t.Error("stale page entry survived PageChanged")
	}
	if !env.inv.has("page:alice:page_one") {
		t.Errorf("missing page invalidation, got %v", env.inv.snapshot())
	}
}

func TestNotifier_ProjectCardChanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	listKey := cache.ProjectsKey("alice", "Work")
	if err := env.cache.Set(ctx, listKey, []byte("stale"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	env.note.ProjectCardChanged(ctx, "alice", 7, "Work")

	if has, _ := env.cache.Has(ctx, listKey); has {
		t.Error("stale card list survived ProjectCardChanged")
	}
	if !env.inv.has("project_page:7:alice") {
		t.Errorf("missing project page invalidation, got %v", env.inv.snapshot())
	}
}
