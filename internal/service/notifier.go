// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic layer: tenant slugs and
// their rename cascade, content CRUD with layout validation, and the
// cache invalidation dispatch that follows every committed write.
package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/store"
)

// Invalidator is the outbound invalidation surface the notifier
// dispatches to. Implemented by invalidate.Client.
type Invalidator interface {
	InvalidateDeck(ctx context.Context, slug string)
	InvalidateBackground(ctx context.Context, slug string)
	InvalidatePage(ctx context.Context, slug, category string)
	InvalidateProjectPage(ctx context.Context, projectID int64, slug string)
}

// Notifier maps entity changes to SSR invalidation calls and local cache
// drops. Every method is meant to run as a post-commit hook: by then the
// write is durable, so all failures are logged and swallowed.
type Notifier struct {
	inv     Invalidator
	cache   cache.Cacher
	queries *store.Queries
}

// NewNotifier creates a notifier over the invalidation client, the local
// cache, and a db-level query handle for slug fan-out lookups.
func NewNotifier(inv Invalidator, c cache.Cacher, db *sql.DB) *Notifier {
	return &Notifier{inv: inv, cache: c, queries: store.New(db)}
}

// DeckChanged handles a deck create, update, or delete.
func (n *Notifier) DeckChanged(ctx context.Context, slug string) {
	_ = n.cache.Delete(ctx, cache.DeckKey(slug))
	n.inv.InvalidateDeck(ctx, slug)
}

// BackgroundChanged handles a background create, update, or delete. The
// landing page renders both, so the deck cache is invalidated too.
func (n *Notifier) BackgroundChanged(ctx context.Context, slug string) {
	_ = n.cache.Delete(ctx, cache.BackgroundKey(slug))
	_ = n.cache.Delete(ctx, cache.DeckKey(slug))
	n.inv.InvalidateBackground(ctx, slug)
	n.inv.InvalidateDeck(ctx, slug)
}

// PageChanged handles a page write or delete. Fixed categories go out as
// page invalidations; a page linked to a project card additionally fires
// a project page invalidation.
func (n *Notifier) PageChanged(ctx context.Context, slug, category string, projectCardID sql.NullInt64) {
	_ = n.cache.Delete(ctx, cache.PageKey(slug, category))
	n.inv.InvalidatePage(ctx, slug, category)
	if projectCardID.Valid {
		_ = n.cache.Delete(ctx, cache.ProjectPageKey(projectCardID.Int64))
		n.inv.InvalidateProjectPage(ctx, projectCardID.Int64, slug)
	}
}

// ProjectCardChanged handles a project card create, update, or delete.
func (n *Notifier) ProjectCardChanged(ctx context.Context, slug string, cardID int64, deckTitle string) {
	_ = n.cache.Delete(ctx, cache.ProjectPageKey(cardID))
	if deckTitle != "" {
		_ = n.cache.Delete(ctx, cache.ProjectsKey(slug, deckTitle))
	}
	n.inv.InvalidateProjectPage(ctx, cardID, slug)
}

// SlugCreated fans out over everything a new tenant identity can serve:
// deck, background, and each page category already stored under it.
func (n *Notifier) SlugCreated(ctx context.Context, slug string) {
	slog.Info("new slug created, invalidating cache", "slug", slug)
	_ = n.cache.Delete(ctx, cache.SlugsKey)
	n.invalidateOwner(ctx, slug)
}

// SlugDeleted drops everything served under a removed tenant identity.
func (n *Notifier) SlugDeleted(ctx context.Context, slug string) {
	slog.Info("slug deleted, invalidating cache", "slug", slug)
	_ = n.cache.Delete(ctx, cache.SlugsKey)
	n.invalidateOwner(ctx, slug)
}

// SlugRenamed invalidates both identities of a renamed tenant so stale
// entries under the old slug die alongside fresh ones under the new.
func (n *Notifier) SlugRenamed(ctx context.Context, oldSlug, newSlug string) {
	slog.Info("slug renamed, invalidating both identities", "old", oldSlug, "new", newSlug)
	_ = n.cache.Delete(ctx, cache.SlugsKey)
	cache.DropOwner(ctx, n.cache, oldSlug)
	n.invalidateOwner(ctx, oldSlug)
	n.invalidateOwner(ctx, newSlug)
}

// invalidateOwner sends deck, background, and per-category page
// invalidations for one slug. Project categories are filtered by the
// client's fixed-category gate.
func (n *Notifier) invalidateOwner(ctx context.Context, slug string) {
	cache.DropOwner(ctx, n.cache, slug)
	n.inv.InvalidateDeck(ctx, slug)
	n.inv.InvalidateBackground(ctx, slug)

	categories, err := n.queries.ListPageCategoriesByOwner(ctx, slug)
	if err != nil {
		slog.Error("listing page categories for invalidation", "slug", slug, "error", err)
		return
	}
	for _, category := range categories {
		n.inv.InvalidatePage(ctx, slug, category)
	}
}
