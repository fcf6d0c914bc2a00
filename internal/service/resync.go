// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
)

// ResyncService re-sends invalidations for every tenant and clears the
// local cache. It runs on a schedule and on demand, as a safety net for
// invalidations lost while the breaker was open.
type ResyncService struct {
	queries  *store.Queries
	notifier *Notifier
	cache    cache.Cacher
	events   *EventService
}

// NewResyncService creates a ResyncService.
func NewResyncService(db *sql.DB, notifier *Notifier, c cache.Cacher, events *EventService) *ResyncService {
	return &ResyncService{
		queries:  store.New(db),
		notifier: notifier,
		cache:    c,
		events:   events,
	}
}

// Run clears the local cache and replays invalidations for all tenants.
// Returns the number of tenants processed.
func (s *ResyncService) Run(ctx context.Context) (int, error) {
	slugs, err := s.queries.ListSlugs(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Clear(ctx); err != nil {
		slog.Warn("clearing local cache during resync", "error", err)
	}

	for _, entry := range slugs {
		s.notifier.SlugCreated(ctx, entry.Slug)
	}

	slog.Info("cache resync completed", "tenants", len(slugs))
	_ = s.events.LogInfo(ctx, model.EventCategoryInvalidate, "cache resync completed",
		map[string]any{"tenants": len(slugs)})

	return len(slugs), nil
}
