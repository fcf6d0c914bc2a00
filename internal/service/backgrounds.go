// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
)

// BackgroundService manages per-tenant theme data.
type BackgroundService struct {
	db       *sql.DB
	queries  *store.Queries
	notifier *Notifier
	cached   *cache.TypedCache[model.Background]
}

// NewBackgroundService creates a BackgroundService.
func NewBackgroundService(db *sql.DB, notifier *Notifier, c cache.Cacher, ttl time.Duration) *BackgroundService {
	return &BackgroundService{
		db:       db,
		queries:  store.New(db),
		notifier: notifier,
		cached:   cache.NewTypedCache[model.Background](c, ttl),
	}
}

// GetByOwner returns the background of one tenant, read through the
// cache.
func (s *BackgroundService) GetByOwner(ctx context.Context, slug string) (model.Background, error) {
	bg, err := s.cached.GetOrSet(ctx, cache.BackgroundKey(slug), func() (*model.Background, error) {
		b, err := s.queries.GetBackgroundByOwner(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &b, nil
	})
	if err != nil {
		return model.Background{}, err
	}
	return *bg, nil
}

// Create adds a background for a tenant. One row per owner is enforced
// by the unique constraint.
func (s *BackgroundService) Create(ctx context.Context, arg store.CreateBackgroundParams) (model.Background, error) {
	now := time.Now()
	arg.CreatedAt = now
	arg.UpdatedAt = now

	var created model.Background
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		var err error
		created, err = q.CreateBackground(ctx, arg)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.BackgroundChanged(ctx, created.Owner)
		})
		return nil
	})
	return created, err
}

// Update rewrites a background's fields and invalidates its owner on
// commit.
func (s *BackgroundService) Update(ctx context.Context, arg store.UpdateBackgroundParams) (model.Background, error) {
	arg.UpdatedAt = time.Now()

	var updated model.Background
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		if _, err := q.GetBackgroundByID(ctx, arg.ID); err != nil {
			return err
		}
		if err := q.UpdateBackground(ctx, arg); err != nil {
			return err
		}

		var err error
		updated, err = q.GetBackgroundByID(ctx, arg.ID)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.BackgroundChanged(ctx, updated.Owner)
		})
		return nil
	})
	return updated, err
}

// Delete removes a background and invalidates its owner on commit.
func (s *BackgroundService) Delete(ctx context.Context, id int64) error {
	return store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		bg, err := q.GetBackgroundByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeleteBackground(ctx, id); err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.BackgroundChanged(ctx, bg.Owner)
		})
		return nil
	})
}
