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

// DeckService manages decks and serves the cached public deck reads.
type DeckService struct {
	db       *sql.DB
	queries  *store.Queries
	notifier *Notifier
	cached   *cache.TypedCache[[]model.Deck]
}

// NewDeckService creates a DeckService.
func NewDeckService(db *sql.DB, notifier *Notifier, c cache.Cacher, ttl time.Duration) *DeckService {
	return &DeckService{
		db:       db,
		queries:  store.New(db),
		notifier: notifier,
		cached:   cache.NewTypedCache[[]model.Deck](c, ttl),
	}
}

// ListByOwner returns the decks of one tenant, read through the cache.
func (s *DeckService) ListByOwner(ctx context.Context, slug string) ([]model.Deck, error) {
	decks, err := s.cached.GetOrSet(ctx, cache.DeckKey(slug), func() (*[]model.Deck, error) {
		d, err := s.queries.ListDecksByOwner(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	return *decks, nil
}

// Create adds a deck for a tenant and invalidates its deck cache on
// commit.
func (s *DeckService) Create(ctx context.Context, arg store.CreateDeckParams) (model.Deck, error) {
	now := time.Now()
	arg.CreatedAt = now
	arg.UpdatedAt = now

	var created model.Deck
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		var err error
		created, err = q.CreateDeck(ctx, arg)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.DeckChanged(ctx, created.Owner)
		})
		return nil
	})
	return created, err
}

// Update rewrites a deck's fields and invalidates its owner on commit.
func (s *DeckService) Update(ctx context.Context, arg store.UpdateDeckParams) (model.Deck, error) {
	arg.UpdatedAt = time.Now()

	var updated model.Deck
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		if _, err := q.GetDeckByID(ctx, arg.ID); err != nil {
			return err
		}
		if err := q.UpdateDeck(ctx, arg); err != nil {
			return err
		}

		var err error
		updated, err = q.GetDeckByID(ctx, arg.ID)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.DeckChanged(ctx, updated.Owner)
		})
		return nil
	})
	return updated, err
}

// Delete removes a deck and invalidates its owner on commit.
func (s *DeckService) Delete(ctx context.Context, id int64) error {
	return store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		deck, err := q.GetDeckByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeleteDeck(ctx, id); err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.DeckChanged(ctx, deck.Owner)
		})
		return nil
	})
}
