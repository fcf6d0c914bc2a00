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

// ProjectCardService manages project cards within decks.
type ProjectCardService struct {
	db       *sql.DB
	queries  *store.Queries
	notifier *Notifier
	cached   *cache.TypedCache[[]model.ProjectCard]
}

// NewProjectCardService creates a ProjectCardService.
func NewProjectCardService(db *sql.DB, notifier *Notifier, c cache.Cacher, ttl time.Duration) *ProjectCardService {
	return &ProjectCardService{
		db:       db,
		queries:  store.New(db),
		notifier: notifier,
		cached:   cache.NewTypedCache[[]model.ProjectCard](c, ttl),
	}
}

// List returns the cards of one deck, read through the cache.
func (s *ProjectCardService) List(ctx context.Context, slug, deckTitle string) ([]model.ProjectCard, error) {
	cards, err := s.cached.GetOrSet(ctx, cache.ProjectsKey(slug, deckTitle), func() (*[]model.ProjectCard, error) {
		c, err := s.queries.ListProjectCards(ctx, slug, deckTitle)
		if err != nil {
			return nil, err
		}
		return &c, nil
	})
	if err != nil {
		return nil, err
	}
	return *cards, nil
}

// Get returns one card by id.
func (s *ProjectCardService) Get(ctx context.Context, id int64) (model.ProjectCard, error) {
	return s.queries.GetProjectCardByID(ctx, id)
}

// Create adds a card and invalidates its project page on commit.
func (s *ProjectCardService) Create(ctx context.Context, arg store.CreateProjectCardParams) (model.ProjectCard, error) {
	now := time.Now()
	arg.CreatedAt = now
	arg.UpdatedAt = now

	var created model.ProjectCard
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		var err error
		created, err = q.CreateProjectCard(ctx, arg)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.ProjectCardChanged(ctx, created.Owner, created.ID, created.DeckTitle)
		})
		return nil
	})
	return created, err
}

// Update rewrites a card's fields and invalidates its project page on
// commit.
func (s *ProjectCardService) Update(ctx context.Context, arg store.UpdateProjectCardParams) (model.ProjectCard, error) {
	arg.UpdatedAt = time.Now()

	var updated model.ProjectCard
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		if _, err := q.GetProjectCardByID(ctx, arg.ID); err != nil {
			return err
		}
		if err := q.UpdateProjectCard(ctx, arg); err != nil {
			return err
		}

		var err error
		updated, err = q.GetProjectCardByID(ctx, arg.ID)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.ProjectCardChanged(ctx, updated.Owner, updated.ID, updated.DeckTitle)
		})
		return nil
	})
	return updated, err
}

// Delete removes a card. The linked project page row goes with it via
// the foreign key cascade.
func (s *ProjectCardService) Delete(ctx context.Context, id int64) error {
	return store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		card, err := q.GetProjectCardByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeleteProjectCard(ctx, id); err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.ProjectCardChanged(ctx, card.Owner, card.ID, card.DeckTitle)
		})
		return nil
	})
}
