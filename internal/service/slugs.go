// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
	"github.com/shmooz/shmooz-go/internal/util"
)

// ErrInvalidSlug rejects slugs that are not lowercase kebab-case.
var ErrInvalidSlug = errors.New("invalid slug format")

// ErrSlugTaken rejects a create or rename onto an existing slug entry.
var ErrSlugTaken = errors.New("slug already exists")

// RenameConflictError reports a rename blocked because both tenants own
// pages in the same categories. Merging them would violate the one page
// per (owner, category) rule.
type RenameConflictError struct {
	OldSlug    string
	NewSlug    string
	Categories []string
}

func (e *RenameConflictError) Error() string {
	return fmt.Sprintf("cannot rename %s to %s: page categories %v exist under both slugs",
		e.OldSlug, e.NewSlug, e.Categories)
}

// SlugService manages tenant identities and the rename cascade.
type SlugService struct {
	db       *sql.DB
	queries  *store.Queries
	notifier *Notifier
}

// NewSlugService creates a SlugService.
func NewSlugService(db *sql.DB, notifier *Notifier) *SlugService {
	return &SlugService{db: db, queries: store.New(db), notifier: notifier}
}

// List returns all tenant slugs.
func (s *SlugService) List(ctx context.Context) ([]model.SlugEntry, error) {
	return s.queries.ListSlugs(ctx)
}

// Get returns one slug entry by id.
func (s *SlugService) Get(ctx context.Context, id int64) (model.SlugEntry, error) {
	return s.queries.GetSlugByID(ctx, id)
}

// Create registers a new tenant slug. On commit it fans invalidations
// out over everything the new identity can serve.
func (s *SlugService) Create(ctx context.Context, slug string) (model.SlugEntry, error) {
	if !util.IsValidSlug(slug) {
		return model.SlugEntry{}, ErrInvalidSlug
	}

	var created model.SlugEntry
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		exists, err := q.SlugExists(ctx, slug)
		if err != nil {
			return err
		}
		if exists {
			return ErrSlugTaken
		}

		created, err = q.CreateSlug(ctx, slug, time.Now())
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.SlugCreated(ctx, slug)
		})
		return nil
	})
	return created, err
}

// Rename changes a tenant slug and cascades the new value across every
// owner column in one transaction. Renaming a slug to itself is a no-op.
//
// The conflict check covers pages only: a page category present under
// both the old and the new slug would collide on the unique
// (owner, category) constraint, so the rename is refused with a
// RenameConflictError before anything is written.
func (s *SlugService) Rename(ctx context.Context, id int64, newSlug string) (model.SlugEntry, error) {
	if !util.IsValidSlug(newSlug) {
		return model.SlugEntry{}, ErrInvalidSlug
	}

	var renamed model.SlugEntry
	err := store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		entry, err := q.GetSlugByID(ctx, id)
		if err != nil {
			return err
		}
		oldSlug := entry.Slug

		if oldSlug == newSlug {
			renamed = entry
			return nil
		}

		if exists, err := q.SlugExists(ctx, newSlug); err != nil {
			return err
		} else if exists {
			return ErrSlugTaken
		}

		if conflicts, err := pageConflicts(ctx, q, oldSlug, newSlug); err != nil {
			return err
		} else if len(conflicts) > 0 {
			return &RenameConflictError{OldSlug: oldSlug, NewSlug: newSlug, Categories: conflicts}
		}

		now := time.Now()
		if err := q.UpdateSlugName(ctx, id, newSlug, now); err != nil {
			return err
		}
		if _, err := q.UpdateDeckOwner(ctx, oldSlug, newSlug, now); err != nil {
			return err
		}
		if _, err := q.UpdateProjectCardOwner(ctx, oldSlug, newSlug, now); err != nil {
			return err
		}
		if _, err := q.UpdateBackgroundOwner(ctx, oldSlug, newSlug, now); err != nil {
			return err
		}
		if _, err := q.UpdatePageOwner(ctx, oldSlug, newSlug, now); err != nil {
			return err
		}

		renamed, err = q.GetSlugByID(ctx, id)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.SlugRenamed(ctx, oldSlug, newSlug)
		})
		return nil
	})
	return renamed, err
}

// Delete removes a tenant slug entry. Content rows keep their owner
// value and become unreachable until a slug with the same value is
// recreated.
func (s *SlugService) Delete(ctx context.Context, id int64) error {
	return store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		entry, err := q.GetSlugByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeleteSlug(ctx, id); err != nil {
			return err
		}

		slug := entry.Slug
		h.OnCommit(func(ctx context.Context) {
			s.notifier.SlugDeleted(ctx, slug)
		})
		return nil
	})
}

// pageConflicts returns the page categories present under both slugs.
func pageConflicts(ctx context.Context, q *store.Queries, oldSlug, newSlug string) ([]string, error) {
	oldCategories, err := q.ListPageCategoriesByOwner(ctx, oldSlug)
	if err != nil {
		return nil, err
	}
	newCategories, err := q.ListPageCategoriesByOwner(ctx, newSlug)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(oldCategories))
	for _, c := range oldCategories {
		seen[c] = true
	}

	var conflicts []string
	for _, c := range newCategories {
		if seen[c] {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts, nil
}
