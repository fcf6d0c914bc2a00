// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/layout"
	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
)

// ErrUnknownCategory rejects a page write whose category is neither a
// fixed category nor backed by a project card.
var ErrUnknownCategory = errors.New("unknown page category")

// PageService manages page layout documents. Every write passes the
// layout gate first; an invalid document is rejected whole and nothing
// is stored.
type PageService struct {
	db       *sql.DB
	queries  *store.Queries
	notifier *Notifier
	cached   *cache.TypedCache[model.Page]
}

// NewPageService creates a PageService.
func NewPageService(db *sql.DB, notifier *Notifier, c cache.Cacher, ttl time.Duration) *PageService {
	return &PageService{
		db:       db,
		queries:  store.New(db),
		notifier: notifier,
		cached:   cache.NewTypedCache[model.Page](c, ttl),
	}
}

// UploadParams describes a page write. Exactly one of Category (a fixed
// category) or ProjectCardID must identify the target.
type UploadParams struct {
	Owner         string
	Category      string
	ProjectCardID int64
	Content       json.RawMessage
}

// decodeContent parses the raw document body. An absent body or one
// that is not JSON is the same class of failure as a structurally
// invalid document: the write is rejected and nothing is stored.
func decodeContent(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, &layout.Error{Kind: layout.KindMissing, Field: "content"}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &layout.Error{Kind: layout.KindSchema, Field: "content", Reason: "content is not valid JSON"}
	}
	return doc, nil
}

// Upload validates and stores one page layout document. The category of
// a project page is derived from its card id, never taken from input.
func (s *PageService) Upload(ctx context.Context, arg UploadParams) (model.Page, error) {
	doc, err := decodeContent(arg.Content)
	if err != nil {
		return model.Page{}, err
	}
	if err := layout.ValidateContent(doc); err != nil {
		return model.Page{}, err
	}

	var page model.Page
	err = store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		category := arg.Category
		var cardID sql.NullInt64

		switch {
		case arg.ProjectCardID != 0:
			// The card must exist and belong to the owner
			card, err := q.GetProjectCardByID(ctx, arg.ProjectCardID)
			if err != nil {
				return err
			}
			if card.Owner != arg.Owner {
				return sql.ErrNoRows
			}
			category = model.ProjectPageCategory(card.ID)
			cardID = sql.NullInt64{Int64: card.ID, Valid: true}
		case model.IsFixedCategory(category):
			// Fixed page, no card link
		default:
			return ErrUnknownCategory
		}

		var err error
		page, err = q.UpsertPage(ctx, store.UpsertPageParams{
			Owner:         arg.Owner,
			Category:      category,
			Content:       string(arg.Content),
			ProjectCardID: cardID,
			Now:           time.Now(),
		})
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.PageChanged(ctx, page.Owner, page.Category, page.ProjectCardID)
		})
		return nil
	})
	return page, err
}

// UpdateContent replaces the document of an existing page by id, with
// the same validation gate as Upload.
func (s *PageService) UpdateContent(ctx context.Context, id int64, content json.RawMessage) (model.Page, error) {
	doc, err := decodeContent(content)
	if err != nil {
		return model.Page{}, err
	}
	if err := layout.ValidateContent(doc); err != nil {
		return model.Page{}, err
	}

	var page model.Page
	err = store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		existing, err := q.GetPageByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.UpdatePageContent(ctx, id, string(content), time.Now()); err != nil {
			return err
		}
		page, err = q.GetPageByID(ctx, id)
		if err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.PageChanged(ctx, existing.Owner, existing.Category, existing.ProjectCardID)
		})
		return nil
	})
	return page, err
}

// Get returns one fixed page of a tenant, read through the cache.
func (s *PageService) Get(ctx context.Context, slug, category string) (model.Page, error) {
	page, err := s.cached.GetOrSet(ctx, cache.PageKey(slug, category), func() (*model.Page, error) {
		p, err := s.queries.GetPage(ctx, slug, category)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return model.Page{}, err
	}
	return *page, nil
}

// GetProjectPage returns the page linked to one project card, read
// through the cache.
func (s *PageService) GetProjectPage(ctx context.Context, cardID int64) (model.Page, error) {
	page, err := s.cached.GetOrSet(ctx, cache.ProjectPageKey(cardID), func() (*model.Page, error) {
		p, err := s.queries.GetPageByProjectCard(ctx, cardID)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return model.Page{}, err
	}
	return *page, nil
}

// Delete removes a page and invalidates it on commit.
func (s *PageService) Delete(ctx context.Context, id int64) error {
	return store.InTx(ctx, s.db, func(q *store.Queries, h *store.Hooks) error {
		page, err := q.GetPageByID(ctx, id)
		if err != nil {
			return err
		}
		if err := q.DeletePage(ctx, id); err != nil {
			return err
		}

		h.OnCommit(func(ctx context.Context) {
			s.notifier.PageChanged(ctx, page.Owner, page.Category, page.ProjectCardID)
		})
		return nil
	})
}
