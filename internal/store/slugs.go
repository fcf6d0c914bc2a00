// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

const createSlug = `
INSERT INTO slugs (slug, created_at, updated_at)
VALUES (?, ?, ?)
RETURNING id, slug, created_at, updated_at
`

// CreateSlug registers a new tenant identity.
func (q *Queries) CreateSlug(ctx context.Context, slug string, now time.Time) (model.SlugEntry, error) {
	var s model.SlugEntry
	err := q.db.QueryRowContext(ctx, createSlug, slug, now, now).
		Scan(&s.ID, &s.Slug, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const getSlugByID = `
SELECT id, slug, created_at, updated_at FROM slugs WHERE id = ?
`

func (q *Queries) GetSlugByID(ctx context.Context, id int64) (model.SlugEntry, error) {
	var s model.SlugEntry
	err := q.db.QueryRowContext(ctx, getSlugByID, id).
		Scan(&s.ID, &s.Slug, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const getSlugByName = `
SELECT id, slug, created_at, updated_at FROM slugs WHERE slug = ?
`

func (q *Queries) GetSlugByName(ctx context.Context, slug string) (model.SlugEntry, error) {
	var s model.SlugEntry
	err := q.db.QueryRowContext(ctx, getSlugByName, slug).
		Scan(&s.ID, &s.Slug, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const listSlugs = `
SELECT id, slug, created_at, updated_at FROM slugs ORDER BY slug
`

func (q *Queries) ListSlugs(ctx context.Context) ([]model.SlugEntry, error) {
	rows, err := q.db.QueryContext(ctx, listSlugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []model.SlugEntry
	for rows.Next() {
		var s model.SlugEntry
		if err := rows.Scan(&s.ID, &s.Slug, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

const slugExists = `
SELECT EXISTS(SELECT 1 FROM slugs WHERE slug = ?)
`

func (q *Queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, slugExists, slug).Scan(&exists)
	return exists, err
}

const updateSlugName = `
UPDATE slugs SET slug = ?, updated_at = ? WHERE id = ?
`

// UpdateSlugName changes the slug value of a tenant row. Callers are
// responsible for cascading the rename across the owner columns.
func (q *Queries) UpdateSlugName(ctx context.Context, id int64, slug string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, updateSlugName, slug, now, id)
	return err
}

const deleteSlug = `
DELETE FROM slugs WHERE id = ?
`

func (q *Queries) DeleteSlug(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSlug, id)
	return err
}
