// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

// UpsertPageParams holds the fields for writing a page. An existing
// (owner, category) row is replaced in place, keeping its id and
// created_at.
type UpsertPageParams struct {
	Owner         string
	Category      string
	Content       string
	ProjectCardID sql.NullInt64
	Now           time.Time
}

const upsertPage = `
INSERT INTO pages (owner, category, content, project_card_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(owner, category) DO UPDATE SET
    content = excluded.content,
    project_card_id = excluded.project_card_id,
    updated_at = excluded.updated_at
RETURNING id, owner, category, content, project_card_id, created_at, updated_at
`

func (q *Queries) UpsertPage(ctx context.Context, arg UpsertPageParams) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, upsertPage,
		arg.Owner, arg.Category, arg.Content, arg.ProjectCardID, arg.Now, arg.Now,
	).Scan(&p.ID, &p.Owner, &p.Category, &p.Content, &p.ProjectCardID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPage = `
SELECT id, owner, category, content, project_card_id, created_at, updated_at
FROM pages WHERE owner = ? AND category = ?
`

func (q *Queries) GetPage(ctx context.Context, owner, category string) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, getPage, owner, category).
		Scan(&p.ID, &p.Owner, &p.Category, &p.Content, &p.ProjectCardID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPageByID = `
SELECT id, owner, category, content, project_card_id, created_at, updated_at
FROM pages WHERE id = ?
`

func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, getPageByID, id).
		Scan(&p.ID, &p.Owner, &p.Category, &p.Content, &p.ProjectCardID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPageByProjectCard = `
SELECT id, owner, category, content, project_card_id, created_at, updated_at
FROM pages WHERE project_card_id = ?
`

func (q *Queries) GetPageByProjectCard(ctx context.Context, cardID int64) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, getPageByProjectCard, cardID).
		Scan(&p.ID, &p.Owner, &p.Category, &p.Content, &p.ProjectCardID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listPageCategoriesByOwner = `
SELECT category FROM pages WHERE owner = ? ORDER BY category
`

// ListPageCategoriesByOwner returns the categories a tenant has pages
// for. Used by the rename conflict check.
func (q *Queries) ListPageCategoriesByOwner(ctx context.Context, owner string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listPageCategoriesByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const updatePageContent = `
UPDATE pages SET content = ?, updated_at = ? WHERE id = ?
`

func (q *Queries) UpdatePageContent(ctx context.Context, id int64, content string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, updatePageContent, content, now, id)
	return err
}

const updatePageOwner = `
UPDATE pages SET owner = ?, updated_at = ? WHERE owner = ?
`

// UpdatePageOwner repoints every page of oldOwner to newOwner. Part of
// the slug rename cascade.
func (q *Queries) UpdatePageOwner(ctx context.Context, oldOwner, newOwner string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePageOwner, newOwner, now, oldOwner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deletePage = `
DELETE FROM pages WHERE id = ?
`

func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePage, id)
	return err
}
