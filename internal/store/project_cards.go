// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

// CreateProjectCardParams holds the writable fields for a new project card.
type CreateProjectCardParams struct {
	Title       string
	Text        string
	Owner       string
	DeckTitle   string
	LabelLetter string
	LabelColor  string
	InlineColor string
	TextColor   string
	ImageID     sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createProjectCard = `
INSERT INTO project_cards (title, text, owner, deck_title, label_letter, label_color, inline_color, text_color, image_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, text, owner, deck_title, label_letter, label_color, inline_color, text_color, image_id, created_at, updated_at
`

func (q *Queries) CreateProjectCard(ctx context.Context, arg CreateProjectCardParams) (model.ProjectCard, error) {
	var c model.ProjectCard
	err := q.db.QueryRowContext(ctx, createProjectCard,
		arg.Title, arg.Text, arg.Owner, arg.DeckTitle, arg.LabelLetter, arg.LabelColor,
		arg.InlineColor, arg.TextColor, arg.ImageID, arg.CreatedAt, arg.UpdatedAt,
	).Scan(&c.ID, &c.Title, &c.Text, &c.Owner, &c.DeckTitle, &c.LabelLetter, &c.LabelColor,
		&c.InlineColor, &c.TextColor, &c.ImageID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getProjectCardByID = `
SELECT id, title, text, owner, deck_title, label_letter, label_color, inline_color, text_color, image_id, created_at, updated_at
FROM project_cards WHERE id = ?
`

func (q *Queries) GetProjectCardByID(ctx context.Context, id int64) (model.ProjectCard, error) {
	var c model.ProjectCard
	err := q.db.QueryRowContext(ctx, getProjectCardByID, id).
		Scan(&c.ID, &c.Title, &c.Text, &c.Owner, &c.DeckTitle, &c.LabelLetter, &c.LabelColor,
			&c.InlineColor, &c.TextColor, &c.ImageID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const listProjectCards = `
SELECT id, title, text, owner, deck_title, label_letter, label_color, inline_color, text_color, image_id, created_at, updated_at
FROM project_cards WHERE owner = ? AND deck_title = ? ORDER BY id
`

// ListProjectCards returns the cards of one deck, identified the way the
// frontend requests them: owner slug plus deck title.
func (q *Queries) ListProjectCards(ctx context.Context, owner, deckTitle string) ([]model.ProjectCard, error) {
	rows, err := q.db.QueryContext(ctx, listProjectCards, owner, deckTitle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.ProjectCard
	for rows.Next() {
		var c model.ProjectCard
		if err := rows.Scan(&c.ID, &c.Title, &c.Text, &c.Owner, &c.DeckTitle, &c.LabelLetter,
			&c.LabelColor, &c.InlineColor, &c.TextColor, &c.ImageID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateProjectCardParams holds the writable fields for an existing card.
type UpdateProjectCardParams struct {
	ID          int64
	Title       string
	Text        string
	DeckTitle   string
	LabelLetter string
	LabelColor  string
	InlineColor string
	TextColor   string
	ImageID     sql.NullInt64
	UpdatedAt   time.Time
}

const updateProjectCard = `
UPDATE project_cards
SET title = ?, text = ?, deck_title = ?, label_letter = ?, label_color = ?, inline_color = ?, text_color = ?, image_id = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateProjectCard(ctx context.Context, arg UpdateProjectCardParams) error {
	_, err := q.db.ExecContext(ctx, updateProjectCard,
		arg.Title, arg.Text, arg.DeckTitle, arg.LabelLetter, arg.LabelColor,
		arg.InlineColor, arg.TextColor, arg.ImageID, arg.UpdatedAt, arg.ID)
	return err
}

const updateProjectCardOwner = `
UPDATE project_cards SET owner = ?, updated_at = ? WHERE owner = ?
`

// UpdateProjectCardOwner repoints every card of oldOwner to newOwner.
// Part of the slug rename cascade.
func (q *Queries) UpdateProjectCardOwner(ctx context.Context, oldOwner, newOwner string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateProjectCardOwner, newOwner, now, oldOwner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteProjectCard = `
DELETE FROM project_cards WHERE id = ?
`

func (q *Queries) DeleteProjectCard(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProjectCard, id)
	return err
}
