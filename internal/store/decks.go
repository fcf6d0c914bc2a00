// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

// CreateDeckParams holds the writable fields for a new deck.
type CreateDeckParams struct {
	Title         string
	DisplayedName string
	Owner         string
	TextColor     string
	HoverColor    string
	ImageID       sql.NullInt64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createDeck = `
INSERT INTO decks (title, displayed_name, owner, text_color, hover_color, image_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, displayed_name, owner, text_color, hover_color, image_id, created_at, updated_at
`

func (q *Queries) CreateDeck(ctx context.Context, arg CreateDeckParams) (model.Deck, error) {
	var d model.Deck
	err := q.db.QueryRowContext(ctx, createDeck,
		arg.Title, arg.DisplayedName, arg.Owner, arg.TextColor, arg.HoverColor,
		arg.ImageID, arg.CreatedAt, arg.UpdatedAt,
	).Scan(&d.ID, &d.Title, &d.DisplayedName, &d.Owner, &d.TextColor, &d.HoverColor,
		&d.ImageID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const getDeckByID = `
SELECT id, title, displayed_name, owner, text_color, hover_color, image_id, created_at, updated_at
FROM decks WHERE id = ?
`

func (q *Queries) GetDeckByID(ctx context.Context, id int64) (model.Deck, error) {
	var d model.Deck
	err := q.db.QueryRowContext(ctx, getDeckByID, id).
		Scan(&d.ID, &d.Title, &d.DisplayedName, &d.Owner, &d.TextColor, &d.HoverColor,
			&d.ImageID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const listDecksByOwner = `
SELECT id, title, displayed_name, owner, text_color, hover_color, image_id, created_at, updated_at
FROM decks WHERE owner = ? ORDER BY id
`

func (q *Queries) ListDecksByOwner(ctx context.Context, owner string) ([]model.Deck, error) {
	rows, err := q.db.QueryContext(ctx, listDecksByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []model.Deck
	for rows.Next() {
		var d model.Deck
		if err := rows.Scan(&d.ID, &d.Title, &d.DisplayedName, &d.Owner, &d.TextColor,
			&d.HoverColor, &d.ImageID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// UpdateDeckParams holds the writable fields for an existing deck.
type UpdateDeckParams struct {
	ID            int64
	Title         string
	DisplayedName string
	TextColor     string
	HoverColor    string
	ImageID       sql.NullInt64
	UpdatedAt     time.Time
}

const updateDeck = `
UPDATE decks
SET title = ?, displayed_name = ?, text_color = ?, hover_color = ?, image_id = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateDeck(ctx context.Context, arg UpdateDeckParams) error {
	_, err := q.db.ExecContext(ctx, updateDeck,
		arg.Title, arg.DisplayedName, arg.TextColor, arg.HoverColor, arg.ImageID,
		arg.UpdatedAt, arg.ID)
	return err
}

const updateDeckOwner = `
UPDATE decks SET owner = ?, updated_at = ? WHERE owner = ?
`

// UpdateDeckOwner repoints every deck of oldOwner to newOwner. Part of
// the slug rename cascade.
func (q *Queries) UpdateDeckOwner(ctx context.Context, oldOwner, newOwner string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateDeckOwner, newOwner, now, oldOwner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteDeck = `
DELETE FROM decks WHERE id = ?
`

func (q *Queries) DeleteDeck(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteDeck, id)
	return err
}
