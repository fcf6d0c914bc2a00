// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Deck represents a named carousel of project cards for one tenant.
type Deck struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	DisplayedName string        `json:"displayed_name"`
	Owner         string        `json:"owner"`
	TextColor     string        `json:"text_color"`
	HoverColor    string        `json:"hover_color"`
	ImageID       sql.NullInt64 `json:"image_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ProjectCard represents a single portfolio item belonging to a deck.
// The deck link is by title within the same owner, mirroring how the
// frontend requests cards (slug + X-Deck-Title header).
type ProjectCard struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Text        string        `json:"text"`
	Owner       string        `json:"owner"`
	DeckTitle   string        `json:"deck_title"`
	LabelLetter string        `json:"label_letter"`
	LabelColor  string        `json:"label_color"`
	InlineColor string        `json:"inline_color"`
	TextColor   string        `json:"text_color"`
	ImageID     sql.NullInt64 `json:"image_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
