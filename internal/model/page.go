// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Fixed page categories. Every tenant may own at most one page per
// category; project pages use the derived project_<card id> category
// instead.
const (
	PageCategoryOne = "page_one"
	PageCategoryTwo = "page_two"
)

// ProjectPageCategoryPrefix prefixes the derived category of pages linked
// to a project card.
const ProjectPageCategoryPrefix = "project_"

// Page represents a stored page layout document. Content is the raw JSON
// of the validated layout; it is persisted byte-for-byte as submitted.
type Page struct {
	ID            int64         `json:"id"`
	Owner         string        `json:"owner"`
	Category      string        `json:"category"`
	Content       string        `json:"content"`
	ProjectCardID sql.NullInt64 `json:"project_card_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsProjectPage returns true if the page is linked to a project card.
func (p *Page) IsProjectPage() bool {
	return p.ProjectCardID.Valid
}

// ProjectPageCategory returns the derived category for a page linked to
// the given project card.
func ProjectPageCategory(cardID int64) string {
	return fmt.Sprintf("%s%d", ProjectPageCategoryPrefix, cardID)
}

// IsFixedCategory reports whether the category is one of the two
// recognized fixed page categories.
func IsFixedCategory(category string) bool {
	return category == PageCategoryOne || category == PageCategoryTwo
}

// IsProjectCategory reports whether the category has the derived
// project-page form.
func IsProjectCategory(category string) bool {
	return strings.HasPrefix(category, ProjectPageCategoryPrefix)
}
