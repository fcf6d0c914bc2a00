// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types for the portfolio CMS.
// Every content entity is scoped to a tenant by a plain `owner` slug
// string; the slugs table is the authoritative list of tenants.
package model

import "time"

// SlugEntry represents a tenant identity. The slug string is the scoping
// key carried in the owner field of all dependent tables; it is not a
// database foreign key.
type SlugEntry struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
