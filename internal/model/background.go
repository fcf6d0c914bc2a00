// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Background holds the theme data for one tenant: the three gradient
// stops rendered behind the landing page, the display names of the two
// fixed pages, and a handful of accent values. One row per owner.
type Background struct {
	ID            int64     `json:"id"`
	Owner         string    `json:"owner"`
	Color1        string    `json:"color1"`
	Color2        string    `json:"color2"`
	Color3        string    `json:"color3"`
	Position1     string    `json:"position1"`
	Position2     string    `json:"position2"`
	Position3     string    `json:"position3"`
	Page1         string    `json:"page1"`
	Page2         string    `json:"page2"`
	NavColor      string    `json:"nav_color"`
	ArrowColor    string    `json:"arrow_color"`
	EllipseWidth  int64     `json:"ellipse_width"`
	EllipseHeight int64     `json:"ellipse_height"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
