// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

// CreateBackgroundParams holds the writable fields for a new background.
type CreateBackgroundParams struct {
	Owner         string
	Color1        string
	Color2        string
	Color3        string
	Position1     string
	Position2     string
	Position3     string
	Page1         string
	Page2         string
	NavColor      string
	ArrowColor    string
	EllipseWidth  int64
	EllipseHeight int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createBackground = `
INSERT INTO backgrounds (owner, color1, color2, color3, position1, position2, position3, page1, page2, nav_color, arrow_color, ellipse_width, ellipse_height, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, owner, color1, color2, color3, position1, position2, position3, page1, page2, nav_color, arrow_color, ellipse_width, ellipse_height, created_at, updated_at
`

func (q *Queries) CreateBackground(ctx context.Context, arg CreateBackgroundParams) (model.Background, error) {
	var b model.Background
	err := q.db.QueryRowContext(ctx, createBackground,
		arg.Owner, arg.Color1, arg.Color2, arg.Color3, arg.Position1, arg.Position2,
		arg.Position3, arg.Page1, arg.Page2, arg.NavColor, arg.ArrowColor,
		arg.EllipseWidth, arg.EllipseHeight, arg.CreatedAt, arg.UpdatedAt,
	).Scan(&b.ID, &b.Owner, &b.Color1, &b.Color2, &b.Color3, &b.Position1, &b.Position2,
		&b.Position3, &b.Page1, &b.Page2, &b.NavColor, &b.ArrowColor,
		&b.EllipseWidth, &b.EllipseHeight, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const getBackgroundByOwner = `
SELECT id, owner, color1, color2, color3, position1, position2, position3, page1, page2, nav_color, arrow_color, ellipse_width, ellipse_height, created_at, updated_at
FROM backgrounds WHERE owner = ?
`

func (q *Queries) GetBackgroundByOwner(ctx context.Context, owner string) (model.Background, error) {
	var b model.Background
	err := q.db.QueryRowContext(ctx, getBackgroundByOwner, owner).
		Scan(&b.ID, &b.Owner, &b.Color1, &b.Color2, &b.Color3, &b.Position1, &b.Position2,
			&b.Position3, &b.Page1, &b.Page2, &b.NavColor, &b.ArrowColor,
			&b.EllipseWidth, &b.EllipseHeight, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const getBackgroundByID = `
SELECT id, owner, color1, color2, color3, position1, position2, position3, page1, page2, nav_color, arrow_color, ellipse_width, ellipse_height, created_at, updated_at
FROM backgrounds WHERE id = ?
`

func (q *Queries) GetBackgroundByID(ctx context.Context, id int64) (model.Background, error) {
	var b model.Background
	err := q.db.QueryRowContext(ctx, getBackgroundByID, id).
		Scan(&b.ID, &b.Owner, &b.Color1, &b.Color2, &b.Color3, &b.Position1, &b.Position2,
			&b.Position3, &b.Page1, &b.Page2, &b.NavColor, &b.ArrowColor,
			&b.EllipseWidth, &b.EllipseHeight, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// UpdateBackgroundParams holds the writable fields for an existing
// background.
type UpdateBackgroundParams struct {
	ID            int64
	Color1        string
	Color2        string
	Color3        string
	Position1     string
	Position2     string
	Position3     string
	Page1         string
	Page2         string
	NavColor      string
	ArrowColor    string
	EllipseWidth  int64
	EllipseHeight int64
	UpdatedAt     time.Time
}

const updateBackground = `
UPDATE backgrounds
SET color1 = ?, color2 = ?, color3 = ?, position1 = ?, position2 = ?, position3 = ?, page1 = ?, page2 = ?, nav_color = ?, arrow_color = ?, ellipse_width = ?, ellipse_height = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateBackground(ctx context.Context, arg UpdateBackgroundParams) error {
	_, err := q.db.ExecContext(ctx, updateBackground,
		arg.Color1, arg.Color2, arg.Color3, arg.Position1, arg.Position2, arg.Position3,
		arg.Page1, arg.Page2, arg.NavColor, arg.ArrowColor,
		arg.EllipseWidth, arg.EllipseHeight, arg.UpdatedAt, arg.ID)
	return err
}

const updateBackgroundOwner = `
UPDATE backgrounds SET owner = ?, updated_at = ? WHERE owner = ?
`

// UpdateBackgroundOwner repoints the background of oldOwner to newOwner.
// Part of the slug rename cascade.
func (q *Queries) UpdateBackgroundOwner(ctx context.Context, oldOwner, newOwner string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateBackgroundOwner, newOwner, now, oldOwner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteBackground = `
DELETE FROM backgrounds WHERE id = ?
`

func (q *Queries) DeleteBackground(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBackground, id)
	return err
}
