// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

const createImage = `
INSERT INTO images (title, path, uploaded_at)
VALUES (?, ?, ?)
RETURNING id, title, path, uploaded_at
`

func (q *Queries) CreateImage(ctx context.Context, title, path string, now time.Time) (model.Image, error) {
	var img model.Image
	err := q.db.QueryRowContext(ctx, createImage, title, path, now).
		Scan(&img.ID, &img.Title, &img.Path, &img.UploadedAt)
	return img, err
}

const getImageByID = `
SELECT id, title, path, uploaded_at FROM images WHERE id = ?
`

func (q *Queries) GetImageByID(ctx context.Context, id int64) (model.Image, error) {
	var img model.Image
	err := q.db.QueryRowContext(ctx, getImageByID, id).
		Scan(&img.ID, &img.Title, &img.Path, &img.UploadedAt)
	return img, err
}

const listImages = `
SELECT id, title, path, uploaded_at FROM images ORDER BY uploaded_at DESC, id DESC
`

func (q *Queries) ListImages(ctx context.Context) ([]model.Image, error) {
	rows, err := q.db.QueryContext(ctx, listImages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.Title, &img.Path, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

const deleteImage = `
DELETE FROM images WHERE id = ?
`

func (q *Queries) DeleteImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteImage, id)
	return err
}
