// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Image represents uploaded image metadata. File bytes live outside the
// database and are served by the collaborating web layer.
type Image struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploaded_at"`
}
