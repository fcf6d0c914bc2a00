// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
	"github.com/shmooz/shmooz-go/internal/util"
)

// Upload limits
const (
	MaxUploadSize   = 20 * 1024 * 1024 // 20MB
	DefaultMediaDir = "./media"
)

// AllowedImageMimeTypes defines the MIME types that can be uploaded.
var AllowedImageMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// MediaService handles image file uploads and their metadata rows.
type MediaService struct {
	queries  *store.Queries
	mediaDir string
}

// NewMediaService creates a new media service.
func NewMediaService(db *sql.DB, mediaDir string) *MediaService {
	if mediaDir == "" {
		mediaDir = DefaultMediaDir
	}
	return &MediaService{
		queries:  store.New(db),
		mediaDir: mediaDir,
	}
}

// Upload stores the uploaded file under the media directory and records
// its metadata. The stored filename is prefixed with a UUID so repeated
// uploads of the same file never collide.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, title string) (model.Image, error) {
	if header.Size > MaxUploadSize {
		return model.Image{}, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeTypeFromExtension(header.Filename)
	}
	if !AllowedImageMimeTypes[mimeType] {
		return model.Image{}, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	filename, err := util.SanitizeFilename(header.Filename)
	if err != nil {
		return model.Image{}, fmt.Errorf("invalid filename: %w", err)
	}
	storedName := uuid.New().String() + "_" + filename

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return model.Image{}, fmt.Errorf("creating media directory: %w", err)
	}

	dstPath, err := util.SafeJoinPath(s.mediaDir, storedName)
	if err != nil {
		return model.Image{}, fmt.Errorf("resolving media path: %w", err)
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return model.Image{}, fmt.Errorf("creating media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize)); err != nil {
		os.Remove(dstPath)
		return model.Image{}, fmt.Errorf("writing media file: %w", err)
	}

	if title == "" {
		title = filename
	}

	img, err := s.queries.CreateImage(ctx, title, storedName, time.Now())
	if err != nil {
		os.Remove(dstPath)
		return model.Image{}, fmt.Errorf("recording image: %w", err)
	}
	return img, nil
}

// Get returns image metadata by ID.
func (s *MediaService) Get(ctx context.Context, id int64) (model.Image, error) {
	return s.queries.GetImageByID(ctx, id)
}

// List returns all uploaded images, newest first.
func (s *MediaService) List(ctx context.Context) ([]model.Image, error) {
	return s.queries.ListImages(ctx)
}

// FilePath returns the on-disk path of a stored image, refusing stored
// names that would resolve outside the media directory.
func (s *MediaService) FilePath(img model.Image) (string, error) {
	return util.SafeJoinPath(s.mediaDir, img.Path)
}

// Delete removes the metadata row and the stored file. A missing file is
// not an error.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	img, err := s.queries.GetImageByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeleteImage(ctx, id); err != nil {
		return err
	}
	path, err := s.FilePath(img)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing media file: %w", err)
	}
	return nil
}

// mimeTypeFromExtension maps common image extensions to MIME types.
func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return ""
	}
}
