// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/service"
	"github.com/shmooz/shmooz-go/internal/store"
	"github.com/shmooz/shmooz-go/internal/util"
)

// SlugRequest carries a slug for create and rename operations. On
// create, a display name may stand in for the slug.
type SlugRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// CreateSlug registers a new tenant slug. When only a display name is
// given, the slug is derived from it.
func (h *Handler) CreateSlug(w http.ResponseWriter, r *http.Request) {
	var req SlugRequest
	if !decodeBody(w, r, &req) {
		return
	}

	slug := req.Slug
	if slug == "" && req.Name != "" {
		slug = util.Slugify(req.Name)
	}

	entry, err := h.slugs.Create(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "slug", err)
		return
	}
	WriteCreated(w, entry)
}

// RenameSlug renames a tenant and cascades the new identity through all
// owned content.
func (h *Handler) RenameSlug(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid slug ID", nil)
		return
	}

	var req SlugRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.slugs.Rename(r.Context(), id, req.Slug)
	if err != nil {
		writeServiceError(w, "slug", err)
		return
	}
	WriteSuccess(w, entry, nil)
}

// DeleteSlug removes a tenant slug entry.
func (h *Handler) DeleteSlug(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid slug ID", nil)
		return
	}

	if err := h.slugs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "slug", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// DeckRequest carries the editable deck fields.
type DeckRequest struct {
	Title         string `json:"title"`
	DisplayedName string `json:"displayed_name"`
	TextColor     string `json:"text_color"`
	HoverColor    string `json:"hover_color"`
	ImageID       *int64 `json:"image_id,omitempty"`
}

// CreateDeck creates a deck for the tenant named in the URL.
func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req DeckRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteValidationError(w, "title is required", map[string]string{"title": "required"})
		return
	}

	deck, err := h.decks.Create(r.Context(), store.CreateDeckParams{
		Title:         req.Title,
		DisplayedName: req.DisplayedName,
		Owner:         slug,
		TextColor:     req.TextColor,
		HoverColor:    req.HoverColor,
		ImageID:       util.NullInt64FromPtr(req.ImageID),
	})
	if err != nil {
		writeServiceError(w, "deck", err)
		return
	}
	WriteCreated(w, deck)
}

// UpdateDeck updates a deck by ID.
func (h *Handler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid deck ID", nil)
		return
	}

	var req DeckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	deck, err := h.decks.Update(r.Context(), store.UpdateDeckParams{
		ID:            id,
		Title:         req.Title,
		DisplayedName: req.DisplayedName,
		TextColor:     req.TextColor,
		HoverColor:    req.HoverColor,
		ImageID:       util.NullInt64FromPtr(req.ImageID),
	})
	if err != nil {
		writeServiceError(w, "deck", err)
		return
	}
	WriteSuccess(w, deck, nil)
}

// DeleteDeck removes a deck by ID.
func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid deck ID", nil)
		return
	}

	if err := h.decks.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "deck", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// ProjectCardRequest carries the editable project card fields.
type ProjectCardRequest struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	DeckTitle   string `json:"deck_title"`
	LabelLetter string `json:"label_letter"`
	LabelColor  string `json:"label_color"`
	InlineColor string `json:"inline_color"`
	TextColor   string `json:"text_color"`
	ImageID     *int64 `json:"image_id,omitempty"`
}

// CreateProjectCard creates a project card for the tenant named in the URL.
func (h *Handler) CreateProjectCard(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req ProjectCardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.DeckTitle == "" {
		WriteValidationError(w, "title and deck_title are required", map[string]string{
			"title":      "required",
			"deck_title": "required",
		})
		return
	}

	card, err := h.cards.Create(r.Context(), store.CreateProjectCardParams{
		Title:       req.Title,
		Text:        req.Text,
		Owner:       slug,
		DeckTitle:   req.DeckTitle,
		LabelLetter: req.LabelLetter,
		LabelColor:  req.LabelColor,
		InlineColor: req.InlineColor,
		TextColor:   req.TextColor,
		ImageID:     util.NullInt64FromPtr(req.ImageID),
	})
	if err != nil {
		writeServiceError(w, "project card", err)
		return
	}
	WriteCreated(w, card)
}

// UpdateProjectCard updates a project card by ID.
func (h *Handler) UpdateProjectCard(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid project card ID", nil)
		return
	}

	var req ProjectCardRequest
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.Update(r.Context(), store.UpdateProjectCardParams{
		ID:          id,
		Title:       req.Title,
		Text:        req.Text,
		DeckTitle:   req.DeckTitle,
		LabelLetter: req.LabelLetter,
		LabelColor:  req.LabelColor,
		InlineColor: req.InlineColor,
		TextColor:   req.TextColor,
		ImageID:     util.NullInt64FromPtr(req.ImageID),
	})
	if err != nil {
		writeServiceError(w, "project card", err)
		return
	}
	WriteSuccess(w, card, nil)
}

// DeleteProjectCard removes a project card by ID. Any linked project
// page goes with it.
func (h *Handler) DeleteProjectCard(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid project card ID", nil)
		return
	}

	if err := h.cards.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "project card", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// BackgroundRequest carries the editable background fields.
type BackgroundRequest struct {
	Color1        string `json:"color1"`
	Color2        string `json:"color2"`
	Color3        string `json:"color3"`
	Position1     string `json:"position1"`
	Position2     string `json:"position2"`
	Position3     string `json:"position3"`
	Page1         string `json:"page1"`
	Page2         string `json:"page2"`
	NavColor      string `json:"nav_color"`
	ArrowColor    string `json:"arrow_color"`
	EllipseWidth  int64  `json:"ellipse_width"`
	EllipseHeight int64  `json:"ellipse_height"`
}

// CreateBackground creates the background row for the tenant named in
// the URL. Each tenant has at most one.
func (h *Handler) CreateBackground(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req BackgroundRequest
	if !decodeBody(w, r, &req) {
		return
	}

	bg, err := h.backgrounds.Create(r.Context(), store.CreateBackgroundParams{
		Owner:         slug,
		Color1:        req.Color1,
		Color2:        req.Color2,
		Color3:        req.Color3,
		Position1:     req.Position1,
		Position2:     req.Position2,
		Position3:     req.Position3,
		Page1:         req.Page1,
		Page2:         req.Page2,
		NavColor:      req.NavColor,
		ArrowColor:    req.ArrowColor,
		EllipseWidth:  req.EllipseWidth,
		EllipseHeight: req.EllipseHeight,
	})
	if err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteCreated(w, bg)
}

// UpdateBackground updates a background row by ID.
func (h *Handler) UpdateBackground(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid background ID", nil)
		return
	}

	var req BackgroundRequest
	if !decodeBody(w, r, &req) {
		return
	}

	bg, err := h.backgrounds.Update(r.Context(), store.UpdateBackgroundParams{
		ID:            id,
		Color1:        req.Color1,
		Color2:        req.Color2,
		Color3:        req.Color3,
		Position1:     req.Position1,
		Position2:     req.Position2,
		Position3:     req.Position3,
		Page1:         req.Page1,
		Page2:         req.Page2,
		NavColor:      req.NavColor,
		ArrowColor:    req.ArrowColor,
		EllipseWidth:  req.EllipseWidth,
		EllipseHeight: req.EllipseHeight,
	})
	if err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteSuccess(w, bg, nil)
}

// DeleteBackground removes a background row by ID.
func (h *Handler) DeleteBackground(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid background ID", nil)
		return
	}

	if err := h.backgrounds.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// UploadPageRequest carries a page write. Category targets a fixed page;
// project_card_id targets a project page and wins over category.
type UploadPageRequest struct {
	Owner         string          `json:"owner"`
	Category      string          `json:"category"`
	ProjectCardID int64           `json:"project_card_id,omitempty"`
	Content       json.RawMessage `json:"content"`
}

// UploadPage validates and stores one page layout document.
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	var req UploadPageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Owner == "" {
		WriteValidationError(w, "owner is required", map[string]string{"owner": "required"})
		return
	}

	page, err := h.pages.Upload(r.Context(), service.UploadParams{
		Owner:         req.Owner,
		Category:      req.Category,
		ProjectCardID: req.ProjectCardID,
		Content:       req.Content,
	})
	if err != nil {
		writeServiceError(w, "page", err)
		return
	}
	WriteCreated(w, pageToResponse(page))
}

// UpdatePageRequest carries a content replacement for a stored page.
type UpdatePageRequest struct {
	Content json.RawMessage `json:"content"`
}

// UpdatePage replaces the content of a stored page by ID.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	var req UpdatePageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	page, err := h.pages.UpdateContent(r.Context(), id, req.Content)
	if err != nil {
		writeServiceError(w, "page", err)
		return
	}
	WriteSuccess(w, pageToResponse(page), nil)
}

// DeletePage removes a stored page by ID.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	if err := h.pages.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "page", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// UploadImage accepts a multipart image upload.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	img, err := h.media.Upload(r.Context(), file, header, r.FormValue("title"))
	if err != nil {
		WriteValidationError(w, err.Error(), nil)
		return
	}
	WriteCreated(w, img)
}

// DeleteImage removes an uploaded image and its file.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "image", err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// ResyncResponse reports how many tenants were re-announced.
type ResyncResponse struct {
	Slugs int `json:"slugs"`
}

// Resync clears the local cache and re-announces every tenant to the
// frontend cache.
func (h *Handler) Resync(w http.ResponseWriter, r *http.Request) {
	count, err := h.resync.Run(r.Context())
	if err != nil {
		writeServiceError(w, "resync", err)
		return
	}
	WriteSuccess(w, ResyncResponse{Slugs: count}, nil)
}

// BreakerStatus reports the outbound invalidation circuit breaker state.
func (h *Handler) BreakerStatus(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.client.BreakerStatus(), nil)
}

// CacheStatus reports local read-cache counters. Backends without
// counters report zeroes.
func (h *Handler) CacheStatus(w http.ResponseWriter, _ *http.Request) {
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		WriteSuccess(w, sp.Stats(), nil)
		return
	}
	WriteSuccess(w, cache.CacheStats{}, nil)
}

// ListEvents returns recent application events, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Recent(r.Context(), 0)
	if err != nil {
		writeServiceError(w, "events", err)
		return
	}
	WriteSuccess(w, events, &Meta{Total: len(events)})
}
