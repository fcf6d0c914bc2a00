// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shmooz/shmooz-go/internal/model"
)

// PageResponse represents a stored page in API responses. Content is the
// raw layout document exactly as it was accepted.
type PageResponse struct {
	ID        int64           `json:"id"`
	Owner     string          `json:"owner"`
	Category  string          `json:"category"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func pageToResponse(p model.Page) PageResponse {
	return PageResponse{
		ID:        p.ID,
		Owner:     p.Owner,
		Category:  p.Category,
		Content:   json.RawMessage(p.Content),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListSlugs returns all tenant slugs as plain strings.
func (h *Handler) ListSlugs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.slugs.List(r.Context())
	if err != nil {
		writeServiceError(w, "slugs", err)
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Slug)
	}
	WriteSuccess(w, names, &Meta{Total: len(names)})
}

// GetDecks returns the decks of one tenant.
func (h *Handler) GetDecks(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	decks, err := h.decks.ListByOwner(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "decks", err)
		return
	}
	WriteSuccess(w, decks, &Meta{Total: len(decks)})
}

// GetProjects returns the project cards of one deck. The deck is named
// by the X-Deck-Title request header, matching how the frontend asks.
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	deckTitle := r.Header.Get("X-Deck-Title")
	if deckTitle == "" {
		WriteBadRequest(w, "Missing X-Deck-Title header", nil)
		return
	}

	cards, err := h.cards.List(r.Context(), slug, deckTitle)
	if err != nil {
		writeServiceError(w, "project cards", err)
		return
	}
	WriteSuccess(w, cards, &Meta{Total: len(cards)})
}

// GetBackground returns the full background row of one tenant.
func (h *Handler) GetBackground(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	bg, err := h.backgrounds.GetByOwner(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteSuccess(w, bg, nil)
}

// PageNamesResponse carries the display names of the two fixed pages.
type PageNamesResponse struct {
	Page1 string `json:"page1"`
	Page2 string `json:"page2"`
}

// GetPageNames returns the display names configured on the background.
func (h *Handler) GetPageNames(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	bg, err := h.backgrounds.GetByOwner(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteSuccess(w, PageNamesResponse{Page1: bg.Page1, Page2: bg.Page2}, nil)
}

// GradientColorsResponse carries the three gradient stops.
type GradientColorsResponse struct {
	Color1    string `json:"color1"`
	Color2    string `json:"color2"`
	Color3    string `json:"color3"`
	Position1 string `json:"position1"`
	Position2 string `json:"position2"`
	Position3 string `json:"position3"`
}

// GetGradientColors returns the gradient stops configured on the background.
func (h *Handler) GetGradientColors(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	bg, err := h.backgrounds.GetByOwner(r.Context(), slug)
	if err != nil {
		writeServiceError(w, "background", err)
		return
	}
	WriteSuccess(w, GradientColorsResponse{
		Color1:    bg.Color1,
		Color2:    bg.Color2,
		Color3:    bg.Color3,
		Position1: bg.Position1,
		Position2: bg.Position2,
		Position3: bg.Position3,
	}, nil)
}

// GetPageOne returns the tenant's page_one document.
func (h *Handler) GetPageOne(w http.ResponseWriter, r *http.Request) {
	h.getFixedPage(w, r, model.PageCategoryOne)
}

// GetPageTwo returns the tenant's page_two document.
func (h *Handler) GetPageTwo(w http.ResponseWriter, r *http.Request) {
	h.getFixedPage(w, r, model.PageCategoryTwo)
}

func (h *Handler) getFixedPage(w http.ResponseWriter, r *http.Request, category string) {
	slug := chi.URLParam(r, "slug")

	page, err := h.pages.Get(r.Context(), slug, category)
	if err != nil {
		writeServiceError(w, "page", err)
		return
	}
	WriteSuccess(w, pageToResponse(page), nil)
}

// GetProjectPage returns the page linked to a project card.
func (h *Handler) GetProjectPage(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "project page", func(id int64) (model.Page, error) {
		return h.pages.GetProjectPage(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, pageToResponse(page), nil)
}

// ListImages returns metadata for all uploaded images.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.media.List(r.Context())
	if err != nil {
		writeServiceError(w, "images", err)
		return
	}
	WriteSuccess(w, images, &Meta{Total: len(images)})
}
