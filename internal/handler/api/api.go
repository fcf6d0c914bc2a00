// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the portfolio backend.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shmooz/shmooz-go/internal/cache"
	"github.com/shmooz/shmooz-go/internal/invalidate"
	"github.com/shmooz/shmooz-go/internal/layout"
	"github.com/shmooz/shmooz-go/internal/service"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	slugs       *service.SlugService
	decks       *service.DeckService
	cards       *service.ProjectCardService
	backgrounds *service.BackgroundService
	pages       *service.PageService
	media       *service.MediaService
	resync      *service.ResyncService
	events      *service.EventService
	client      *invalidate.Client
	cache       cache.Cacher
}

// Deps lists the services the handler dispatches to.
type Deps struct {
	Slugs       *service.SlugService
	Decks       *service.DeckService
	Cards       *service.ProjectCardService
	Backgrounds *service.BackgroundService
	Pages       *service.PageService
	Media       *service.MediaService
	Resync      *service.ResyncService
	Events      *service.EventService
	Client      *invalidate.Client
	Cache       cache.Cacher
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		slugs:       deps.Slugs,
		decks:       deps.Decks,
		cards:       deps.Cards,
		backgrounds: deps.Backgrounds,
		pages:       deps.Pages,
		media:       deps.Media,
		resync:      deps.Resync,
		events:      deps.Events,
		client:      deps.Client,
		cache:       deps.Cache,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains listing metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", message, details)
}

// writeServiceError maps domain errors onto API responses. Unknown
// errors become opaque 500s; the detail goes to the log only.
func writeServiceError(w http.ResponseWriter, entityName string, err error) {
	var layoutErr *layout.Error
	if errors.As(err, &layoutErr) {
		details := map[string]string{
			"kind": string(layoutErr.Kind),
		}
		if layoutErr.BlockID != "" {
			details["block"] = layoutErr.BlockID
		}
		if layoutErr.ItemID != "" {
			details["item"] = layoutErr.ItemID
		}
		if layoutErr.Field != "" {
			details["field"] = layoutErr.Field
		}
		WriteValidationError(w, layoutErr.Error(), details)
		return
	}

	var conflict *service.RenameConflictError
	if errors.As(err, &conflict) {
		WriteError(w, http.StatusConflict, "rename_conflict", conflict.Error(), map[string]string{
			"categories": strings.Join(conflict.Categories, ","),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidSlug):
		WriteValidationError(w, err.Error(), map[string]string{"slug": "invalid"})
	case errors.Is(err, service.ErrSlugTaken):
		WriteValidationError(w, err.Error(), map[string]string{"slug": "taken"})
	case errors.Is(err, service.ErrUnknownCategory):
		WriteValidationError(w, err.Error(), map[string]string{"category": "unknown"})
	case errors.Is(err, sql.ErrNoRows):
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
	default:
		slog.Error("request failed", "entity", entityName, "error", err)
		WriteInternalError(w, "Failed to process "+entityName)
	}
}

// ParseIDParam parses the {id} URL parameter as int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if
// a response was already written.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		writeServiceError(w, entityName, err)
		return zero, false
	}

	return entity, true
}

// decodeBody decodes a JSON request body into dst. Returns false if a
// response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}
