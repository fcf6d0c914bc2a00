// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shmooz/shmooz-go/internal/middleware"
)

// RouterConfig holds the knobs the router needs beyond the handler itself.
type RouterConfig struct {
	AdminKey       string
	AdminRateLimit float64
	AdminRateBurst int
	IsDevelopment  bool
	MediaDir       string
}

// NewRouter builds the full route tree: public read endpoints, the
// admin write endpoints behind bearer-key auth and rate limiting, and
// static media serving.
func NewRouter(h *Handler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public read API, consumed by the SSR frontend
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/slugs/", h.ListSlugs)
		r.Get("/deck/{slug}", h.GetDecks)
		r.Get("/projects/{slug}", h.GetProjects)
		r.Get("/background/{slug}", h.GetBackground)
		r.Get("/page-names/{slug}", h.GetPageNames)
		r.Get("/gradient-colors/{slug}", h.GetGradientColors)
		r.Get("/page1/{slug}", h.GetPageOne)
		r.Get("/page2/{slug}", h.GetPageTwo)
		r.Get("/project_page/{id}", h.GetProjectPage)
		r.Get("/images/", h.ListImages)

		// Admin write API
		r.Route("/auth", func(r chi.Router) {
			rateLimiter := middleware.NewIPRateLimiter(cfg.AdminRateLimit, cfg.AdminRateBurst)
			r.Use(rateLimiter.Middleware())
			r.Use(middleware.AdminKeyAuth(cfg.AdminKey))

			r.Post("/create_slug/", h.CreateSlug)
			r.Put("/alter_slug/{id}", h.RenameSlug)
			r.Delete("/alter_slug/{id}", h.DeleteSlug)

			r.Post("/create_deck/{slug}", h.CreateDeck)
			r.Put("/alter_deck/{id}", h.UpdateDeck)
			r.Delete("/alter_deck/{id}", h.DeleteDeck)

			r.Post("/create_project_card/{slug}", h.CreateProjectCard)
			r.Put("/alter_project_card/{id}", h.UpdateProjectCard)
			r.Delete("/alter_project_card/{id}", h.DeleteProjectCard)

			r.Post("/create_background/{slug}", h.CreateBackground)
			r.Put("/alter_background/{id}", h.UpdateBackground)
			r.Delete("/alter_background/{id}", h.DeleteBackground)

			r.Post("/upload_page/", h.UploadPage)
			r.Put("/alter_page/{id}", h.UpdatePage)
			r.Delete("/alter_page/{id}", h.DeletePage)

			r.Post("/upload_image/", h.UploadImage)
			r.Delete("/alter_image/{id}", h.DeleteImage)

			r.Post("/resync", h.Resync)
			r.Get("/breaker", h.BreakerStatus)
			r.Get("/cache", h.CacheStatus)
			r.Get("/events", h.ListEvents)
		})
	})

	// Uploaded images
	if cfg.MediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	return r
}
