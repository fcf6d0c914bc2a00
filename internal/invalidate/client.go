// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package invalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shmooz/shmooz-go/internal/model"
)

const userAgent = "shmooz-cache-invalidator/1.0"

// Options configures the invalidation client.
type Options struct {
	// URL is the frontend SSR invalidation endpoint.
	URL string
	// AdminKey is sent in the x-admin-key header.
	AdminKey string
	// Timeout bounds one HTTP attempt. Defaults to 5s.
	Timeout time.Duration
	// FailureThreshold opens the breaker. Defaults to 5.
	FailureThreshold int
	// RecoveryTimeout half-opens the breaker. Defaults to 60s.
	RecoveryTimeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	// Zero means the default of 3; a negative value disables retries.
	MaxRetries int
	// BaseDelay is the first backoff interval. Defaults to 1s.
	BaseDelay time.Duration
}

// Client sends invalidation payloads to the frontend SSR cache. All
// Invalidate* methods are fire-and-forget: delivery failures are logged
// and swallowed so content writes never fail on them.
type Client struct {
	url        string
	adminKey   string
	httpClient *http.Client
	breaker    *Breaker
	maxRetries int
	baseDelay  time.Duration

	sleep func(time.Duration) // injectable for tests
}

// NewClient creates an invalidation client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 5
	}
	if opts.RecoveryTimeout <= 0 {
		opts.RecoveryTimeout = 60 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}

	return &Client{
		url:        opts.URL,
		adminKey:   opts.AdminKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		breaker:    NewBreaker(opts.FailureThreshold, opts.RecoveryTimeout),
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
		sleep:      time.Sleep,
	}
}

// BreakerStatus exposes the breaker state for monitoring.
func (c *Client) BreakerStatus() BreakerStatus {
	return c.breaker.Status()
}

// Send delivers one payload with retries. The breaker gate applies per
// attempt: an open breaker skips the attempt without error.
func (c *Client) Send(ctx context.Context, payload map[string]any) error {
	return withRetry(c.maxRetries, c.baseDelay, c.sleep, func() error {
		return c.sendOnce(ctx, payload)
	})
}

func (c *Client) sendOnce(ctx context.Context, payload map[string]any) error {
	if !c.breaker.CanExecute() {
		slog.Warn("cache invalidation skipped, circuit breaker is open")
		return nil
	}

	if c.url == "" {
		slog.Error("invalidation URL not configured")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("x-admin-key", c.adminKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	slog.Info("sending cache invalidation", "payload", string(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("cache invalidation request failed",
			"duration", time.Since(start),
			"error", err,
		)
		c.breaker.RecordFailure()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		slog.Error("cache invalidation rejected",
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"body", string(snippet),
		)
		c.breaker.RecordFailure()
		return fmt.Errorf("invalidation endpoint returned %d", resp.StatusCode)
	}

	slog.Info("cache invalidation successful",
		"duration", time.Since(start),
		"payload", string(body),
	)
	c.breaker.RecordSuccess()
	return nil
}

// safe logs and swallows an invalidation failure.
func safe(what string, err error) {
	if err != nil {
		slog.Error("cache invalidation failed", "target", what, "error", err)
	}
}

// InvalidateDeck invalidates the deck cache of one slug.
func (c *Client) InvalidateDeck(ctx context.Context, slug string) {
	if slug == "" {
		slog.Warn("cannot invalidate deck cache, slug is empty")
		return
	}
	safe("deck", c.Send(ctx, map[string]any{"kind": "deck", "slug": slug}))
}

// InvalidateBackground invalidates the background cache of one slug.
func (c *Client) InvalidateBackground(ctx context.Context, slug string) {
	if slug == "" {
		slog.Warn("cannot invalidate background cache, slug is empty")
		return
	}
	safe("background", c.Send(ctx, map[string]any{"kind": "background", "slug": slug}))
}

// InvalidatePage invalidates one fixed page. Categories outside the two
// fixed ones are rejected here; project pages go through
// InvalidateProjectPage instead.
func (c *Client) InvalidatePage(ctx context.Context, slug, category string) {
	if slug == "" || category == "" {
		slog.Warn("cannot invalidate page cache", "slug", slug, "category", category)
		return
	}
	if !model.IsFixedCategory(category) {
		slog.Warn("invalid page category for invalidation", "category", category)
		return
	}
	safe("page", c.Send(ctx, map[string]any{"kind": "page", "slug": slug, "category": category}))
}

// InvalidateProjectPage invalidates the page of one project card. The
// slug is included when known.
func (c *Client) InvalidateProjectPage(ctx context.Context, projectID int64, slug string) {
	if projectID == 0 {
		slog.Warn("cannot invalidate project page cache, project id is empty")
		return
	}
	payload := map[string]any{"kind": "project_page", "id": projectID}
	if slug != "" {
		payload["slug"] = slug
	}
	safe("project_page", c.Send(ctx, payload))
}
