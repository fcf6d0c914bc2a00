// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SHMOOZ_DB_PATH" envDefault:"./data/shmooz.db"`
	AdminKey   string `env:"SHMOOZ_ADMIN_KEY,required"`
	ServerHost string `env:"SHMOOZ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SHMOOZ_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SHMOOZ_ENV" envDefault:"development"`
	LogLevel   string `env:"SHMOOZ_LOG_LEVEL" envDefault:"info"`
	MediaDir   string `env:"SHMOOZ_MEDIA_DIR" envDefault:"./media"`

	// Cache configuration
	RedisURL     string `env:"SHMOOZ_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SHMOOZ_CACHE_PREFIX" envDefault:"shmooz:"` // Redis key prefix
	CacheTTL     int    `env:"SHMOOZ_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SHMOOZ_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Frontend SSR cache invalidation
	InvalidateURL              string  `env:"SHMOOZ_INVALIDATE_URL" envDefault:"http://frontend:4000/__admin/ssr-cache/invalidate"`
	InvalidateKey              string  `env:"SHMOOZ_INVALIDATE_KEY"`                          // Outbound x-admin-key; falls back to AdminKey
	InvalidateTimeout          float64 `env:"SHMOOZ_INVALIDATE_TIMEOUT" envDefault:"5"`       // Per-attempt timeout in seconds
	InvalidateFailureThreshold int     `env:"SHMOOZ_INVALIDATE_FAILURE_THRESHOLD" envDefault:"5"`
	InvalidateRecoveryTimeout  int     `env:"SHMOOZ_INVALIDATE_RECOVERY_TIMEOUT" envDefault:"60"` // Seconds
	InvalidateMaxRetries       int     `env:"SHMOOZ_INVALIDATE_MAX_RETRIES" envDefault:"3"`
	InvalidateBaseDelay        float64 `env:"SHMOOZ_INVALIDATE_BASE_DELAY" envDefault:"1"` // Seconds

	// Scheduled jobs
	ResyncSchedule     string `env:"SHMOOZ_RESYNC_SCHEDULE" envDefault:"0 4 * * *"` // Cron spec; empty disables
	EventRetentionDays int    `env:"SHMOOZ_EVENT_RETENTION_DAYS" envDefault:"30"`

	// Admin API rate limiting
	AdminRateLimit float64 `env:"SHMOOZ_ADMIN_RATE_LIMIT" envDefault:"10"` // Requests per second per IP
	AdminRateBurst int     `env:"SHMOOZ_ADMIN_RATE_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// OutboundKey returns the key sent to the frontend invalidation
// endpoint.
func (c Config) OutboundKey() string {
	if c.InvalidateKey != "" {
		return c.InvalidateKey
	}
	return c.AdminKey
}

// InvalidateTimeoutDuration returns the per-attempt timeout.
func (c Config) InvalidateTimeoutDuration() time.Duration {
	return time.Duration(c.InvalidateTimeout * float64(time.Second))
}

// InvalidateBaseDelayDuration returns the first retry backoff interval.
func (c Config) InvalidateBaseDelayDuration() time.Duration {
	return time.Duration(c.InvalidateBaseDelay * float64(time.Second))
}

// CacheTTLDuration returns the default cache TTL.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// MinAdminKeyLength is the minimum required length for the admin key.
const MinAdminKeyLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate admin key length
	if len(cfg.AdminKey) < MinAdminKeyLength {
		return nil, fmt.Errorf("SHMOOZ_ADMIN_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure key with: openssl rand -base64 32",
			MinAdminKeyLength, len(cfg.AdminKey))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.AdminKey == weak {
			return nil, fmt.Errorf("SHMOOZ_ADMIN_KEY is a known default value and must not be used; " +
				"generate a secure key with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy keys
	if !hasMinimumEntropy(cfg.AdminKey) {
		slog.Warn("SHMOOZ_ADMIN_KEY has low character diversity; " +
			"consider generating a random key with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
