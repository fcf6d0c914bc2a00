// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "SHMOOZ_ADMIN_KEY", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.DBPath != "./data/shmooz.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/shmooz.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.InvalidateTimeoutDuration() != 5*time.Second {
		t.Errorf("InvalidateTimeoutDuration() = %v, want 5s", cfg.InvalidateTimeoutDuration())
	}
	if cfg.InvalidateFailureThreshold != 5 {
		t.Errorf("InvalidateFailureThreshold = %d, want 5", cfg.InvalidateFailureThreshold)
	}
	if cfg.ResyncSchedule != "0 4 * * *" {
		t.Errorf("ResyncSchedule = %q, want %q", cfg.ResyncSchedule, "0 4 * * *")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customKey := "custom-secret-key-32-bytes-long!"
	setEnv(t, "SHMOOZ_ADMIN_KEY", customKey)
	setEnv(t, "SHMOOZ_DB_PATH", "/custom/path.db")
	setEnv(t, "SHMOOZ_SERVER_HOST", "0.0.0.0")
	setEnv(t, "SHMOOZ_SERVER_PORT", "3000")
	setEnv(t, "SHMOOZ_ENV", "production")
	setEnv(t, "SHMOOZ_LOG_LEVEL", "debug")
	setEnv(t, "SHMOOZ_INVALIDATE_URL", "http://ssr:4000/invalidate")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AdminKey != customKey {
		t.Errorf("AdminKey = %q, want %q", cfg.AdminKey, customKey)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.InvalidateURL != "http://ssr:4000/invalidate" {
		t.Errorf("InvalidateURL = %q", cfg.InvalidateURL)
	}
}

func TestLoad_RequiredAdminKey(t *testing.T) {
	os.Clearenv()
	// Don't set SHMOOZ_ADMIN_KEY

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when SHMOOZ_ADMIN_KEY is not set")
	}
}

func TestLoad_AdminKeyTooShort(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"}, // 31 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "SHMOOZ_ADMIN_KEY", tt.key)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte key", len(tt.key))
			}
		})
	}
}

func TestLoad_AdminKeyMinimumLength(t *testing.T) {
	os.Clearenv()
	// Exactly 32 bytes should work
	key32 := "12345678901234567890123456789012"
	setEnv(t, "SHMOOZ_ADMIN_KEY", key32)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should succeed with 32-byte key: %v", err)
	}
	if cfg.AdminKey != key32 {
		t.Errorf("AdminKey = %q, want %q", cfg.AdminKey, key32)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"127.0.0.1", 443, "127.0.0.1:443"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_OutboundKey(t *testing.T) {
	t.Run("falls_back_to_admin_key", func(t *testing.T) {
		cfg := Config{AdminKey: "admin"}
		if got := cfg.OutboundKey(); got != "admin" {
			t.Errorf("OutboundKey() = %q, want %q", got, "admin")
		}
	})

	t.Run("prefers_dedicated_key", func(t *testing.T) {
		cfg := Config{AdminKey: "admin", InvalidateKey: "outbound"}
		if got := cfg.OutboundKey(); got != "outbound" {
			t.Errorf("OutboundKey() = %q, want %q", got, "outbound")
		}
	})
}

func TestLoad_MediaDir(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		os.Clearenv()
		setEnv(t, "SHMOOZ_ADMIN_KEY", "test-secret-key-32-bytes-long!!!")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}

		if cfg.MediaDir != "./media" {
			t.Errorf("MediaDir = %q, want %q", cfg.MediaDir, "./media")
		}
	})

	t.Run("custom_value", func(t *testing.T) {
		os.Clearenv()
		setEnv(t, "SHMOOZ_ADMIN_KEY", "test-secret-key-32-bytes-long!!!")
		setEnv(t, "SHMOOZ_MEDIA_DIR", "/var/www/media")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}

		if cfg.MediaDir != "/var/www/media" {
			t.Errorf("MediaDir = %q, want %q", cfg.MediaDir, "/var/www/media")
		}
	})
}
