// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testAdminKey = "test-secret-key-32-bytes-long!!!"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminKeyAuth_ValidKey(t *testing.T) {
	h := AdminKeyAuth(testAdminKey)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/resync", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAdminKeyAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing_header", ""},
		{"not_bearer", "Basic abc123"},
		{"empty_token", "Bearer "},
		{"wrong_key", "Bearer wrong-key"},
		{"key_prefix_only", "Bearer " + testAdminKey[:16]},
	}

	h := AdminKeyAuth(testAdminKey)(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/resync", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}

			var apiErr APIError
			if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if apiErr.Error.Code != "unauthorized" {
				t.Errorf("error code = %q, want %q", apiErr.Error.Code, "unauthorized")
			}
		})
	}
}

func TestAdminKeyAuth_CaseInsensitiveScheme(t *testing.T) {
	h := AdminKeyAuth(testAdminKey)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+testAdminKey)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"x_real_ip", "10.0.0.1", "", "127.0.0.1:1234", "10.0.0.1"},
		{"x_forwarded_for", "", "10.0.0.2", "127.0.0.1:1234", "10.0.0.2"},
		{"x_forwarded_for_chain", "", "10.0.0.3, 172.16.0.1", "127.0.0.1:1234", "10.0.0.3"},
		{"remote_addr_fallback", "", "", "192.168.1.1:5678", "192.168.1.1:5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
