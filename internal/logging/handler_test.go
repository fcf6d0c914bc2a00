// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/shmooz/shmooz-go/internal/model"
	"github.com/shmooz/shmooz-go/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "shmooz-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func latestEvent(t *testing.T, db *sql.DB) model.Event {
	t.Helper()
	events, err := store.New(db).ListRecentEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("no events recorded")
	}
	return events[0]
}

func TestEventLogHandler_ErrorLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Error("cache invalidation failed", "slug", "alice", "attempts", 3)

	event := latestEvent(t, db)
	if event.Level != model.EventLevelError {
		t.Errorf("level = %q, want %q", event.Level, model.EventLevelError)
	}
	if event.Category != model.EventCategoryInvalidate {
		t.Errorf("category = %q, want %q", event.Category, model.EventCategoryInvalidate)
	}
	if !strings.Contains(event.Metadata, `"slug":"alice"`) {
		t.Errorf("metadata missing attribute: %s", event.Metadata)
	}
}

func TestEventLogHandler_InfoNotMirrored(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("server started", "addr", "localhost:8080")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("info log was mirrored to the event log: %v", events)
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("something odd", "category", model.EventCategorySlug)

	event := latestEvent(t, db)
	if event.Category != model.EventCategorySlug {
		t.Errorf("category = %q, want %q", event.Category, model.EventCategorySlug)
	}
	if strings.Contains(event.Metadata, "category") {
		t.Errorf("category attribute leaked into metadata: %s", event.Metadata)
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"circuit breaker opened", model.EventCategoryInvalidate},
		{"slug rename cascade failed", model.EventCategorySlug},
		{"deck list query failed", model.EventCategoryContent},
		{"disk almost full", model.EventCategorySystem},
	}

	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			logger.Warn(tt.message)
			if event := latestEvent(t, db); event.Category != tt.want {
				t.Errorf("category for %q = %q, want %q", tt.message, event.Category, tt.want)
			}
		})
	}
}

func TestEscapeJSON(t *testing.T) {
	got := escapeJSON("a\"b\\c\nd")
	want := `a\"b\\c\nd`
	if got != want {
		t.Errorf("escapeJSON = %q, want %q", got, want)
	}
}
