// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic jobs: the nightly frontend cache
// resync and event log pruning.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shmooz/shmooz-go/internal/service"
)

// pruneSchedule runs event log pruning once a day.
const pruneSchedule = "30 4 * * *"

// Config holds the scheduler settings.
type Config struct {
	// ResyncSchedule is the cron spec for the frontend cache resync.
	// Empty disables the job.
	ResyncSchedule string

	// EventRetention is how long event rows are kept. Zero or negative
	// disables pruning.
	EventRetention time.Duration
}

// Scheduler handles the periodic background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	resync *service.ResyncService
	events *service.EventService
	cfg    Config
}

// New creates a new scheduler instance.
func New(resync *service.ResyncService, events *service.EventService, logger *slog.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		resync: resync,
		events: events,
		cfg:    cfg,
	}
}

// Start registers the configured jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	if s.cfg.ResyncSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.ResyncSchedule, s.runResync); err != nil {
			return err
		}
	}

	if s.cfg.EventRetention > 0 {
		if _, err := s.cron.AddFunc(pruneSchedule, s.pruneEvents); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// runResync re-announces every tenant to the frontend cache.
func (s *Scheduler) runResync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := s.resync.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled resync failed", "error", err)
		return
	}
	s.logger.Info("scheduled resync completed", "slugs", count)
}

// pruneEvents deletes event rows older than the retention window.
func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.events.Prune(ctx, s.cfg.EventRetention)
	if err != nil {
		s.logger.Error("event prune failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("pruned old events", "deleted", deleted)
	}
}
