// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package invalidate notifies the frontend SSR cache when content
// changes. Delivery is best-effort: a circuit breaker and retries guard
// the outbound calls, and failures never propagate to the content write
// that triggered them.
package invalidate

import (
	"log/slog"
	"sync"
	"time"
)

// Breaker is a minimal circuit breaker around the invalidation endpoint.
// It opens after a run of consecutive failures and half-opens once the
// recovery timeout has elapsed since the last failure.
type Breaker struct {
	mu               sync.Mutex
	failureThreshold int
	recoveryTimeout  time.Duration
	failureCount     int
	lastFailure      time.Time
	open             bool

	now func() time.Time // injectable for tests
}

// NewBreaker creates a breaker with the given threshold and recovery
// timeout.
func NewBreaker(failureThreshold int, recoveryTimeout time.Duration) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
		now:              time.Now,
	}
}

// CanExecute reports whether a call may proceed. An open breaker lets a
// probe through once the recovery timeout has elapsed, resetting the
// failure count.
func (b *Breaker) CanExecute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}

	if b.now().Sub(b.lastFailure) > b.recoveryTimeout {
		slog.Info("circuit breaker attempting recovery")
		b.open = false
		b.failureCount = 0
		return true
	}

	return false
}

// RecordSuccess resets the breaker to closed.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0
	b.open = false
}

// RecordFailure counts a failure and opens the breaker at the threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.lastFailure = b.now()

	if b.failureCount >= b.failureThreshold {
		b.open = true
		slog.Error("circuit breaker opened", "failures", b.failureCount)
	}
}

// BreakerStatus is a snapshot of the breaker state for monitoring.
type BreakerStatus struct {
	Open             bool      `json:"open"`
	FailureCount     int       `json:"failure_count"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
	FailureThreshold int       `json:"failure_threshold"`
	RecoveryTimeout  string    `json:"recovery_timeout"`
}

// Status returns the current breaker state.
func (b *Breaker) Status() BreakerStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerStatus{
		Open:             b.open,
		FailureCount:     b.failureCount,
		LastFailure:      b.lastFailure,
		FailureThreshold: b.failureThreshold,
		RecoveryTimeout:  b.recoveryTimeout.String(),
	}
}
