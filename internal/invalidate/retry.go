// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package invalidate

import (
	"log/slog"
	"time"
)

// withRetry runs fn up to maxRetries+1 times with exponential backoff:
// baseDelay, 2*baseDelay, 4*baseDelay, and so on. No jitter. sleep is
// injectable for tests.
func withRetry(maxRetries int, baseDelay time.Duration, sleep func(time.Duration), fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxRetries {
			wait := baseDelay * (1 << attempt)
			slog.Warn("cache invalidation attempt failed",
				"attempt", attempt+1,
				"error", lastErr,
				"retry_in", wait,
			)
			sleep(wait)
		} else {
			slog.Error("cache invalidation failed",
				"attempts", maxRetries+1,
				"error", lastErr,
			)
		}
	}

	return lastErr
}
