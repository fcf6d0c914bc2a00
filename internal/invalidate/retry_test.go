package invalidate

import (
	"errors"
	"testing"
	"time"
)

func TestWithRetry_BackoffDoubles(t *testing.T) {
	var slept []time.Duration
	sleep := func(d time.Duration) { slept = append(slept, d) }

	failing := errors.New("boom")
	err := withRetry(3, 100*time.Millisecond, sleep, func() error { return failing })
	if !errors.Is(err, failing) {
		t.Fatalf("withRetry returned %v, want the last error", err)
	}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("slept %d times, want %d", len(slept), len(want))
	}
	for i, d := range want {
		if slept[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, slept[i], d)
		}
	}
}

func TestWithRetry_StopsOnSuccess(t *testing.T) {
	var slept []time.Duration
	attempts := 0

	err := withRetry(3, time.Millisecond, func(d time.Duration) { slept = append(slept, d) }, func() error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(slept) != 1 {
		t.Errorf("slept %d times, want 1", len(slept))
	}
}
