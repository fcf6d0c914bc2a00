package invalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient points a client at a test server with instant retries.
func newTestClient(url string) *Client {
	c := NewClient(Options{
		URL:              url,
		AdminKey:         "secret",
		Timeout:          time.Second,
		FailureThreshold: 5,
		RecoveryTimeout:  time.Minute,
		MaxRetries:       2,
		BaseDelay:        time.Millisecond,
	})
	c.sleep = func(time.Duration) {}
	return c
}

func TestClient_SendsPayloadWithAdminKey(t *testing.T) {
	var gotKey string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-admin-key")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.InvalidateDeck(context.Background(), "alice")

	if gotKey != "secret" {
		t.Errorf("x-admin-key = %q, want %q", gotKey, "secret")
	}
	if gotPayload["kind"] != "deck" || gotPayload["slug"] != "alice" {
		t.Errorf("payload = %v, want deck/alice", gotPayload)
	}
}

func TestClient_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), map[string]any{"kind": "deck", "slug": "x"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}

func TestClient_NegativeMaxRetriesDisablesRetries(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{
		URL:              srv.URL,
		AdminKey:         "secret",
		Timeout:          time.Second,
		FailureThreshold: 5,
		RecoveryTimeout:  time.Minute,
		MaxRetries:       -1,
		BaseDelay:        time.Millisecond,
	})
	c.sleep = func(time.Duration) {}

	if err := c.Send(context.Background(), map[string]any{"kind": "deck", "slug": "x"}); err == nil {
		t.Fatal("Send should fail when the endpoint rejects")
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want exactly 1", calls.Load())
	}
}

func TestClient_OpenBreakerSkipsRequests(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	// 3 attempts per Send; two Sends cross the threshold of 5
	_ = c.Send(context.Background(), map[string]any{"kind": "deck", "slug": "x"})
	_ = c.Send(context.Background(), map[string]any{"kind": "deck", "slug": "x"})

	if !c.BreakerStatus().Open {
		t.Fatal("breaker should be open after repeated failures")
	}

	before := calls.Load()
	c.InvalidateDeck(context.Background(), "x")
	if calls.Load() != before {
		t.Error("open breaker still sent requests")
	}
}

func TestClient_InvalidatePage_RejectsUnknownCategory(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.InvalidatePage(context.Background(), "alice", "project_9")
	if calls.Load() != 0 {
		t.Error("project category must not go through the fixed-page invalidation")
	}

	c.InvalidatePage(context.Background(), "alice", "page_one")
	if calls.Load() != 1 {
		t.Error("fixed category was not sent")
	}
}

func TestClient_InvalidateProjectPage_IncludesSlugWhenKnown(t *testing.T) {
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.InvalidateProjectPage(context.Background(), 42, "alice")

	if gotPayload["kind"] != "project_page" {
		t.Errorf("kind = %v, want project_page", gotPayload["kind"])
	}
	if gotPayload["id"] != float64(42) {
		t.Errorf("id = %v, want 42", gotPayload["id"])
	}
	if gotPayload["slug"] != "alice" {
		t.Errorf("slug = %v, want alice", gotPayload["slug"])
	}
}
