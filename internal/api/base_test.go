package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soundbored/soundbored-go/internal/apierr"
)

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	var out map[string]string
	err := getJSON(context.Background(), srv.Client(), srv.URL, "op", 5, &out)
	if err != nil {
		t.Fatalf("getJSON after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls=%d, want 3", got)
	}
}

func TestGetJSON_StopsOnNonRetryable(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var out map[string]string
	err := getJSON(context.Background(), srv.Client(), srv.URL, "op", 5, &out)
	if !apierr.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls=%d, want 1 (404 must not be retried)", got)
	}
}

func TestGetJSON_AttemptsBound(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var out map[string]string
	err := getJSON(context.Background(), srv.Client(), srv.URL, "op", 2, &out)
	if k, ok := apierr.KindOf(err); !ok || k != apierr.Server {
		t.Fatalf("want Server error, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls=%d, want exactly 2", got)
	}
}

func TestGetJSON_ContextCancelStopsRetry(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out map[string]string
	err := getJSON(ctx, srv.Client(), srv.URL, "op", 10, &out)
	if err == nil {
		t.Fatal("expected an error")
	}
	if apierr.Retryable(err) {
		// A context error must surface as-is, not classified.
		t.Fatalf("want plain context error, got %v", err)
	}
}

func TestDoOnce_DrainsErrorBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("you are not in a voice channel"))
	}))
	defer srv.Close()

	_, err := doOnce(context.Background(), srv.Client(), http.MethodGet, srv.URL, "op", "", nil, http.StatusOK)
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("want *apierr.Error, got %v", err)
	}
	if ae.Body != "you are not in a voice channel" {
		t.Fatalf("body=%q", ae.Body)
	}
}

func TestPostJSON_NeverRetries(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := postJSON(context.Background(), srv.Client(), srv.URL, "op", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls=%d, mutations must not retry", got)
	}
}

func TestEscapeSoundID(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"123/airhorn", "123/airhorn"},
		{"123/new sound", "123/new%20sound"},
		{"123/50%", "123/50%25"},
		{"guild/a+b", "guild/a+b"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := EscapeSoundID(c.in); got != c.want {
			t.Errorf("EscapeSoundID(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}
