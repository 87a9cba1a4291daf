package soundboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundbored/soundbored-go/state"
)

func TestNew_EmptyBaseURLPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("New(\"\") must panic")
		}
	}()
	New("")
}

func TestClient_BearerTokenOnEveryRequest(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(User{ID: "u1"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithAuthToken("tok-9"))
	if _, err := c.GetUser(context.Background()); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Fatalf("Authorization=%q", gotAuth)
	}
}

func TestClient_UnauthorizedReadClearsUserContainer(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	user := state.NewCurrentUser()
	user.Set(User{ID: "u1"})

	c := New(srv.URL, WithUserContainer(user))
	_, err := c.ListSounds(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("want Unauthorized, got %v", err)
	}
	if user.Loaded() {
		t.Fatal("session expiry must clear the user container")
	}
}

func TestClient_LogoutClearsUserOnlyOnSuccess(t *testing.T) {
	t.Parallel()
	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	user := state.NewCurrentUser()
	user.Set(User{ID: "u1"})
	c := New(srv.URL, WithUserContainer(user))

	if err := c.Logout(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	if !user.Loaded() {
		t.Fatal("failed logout must keep the session")
	}

	fail = false
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if user.Loaded() {
		t.Fatal("successful logout must clear the session")
	}
}

func TestClient_SubscribeEventsPath(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.SubscribeEvents(context.Background(), "g1")
	if err != nil {
		t.Fatalf("SubscribeEvents: %v", err)
	}
	s.Close()
	for range s.Events() {
	}
	if gotPath != "/api/g1/events" {
		t.Fatalf("path=%q", gotPath)
	}
}

func TestClient_URLHelpers(t *testing.T) {
	t.Parallel()
	c := New("http://host")
	if got := c.SoundDownloadURL("g1/my sound"); got != "http://host/api/sounds/g1/my%20sound" {
		t.Fatalf("SoundDownloadURL=%q", got)
	}
	if got := c.RecordingUserURL("g1", 1700000000, "u1"); got != "http://host/api/guilds/g1/recordings/1700000000/u1" {
		t.Fatalf("RecordingUserURL=%q", got)
	}
	if c.BaseURL() != "http://host" {
		t.Fatalf("BaseURL=%q", c.BaseURL())
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestClient_ReadRetryAttemptsOption(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithReadRetryAttempts(2))
	if _, err := c.GetAppInfo(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	if calls != 2 {
		t.Fatalf("calls=%d, want 2", calls)
	}
}
