package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundbored/soundbored-go/internal/apierr"
	"github.com/soundbored/soundbored-go/internal/types"
)

func TestGetUser_Success(t *testing.T) {
	t.Parallel()
	want := types.User{
		ID:       "u1",
		Username: "alice",
		Guilds:   []types.Guild{{ID: "g1", Name: "my guild", Role: types.RoleAdmin}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user" {
			t.Errorf("path=%s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := GetUser(context.Background(), srv.Client(), srv.URL, 1)
	if err != nil || got == nil || got.ID != "u1" || len(got.Guilds) != 1 {
		t.Fatalf("GetUser unexpected: got=%+v err=%v", got, err)
	}
	if got.Guilds[0].Role != types.RoleAdmin {
		t.Fatalf("role=%q", got.Guilds[0].Role)
	}
}

func TestGetUser_Unauthorized(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := GetUser(context.Background(), srv.Client(), srv.URL, 3)
	if !apierr.IsUnauthorized(err) {
		t.Fatalf("want Unauthorized, got %v", err)
	}
}

func TestGetAppInfo_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AppInfo{Version: "1.2.3", DiscordClientID: "cid"})
	}))
	defer srv.Close()

	info, err := GetAppInfo(context.Background(), srv.Client(), srv.URL, 1)
	if err != nil || info == nil || info.Version != "1.2.3" {
		t.Fatalf("GetAppInfo unexpected: got=%+v err=%v", info, err)
	}
}

func TestLogout_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/logout" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	if err := Logout(context.Background(), srv.Client(), srv.URL); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
}

func TestGetAuthToken_NotFoundMeansNoToken(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := GetAuthToken(context.Background(), srv.Client(), srv.URL)
	if !apierr.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestGenerateAuthToken_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(types.AuthToken{Token: "tok-123"})
	}))
	defer srv.Close()

	tok, err := GenerateAuthToken(context.Background(), srv.Client(), srv.URL)
	if err != nil || tok == nil || tok.Token != "tok-123" {
		t.Fatalf("GenerateAuthToken unexpected: got=%+v err=%v", tok, err)
	}
}
