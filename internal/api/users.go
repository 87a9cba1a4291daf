package api

import (
	"context"
	"net/http"

	"github.com/soundbored/soundbored-go/internal/types"
)

// GetUser fetches the authenticated user and its guild memberships.
func GetUser(ctx context.Context, hc *http.Client, baseURL string, attempts int) (*types.User, error) {
	var u types.User
	if err := getJSON(ctx, hc, baseURL+"/api/user", "get user", attempts, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAppInfo fetches server build metadata.
func GetAppInfo(ctx context.Context, hc *http.Client, baseURL string, attempts int) (*types.AppInfo, error) {
	var info types.AppInfo
	if err := getJSON(ctx, hc, baseURL+"/api/info", "get app info", attempts, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Logout invalidates the server-side session. Callers clear local session
// state only after this succeeds.
func Logout(ctx context.Context, hc *http.Client, baseURL string) error {
	return postJSON(ctx, hc, baseURL+"/api/auth/logout", "logout", nil, nil)
}

// GetAuthToken returns the caller's automation token. A NotFound error
// means no token has been generated yet.
func GetAuthToken(ctx context.Context, hc *http.Client, baseURL string) (*types.AuthToken, error) {
	var tok types.AuthToken
	if err := getJSONOnce(ctx, hc, baseURL+"/api/auth/token", "get auth token", &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// GenerateAuthToken issues a fresh automation token, replacing any
// previous one.
func GenerateAuthToken(ctx context.Context, hc *http.Client, baseURL string) (*types.AuthToken, error) {
	var tok types.AuthToken
	if err := postJSON(ctx, hc, baseURL+"/api/auth/token", "generate auth token", nil, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
