// Package api holds one function per remote operation. Functions take the
// http.Client and base URL explicitly so tests can point them at an
// httptest server, matching the surrounding SDK's dependency style.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/soundbored/soundbored-go/internal/apierr"
)

// DefaultReadAttempts bounds the automatic retry of idempotent reads.
// Mutations never retry; a duplicate side effect (a sound played twice) is
// worse than a surfaced error.
const DefaultReadAttempts = 5

const maxErrBody = 4 << 10

// doOnce performs a single request and maps failures into the shared
// taxonomy. A response with an unexpected status is drained, classified and
// closed here; on success the caller owns the body.
func doOnce(ctx context.Context, hc *http.Client, method, rawURL, op string, contentType string, body io.Reader, wantStatus int) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apierr.FromTransport(op, err)
	}

	if resp.StatusCode != wantStatus {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		_ = resp.Body.Close()
		return nil, apierr.FromStatus(op, resp.StatusCode, string(b))
	}
	return resp, nil
}

// getJSON fetches rawURL and decodes the JSON response into out, retrying
// retryable failures up to attempts total tries with exponential backoff.
func getJSON(ctx context.Context, hc *http.Client, rawURL, op string, attempts int, out any) error {
	if attempts <= 0 {
		attempts = DefaultReadAttempts
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			retriesTotal.WithLabelValues(op).Inc()
			select {
			case <-time.After(exp.NextBackOff()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = getJSONOnce(ctx, hc, rawURL, op, out)
		if lastErr == nil {
			return nil
		}
		if !apierr.Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func getJSONOnce(ctx context.Context, hc *http.Client, rawURL, op string, out any) error {
	resp, err := doOnce(ctx, hc, http.MethodGet, rawURL, op, "", nil, http.StatusOK)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// postJSON sends payload (may be nil) and decodes the JSON response into
// out (skipped when nil). Never retries.
func postJSON(ctx context.Context, hc *http.Client, rawURL, op string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
		contentType = "application/json"
	}

	resp, err := doOnce(ctx, hc, http.MethodPost, rawURL, op, contentType, body, http.StatusOK)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// putJSON sends payload with PUT and discards the text acknowledgement.
// Never retries.
func putJSON(ctx context.Context, hc *http.Client, rawURL, op string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := doOnce(ctx, hc, http.MethodPut, rawURL, op, "application/json", strings.NewReader(string(b)), http.StatusOK)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// del issues a DELETE and discards the acknowledgement. Never retries.
func del(ctx context.Context, hc *http.Client, rawURL, op string) error {
	resp, err := doOnce(ctx, hc, http.MethodDelete, rawURL, op, "", nil, http.StatusOK)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

// EscapeSoundID escapes a guild-scoped sound id for use in a URL path.
// Ids contain literal slashes separating guild and name, so each segment is
// escaped individually.
func EscapeSoundID(id string) string {
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
