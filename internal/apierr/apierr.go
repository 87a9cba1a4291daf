// Package apierr classifies failures of remote calls so callers can pick
// the right message and retry policy per kind.
package apierr

import (
	"errors"
	"fmt"
)

// Kind is the client-observed failure category.
type Kind int

const (
	// Transport covers network-level failures with no HTTP response.
	Transport Kind = iota
	// Unauthorized means the session expired (401); callers invalidate
	// session state instead of showing a local error.
	Unauthorized
	// NotFound means the entity no longer exists (404), e.g. a sound
	// deleted concurrently.
	NotFound
	// Precondition means a caller-side precondition failed (400), e.g. the
	// user is not in a voice channel visible to the bot.
	Precondition
	// Conflict means the bot-side state does not allow the operation
	// (409/503), e.g. the bot is not connected to a voice channel.
	Conflict
	// Server covers the remaining 5xx responses.
	Server
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Transport:
		return "Transport"
	case Unauthorized:
		return "Unauthorized"
	case NotFound:
		return "NotFound"
	case Precondition:
		return "Precondition"
	case Conflict:
		return "Conflict"
	case Server:
		return "Server"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error wraps a failed remote call with its classification.
type Error struct {
	Kind       Kind
	StatusCode int    // 0 for transport errors
	Body       string // response body, for debugging
	Op         string // operation that failed, e.g. "play sound"
	Err        error  // underlying error, may be nil for pure HTTP failures
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s: HTTP %d", e.Kind, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FromStatus classifies an unexpected HTTP status code.
func FromStatus(op string, statusCode int, body string) *Error {
	return &Error{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Op:         op,
	}
}

// FromTransport classifies a network-level failure.
func FromTransport(op string, err error) *Error {
	return &Error{Kind: Transport, Op: op, Err: err}
}

func kindForStatus(statusCode int) Kind {
	switch {
	case statusCode == 401:
		return Unauthorized
	case statusCode == 404:
		return NotFound
	case statusCode == 409:
		return Conflict
	case statusCode == 503:
		return Conflict
	case statusCode >= 400 && statusCode < 500:
		return Precondition
	default:
		return Server
	}
}

// KindOf extracts the classification from err. ok is false when err carries
// no *Error in its chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// Retryable reports whether err may be resolved by trying again. Only
// server-side and transport failures qualify; retrying an unmet
// precondition is pointless.
func Retryable(err error) bool {
	k, ok := KindOf(err)
	if !ok {
		// Unclassified errors are caller bugs or context cancellations.
		return false
	}
	return k == Server || k == Transport
}

func is(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// IsUnauthorized reports whether err is a session-expiry failure.
func IsUnauthorized(err error) bool { return is(err, Unauthorized) }

// IsNotFound reports whether err is an entity-missing failure.
func IsNotFound(err error) bool { return is(err, NotFound) }

// IsPrecondition reports whether err is a caller-side precondition failure.
func IsPrecondition(err error) bool { return is(err, Precondition) }

// IsConflict reports whether err is a bot-side state failure.
func IsConflict(err error) bool { return is(err, Conflict) }
