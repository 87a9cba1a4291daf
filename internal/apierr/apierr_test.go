package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindForStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   Kind
	}{
		{400, Precondition},
		{401, Unauthorized},
		{403, Precondition},
		{404, NotFound},
		{409, Conflict},
		{422, Precondition},
		{500, Server},
		{502, Server},
		{503, Conflict},
	}
	for _, c := range cases {
		e := FromStatus("op", c.status, "")
		if e.Kind != c.want {
			t.Errorf("status %d: got %v, want %v", c.status, e.Kind, c.want)
		}
		if e.StatusCode != c.status {
			t.Errorf("status %d: StatusCode=%d", c.status, e.StatusCode)
		}
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	if !Retryable(FromStatus("op", 500, "")) {
		t.Error("500 should be retryable")
	}
	if !Retryable(FromTransport("op", errors.New("conn refused"))) {
		t.Error("transport failure should be retryable")
	}
	for _, status := range []int{400, 401, 404, 409, 503} {
		if Retryable(FromStatus("op", status, "")) {
			t.Errorf("status %d should not be retryable", status)
		}
	}
	if Retryable(errors.New("plain")) {
		t.Error("unclassified error should not be retryable")
	}
	if Retryable(nil) {
		t.Error("nil should not be retryable")
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	t.Parallel()
	inner := FromStatus("play sound", 404, "gone")
	wrapped := fmt.Errorf("loading view: %w", inner)

	k, ok := KindOf(wrapped)
	if !ok || k != NotFound {
		t.Fatalf("KindOf(wrapped)=%v,%v", k, ok)
	}
	if StatusOf(wrapped) != 404 {
		t.Fatalf("StatusOf(wrapped)=%d", StatusOf(wrapped))
	}
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound(wrapped) should hold")
	}
}

func TestErrorString(t *testing.T) {
	t.Parallel()
	e := FromStatus("play sound", 503, "busy")
	if got := e.Error(); got != "[Conflict] play sound: HTTP 503" {
		t.Fatalf("unexpected message: %q", got)
	}

	te := FromTransport("get user", errors.New("dial tcp: refused"))
	if got := te.Error(); got != "[Transport] get user: dial tcp: refused" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	e := FromTransport("op", cause)
	if !errors.Is(e, cause) {
		t.Fatal("transport error should unwrap to its cause")
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	if !IsUnauthorized(FromStatus("op", 401, "")) {
		t.Error("401")
	}
	if !IsPrecondition(FromStatus("op", 400, "")) {
		t.Error("400")
	}
	if !IsConflict(FromStatus("op", 503, "")) {
		t.Error("503")
	}
	if IsConflict(FromStatus("op", 500, "")) {
		t.Error("500 is not a conflict")
	}
	if IsNotFound(nil) {
		t.Error("nil is nothing")
	}
}
