// Package sse reads a guild's live event stream. The stream is a one-way
// push channel and never reconnects on its own: a transport error is
// terminal and re-subscribing is the caller's decision.
package sse

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/soundbored/soundbored-go/internal/apierr"
	"github.com/soundbored/soundbored-go/internal/types"
)

// Stream is an open event subscription. Events arrive on Events() in
// arrival order until the stream ends; afterwards Err reports why.
type Stream struct {
	events chan types.Event
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// Open subscribes to rawURL. The returned stream stays open until the
// context is cancelled, Close is called, or the transport fails.
func Open(ctx context.Context, hc *http.Client, rawURL string) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := hc.Do(req)
	if err != nil {
		cancel()
		return nil, apierr.FromTransport("subscribe events", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		return nil, apierr.FromStatus("subscribe events", resp.StatusCode, "")
	}

	s := &Stream{
		events: make(chan types.Event),
		cancel: cancel,
	}
	go s.readLoop(ctx, resp.Body)
	return s, nil
}

// Events delivers parsed events. The channel closes when the stream ends;
// check Err afterwards to distinguish Close from a transport failure.
func (s *Stream) Events() <-chan types.Event { return s.events }

// Err returns the terminal error, or nil after a clean Close. Valid once
// Events is closed.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears the subscription down. Safe to call multiple times.
func (s *Stream) Close() {
	s.cancel()
}

func (s *Stream) readLoop(ctx context.Context, body io.ReadCloser) {
	defer close(s.events)
	defer func() { _ = body.Close() }()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Blank line terminates one message.
			if data.Len() > 0 {
				s.dispatch(ctx, data.String())
				data.Reset()
			}
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// Comments and other SSE fields (id, event, retry) are ignored.
		}
	}

	// A stream that ends while the subscription is still wanted is a
	// failure, whether the read errored or the server just hung up. Only a
	// caller-side cancellation (Close or ctx) counts as clean.
	if ctx.Err() == nil {
		err := scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		s.mu.Lock()
		s.err = apierr.FromTransport("event stream", err)
		s.mu.Unlock()
	}
}

func (s *Stream) dispatch(ctx context.Context, payload string) {
	ev, err := types.ParseEvent([]byte(payload))
	if err != nil {
		// A malformed message is dropped rather than killing the stream.
		log.Debug().Err(err).Str("payload", payload).Msg("skipping unparsable event")
		return
	}
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
