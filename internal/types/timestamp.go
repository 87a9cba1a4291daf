package types

import (
	"fmt"
	"strconv"
	"time"
)

// Timestamp is a point in time that the server serializes as unix seconds
// wrapped in a JSON string. Numeric seconds are accepted too since older
// server builds emitted them unquoted.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// MarshalJSON encodes the timestamp as a string of unix seconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(t.Unix(), 10))), nil
}

// UnmarshalJSON accepts unix seconds either quoted or as a bare number.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("timestamp: cannot parse %q: %w", s, err)
	}
	t.Time = time.Unix(int64(secs), 0).UTC()
	return nil
}
