package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/soundbored/soundbored-go/internal/types"
)

// ListRecordings fetches all saved recordings visible to the caller.
func ListRecordings(ctx context.Context, hc *http.Client, baseURL string, attempts int) ([]types.Recording, error) {
	var recs []types.Recording
	if err := getJSON(ctx, hc, baseURL+"/api/recordings", "list recordings", attempts, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// RecordVoiceBuffer snapshots the guild's rolling voice buffer into a
// recording. Fails with NotFound when no voice data is buffered.
func RecordVoiceBuffer(ctx context.Context, hc *http.Client, baseURL, guildID string) error {
	u := fmt.Sprintf("%s/api/guilds/%s/record", baseURL, url.PathEscape(guildID))
	return postJSON(ctx, hc, u, "record voice buffer", nil, nil)
}

// MixRecording mixes the selected users and trim window of a recording
// into a downloadable file.
func MixRecording(ctx context.Context, hc *http.Client, baseURL, guildID string, timestamp int64, mix types.RecordingMix) (*types.MixingResult, error) {
	u := fmt.Sprintf("%s/api/guilds/%s/recordings/%d", baseURL, url.PathEscape(guildID), timestamp)
	var res types.MixingResult
	if err := postJSON(ctx, hc, u, "mix recording", mix, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteRecording removes the recording and all its audio segments.
func DeleteRecording(ctx context.Context, hc *http.Client, baseURL, guildID string, timestamp int64) error {
	u := fmt.Sprintf("%s/api/guilds/%s/recordings/%d", baseURL, url.PathEscape(guildID), timestamp)
	return del(ctx, hc, u, "delete recording")
}

// RecordingUserURL is the URL serving one user's audio segment of a
// recording.
func RecordingUserURL(baseURL, guildID string, timestamp int64, userID string) string {
	return fmt.Sprintf("%s/api/guilds/%s/recordings/%d/%s",
		baseURL, url.PathEscape(guildID), timestamp, url.PathEscape(userID))
}
