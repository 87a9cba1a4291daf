package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/soundbored/soundbored-go/internal/types"
)

// ListSounds fetches every sound the caller can access, across guilds.
func ListSounds(ctx context.Context, hc *http.Client, baseURL string, attempts int) ([]types.Sound, error) {
	var sounds []types.Sound
	if err := getJSON(ctx, hc, baseURL+"/api/sounds", "list sounds", attempts, &sounds); err != nil {
		return nil, err
	}
	return sounds, nil
}

// CreateSound creates the metadata record for a new sound. The audio file
// is uploaded separately via UploadSoundFile.
func CreateSound(ctx context.Context, hc *http.Client, baseURL string, req types.CreateSoundRequest) (*types.Sound, error) {
	var sound types.Sound
	err := postJSON(ctx, hc, baseURL+"/api/sounds", "create sound", req, &sound)
	if err != nil {
		return nil, err
	}
	return &sound, nil
}

// UpdateSound replaces the mutable metadata of the sound with id soundID.
func UpdateSound(ctx context.Context, hc *http.Client, baseURL, soundID string, req types.UpdateSoundRequest) error {
	u := fmt.Sprintf("%s/api/sounds/%s", baseURL, EscapeSoundID(soundID))
	return putJSON(ctx, hc, u, "update sound", req)
}

// UploadSoundFile uploads or replaces the audio of an existing sound. The
// body is the raw file; mime goes out as the Content-Type header. Returns
// the decoded-audio metadata computed by the server.
func UploadSoundFile(ctx context.Context, hc *http.Client, baseURL, soundID, mime string, file io.Reader) (*types.SoundFile, error) {
	u := fmt.Sprintf("%s/api/sounds/%s", baseURL, EscapeSoundID(soundID))
	resp, err := doOnce(ctx, hc, http.MethodPost, u, "upload sound file", mime, file, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var sf types.SoundFile
	if err := decodeJSON(resp.Body, &sf); err != nil {
		return nil, fmt.Errorf("upload sound file: %w", err)
	}
	return &sf, nil
}

// DeleteSound removes the sound and its file.
func DeleteSound(ctx context.Context, hc *http.Client, baseURL, soundID string) error {
	u := fmt.Sprintf("%s/api/sounds/%s", baseURL, EscapeSoundID(soundID))
	return del(ctx, hc, u, "delete sound")
}

// PlaySound plays the sound into the guild's current voice channel. With
// autojoin the bot first joins the caller's channel. Never retried: a
// duplicate request plays the sound twice.
func PlaySound(ctx context.Context, hc *http.Client, baseURL, guildID, soundID string, autojoin bool) (*types.PlayResult, error) {
	u := fmt.Sprintf("%s/api/guilds/%s/play/%s?autojoin=%t",
		baseURL, url.PathEscape(guildID), EscapeSoundID(soundID), autojoin)
	var res types.PlayResult
	if err := postJSON(ctx, hc, u, "play sound", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// StopPlayback stops whatever is currently playing in the guild.
func StopPlayback(ctx context.Context, hc *http.Client, baseURL, guildID string) error {
	u := fmt.Sprintf("%s/api/guilds/%s/stop", baseURL, url.PathEscape(guildID))
	return postJSON(ctx, hc, u, "stop playback", nil, nil)
}

// SoundDownloadURL is the URL serving a sound's audio file, for local
// playback.
func SoundDownloadURL(baseURL, soundID string) string {
	return fmt.Sprintf("%s/api/sounds/%s", baseURL, EscapeSoundID(soundID))
}
