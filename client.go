// Package soundboard is a client SDK for the soundbored server: typed
// wrappers over its HTTP API, a live event subscription, reactive state
// containers and edit tracking for building front-ends on top.
package soundboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/soundbored/soundbored-go/internal/api"
	"github.com/soundbored/soundbored-go/internal/apierr"
	"github.com/soundbored/soundbored-go/internal/sse"
	"github.com/soundbored/soundbored-go/internal/types"
	"github.com/soundbored/soundbored-go/state"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to one soundbored server. Reads retry transparently on
// transient failures; mutations never do.
type Client struct {
	baseURL      string
	http         *http.Client
	token        string
	readAttempts int

	// user, when registered, is cleared on logout and whenever a read
	// reports an expired session.
	user *state.Container[types.User]
}

// New constructs a Client for the server at baseURL. Additional options
// can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:      baseURL,
		http:         &http.Client{Timeout: 30 * time.Second},
		readAttempts: api.DefaultReadAttempts,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	if c.token != "" {
		c.wrapTransportWithToken()
	}
	return c
}

// wrapTransportWithToken wraps the HTTP client's transport to add the
// Authorization header to every request.
func (c *Client) wrapTransportWithToken() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &tokenTransport{base: base, token: c.token}
}

// tokenTransport wraps an http.RoundTripper to add a bearer token.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// readErr invalidates the registered session container when a read
// reports an expired session; the UI reacts by routing to login.
func (c *Client) readErr(err error) error {
	if err != nil && apierr.IsUnauthorized(err) && c.user != nil {
		c.user.Clear()
	}
	return err
}

// --------------------------------------------------------------------
// Session operations - delegated to internal/api
// --------------------------------------------------------------------

// GetUser fetches the authenticated user with its guild memberships.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	u, err := api.GetUser(ctx, c.http, c.baseURL, c.readAttempts)
	return u, c.readErr(err)
}

// GetAppInfo fetches server build metadata.
func (c *Client) GetAppInfo(ctx context.Context) (*AppInfo, error) {
	info, err := api.GetAppInfo(ctx, c.http, c.baseURL, c.readAttempts)
	return info, c.readErr(err)
}

// Logout invalidates the session. The registered user container is
// cleared only after the server acknowledges.
func (c *Client) Logout(ctx context.Context) error {
	if err := api.Logout(ctx, c.http, c.baseURL); err != nil {
		return err
	}
	if c.user != nil {
		c.user.Clear()
	}
	return nil
}

// GetAuthToken returns the existing automation token; IsNotFound on the
// error means none was generated yet.
func (c *Client) GetAuthToken(ctx context.Context) (*AuthToken, error) {
	return api.GetAuthToken(ctx, c.http, c.baseURL)
}

// GenerateAuthToken issues a fresh automation token.
func (c *Client) GenerateAuthToken(ctx context.Context) (*AuthToken, error) {
	return api.GenerateAuthToken(ctx, c.http, c.baseURL)
}

// --------------------------------------------------------------------
// Sound operations
// --------------------------------------------------------------------

// ListSounds fetches every accessible sound.
func (c *Client) ListSounds(ctx context.Context) ([]Sound, error) {
	sounds, err := api.ListSounds(ctx, c.http, c.baseURL, c.readAttempts)
	return sounds, c.readErr(err)
}

// CreateSound creates a sound record; upload the audio afterwards with
// UploadSoundFile.
func (c *Client) CreateSound(ctx context.Context, guildID, name, category string) (*Sound, error) {
	return api.CreateSound(ctx, c.http, c.baseURL, types.CreateSoundRequest{
		GuildID:  guildID,
		Name:     name,
		Category: category,
	})
}

// UpdateSound saves the sound's metadata (name, category, volume
// adjustment).
func (c *Client) UpdateSound(ctx context.Context, sound Sound) error {
	return api.UpdateSound(ctx, c.http, c.baseURL, sound.ID, types.UpdateSoundRequest{
		Name:             sound.Name,
		Category:         sound.Category,
		VolumeAdjustment: sound.VolumeAdjustment,
	})
}

// UploadSoundFile uploads or replaces the sound's audio. mime is sent as
// the Content-Type of the raw body.
func (c *Client) UploadSoundFile(ctx context.Context, soundID, mime string, file io.Reader) (*SoundFile, error) {
	return api.UploadSoundFile(ctx, c.http, c.baseURL, soundID, mime, file)
}

// DeleteSound removes a sound.
func (c *Client) DeleteSound(ctx context.Context, soundID string) error {
	return api.DeleteSound(ctx, c.http, c.baseURL, soundID)
}

// PlaySound plays a sound into the guild's voice channel.
func (c *Client) PlaySound(ctx context.Context, guildID, soundID string, autojoin bool) (*PlayResult, error) {
	return api.PlaySound(ctx, c.http, c.baseURL, guildID, soundID, autojoin)
}

// StopPlayback stops the guild's current playback.
func (c *Client) StopPlayback(ctx context.Context, guildID string) error {
	return api.StopPlayback(ctx, c.http, c.baseURL, guildID)
}

// SoundDownloadURL returns the URL serving the sound's audio for local
// playback.
func (c *Client) SoundDownloadURL(soundID string) string {
	return api.SoundDownloadURL(c.baseURL, soundID)
}

// --------------------------------------------------------------------
// Guild operations
// --------------------------------------------------------------------

// JoinChannel connects the bot to the caller's current voice channel.
func (c *Client) JoinChannel(ctx context.Context, guildID string) error {
	return api.JoinChannel(ctx, c.http, c.baseURL, guildID)
}

// LeaveChannel disconnects the bot.
func (c *Client) LeaveChannel(ctx context.Context, guildID string) error {
	return api.LeaveChannel(ctx, c.http, c.baseURL, guildID)
}

// GetGuildSettings loads the guild configuration.
func (c *Client) GetGuildSettings(ctx context.Context, guildID string) (*GuildSettings, error) {
	gs, err := api.GetGuildSettings(ctx, c.http, c.baseURL, guildID, c.readAttempts)
	return gs, c.readErr(err)
}

// UpdateGuildSettings saves the fields set in patch.
func (c *Client) UpdateGuildSettings(ctx context.Context, guildID string, patch GuildSettingsPatch) error {
	return api.UpdateGuildSettings(ctx, c.http, c.baseURL, guildID, patch)
}

// ListRandomInfixes fetches the random-play buttons of all guilds.
func (c *Client) ListRandomInfixes(ctx context.Context) ([]RandomInfix, error) {
	infixes, err := api.ListRandomInfixes(ctx, c.http, c.baseURL, c.readAttempts)
	return infixes, c.readErr(err)
}

// UpdateRandomInfixes replaces the guild's random-play button list.
func (c *Client) UpdateRandomInfixes(ctx context.Context, guildID string, infixes []InfixUpdate) error {
	return api.UpdateRandomInfixes(ctx, c.http, c.baseURL, guildID, infixes)
}

// --------------------------------------------------------------------
// Recording operations
// --------------------------------------------------------------------

// ListRecordings fetches all saved recordings.
func (c *Client) ListRecordings(ctx context.Context) ([]Recording, error) {
	recs, err := api.ListRecordings(ctx, c.http, c.baseURL, c.readAttempts)
	return recs, c.readErr(err)
}

// RecordVoiceBuffer snapshots the guild's rolling voice buffer into a
// recording.
func (c *Client) RecordVoiceBuffer(ctx context.Context, guildID string) error {
	return api.RecordVoiceBuffer(ctx, c.http, c.baseURL, guildID)
}

// MixRecording mixes a trim window and user selection into a downloadable
// file.
func (c *Client) MixRecording(ctx context.Context, guildID string, timestamp int64, mix RecordingMix) (*MixingResult, error) {
	return api.MixRecording(ctx, c.http, c.baseURL, guildID, timestamp, mix)
}

// DeleteRecording removes a recording.
func (c *Client) DeleteRecording(ctx context.Context, guildID string, timestamp int64) error {
	return api.DeleteRecording(ctx, c.http, c.baseURL, guildID, timestamp)
}

// RecordingUserURL returns the URL serving one user's audio segment.
func (c *Client) RecordingUserURL(guildID string, timestamp int64, userID string) string {
	return api.RecordingUserURL(c.baseURL, guildID, timestamp, userID)
}

// --------------------------------------------------------------------
// Event stream
// --------------------------------------------------------------------

// EventStream is an open live subscription to one guild's events.
type EventStream = sse.Stream

// SubscribeEvents opens the guild's live event stream. The stream stays
// open until ctx is cancelled, Close is called, or the transport fails.
// It never reconnects by itself; re-subscribing is the caller's call.
func (c *Client) SubscribeEvents(ctx context.Context, guildID string) (*EventStream, error) {
	u := fmt.Sprintf("%s/api/%s/events", c.baseURL, url.PathEscape(guildID))
	return sse.Open(ctx, c.http, u)
}
