package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/soundbored/soundbored-go/internal/types"
)

// JoinChannel asks the bot to join the caller's current voice channel.
// Fails with a Precondition error when the caller is not in a channel
// visible to the bot.
func JoinChannel(ctx context.Context, hc *http.Client, baseURL, guildID string) error {
	u := fmt.Sprintf("%s/api/guilds/%s/join", baseURL, url.PathEscape(guildID))
	return postJSON(ctx, hc, u, "join channel", nil, nil)
}

// LeaveChannel disconnects the bot from its voice channel. Fails with a
// Conflict error when the bot is not connected.
func LeaveChannel(ctx context.Context, hc *http.Client, baseURL, guildID string) error {
	u := fmt.Sprintf("%s/api/guilds/%s/leave", baseURL, url.PathEscape(guildID))
	return postJSON(ctx, hc, u, "leave channel", nil, nil)
}

// GetGuildSettings loads the guild configuration, including the role map
// for picker rendering.
func GetGuildSettings(ctx context.Context, hc *http.Client, baseURL, guildID string, attempts int) (*types.GuildSettings, error) {
	u := fmt.Sprintf("%s/api/guilds/%s/settings", baseURL, url.PathEscape(guildID))
	var gs types.GuildSettings
	if err := getJSON(ctx, hc, u, "get guild settings", attempts, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// UpdateGuildSettings saves the fields present in patch. Each field save is
// its own call so per-field status can be tracked.
func UpdateGuildSettings(ctx context.Context, hc *http.Client, baseURL, guildID string, patch types.GuildSettingsPatch) error {
	u := fmt.Sprintf("%s/api/guilds/%s/settings", baseURL, url.PathEscape(guildID))
	return putJSON(ctx, hc, u, "update guild settings", patch)
}

// ListRandomInfixes fetches the random-play buttons of every guild the
// caller can see.
func ListRandomInfixes(ctx context.Context, hc *http.Client, baseURL string, attempts int) ([]types.RandomInfix, error) {
	var infixes []types.RandomInfix
	if err := getJSON(ctx, hc, baseURL+"/api/random-infixes", "list random infixes", attempts, &infixes); err != nil {
		return nil, err
	}
	return infixes, nil
}

// UpdateRandomInfixes replaces the guild's random-play button list
// wholesale.
func UpdateRandomInfixes(ctx context.Context, hc *http.Client, baseURL, guildID string, infixes []types.InfixUpdate) error {
	u := fmt.Sprintf("%s/api/guilds/%s/random-infixes", baseURL, url.PathEscape(guildID))
	if infixes == nil {
		infixes = []types.InfixUpdate{}
	}
	return putJSON(ctx, hc, u, "update random infixes", infixes)
}
