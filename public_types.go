package soundboard

import "github.com/soundbored/soundbored-go/internal/types"

// Public type aliases so SDK consumers can import only this package.
type (
	// Domain entities
	User          = types.User
	Guild         = types.Guild
	UserRole      = types.UserRole
	Sound         = types.Sound
	SoundFile     = types.SoundFile
	RandomInfix   = types.RandomInfix
	GuildSettings = types.GuildSettings
	Recording     = types.Recording
	RecordingUser = types.RecordingUser
	AppInfo       = types.AppInfo
	AuthToken     = types.AuthToken
	Timestamp     = types.Timestamp

	// Requests
	GuildSettingsPatch = types.GuildSettingsPatch
	InfixUpdate        = types.InfixUpdate
	RecordingMix       = types.RecordingMix

	// Responses
	PlayResult   = types.PlayResult
	SoundVolume  = types.SoundVolume
	MixingResult = types.MixingResult

	// Live events
	Event           = types.Event
	EventBase       = types.EventBase
	PlaybackStarted = types.PlaybackStarted
	PlaybackStopped = types.PlaybackStopped
	RecordingSaved  = types.RecordingSaved
	JoinedChannel   = types.JoinedChannel
	LeftChannel     = types.LeftChannel
)

// Role constants re-exported for switch statements on Guild.Role.
const (
	RoleAdmin     = types.RoleAdmin
	RoleModerator = types.RoleModerator
	RoleUser      = types.RoleUser
)

// DescribeEvent renders the event-log wording for an event.
func DescribeEvent(ev Event) string { return types.DescribeEvent(ev) }
