package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// UserRole is the role a user holds within a guild.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleUser      UserRole = "user"
)

// Guild is a Discord server the current user belongs to. Immutable after
// fetch; the role is assigned by the server.
type Guild struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	IconURL string   `json:"iconUrl,omitempty"`
	Role    UserRole `json:"role"`
}

// User is the authenticated caller together with its guild memberships.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatarUrl"`
	Guilds    []Guild `json:"guilds"`
}

// Sound is a playable clip. The ID is a guild-scoped path ("guildId/name"
// style); each path segment must be escaped individually when it appears in
// a URL.
type Sound struct {
	ID        string    `json:"id"`
	GuildID   string    `json:"guildId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"createdAt"`

	// VolumeAdjustment in dB. nil means the server applies automatic
	// loudness normalization.
	VolumeAdjustment *float64 `json:"volumeAdjustment"`

	// SoundFile is present only after at least one successful upload.
	SoundFile *SoundFile `json:"soundFile,omitempty"`
}

// SoundFile carries decoded-audio metadata for a sound. Loudness figures are
// in dB. Replaced wholesale on re-upload.
type SoundFile struct {
	MaxVolume  float64   `json:"maxVolume"`
	MeanVolume float64   `json:"meanVolume"`
	Length     float64   `json:"length"`
	UploadedAt Timestamp `json:"uploadedAt"`
}

// RandomInfix is a quick-play button that picks a random sound whose name
// contains the infix. Uniqueness is not enforced client-side.
type RandomInfix struct {
	GuildID     string `json:"guildId"`
	Infix       string `json:"infix"`
	DisplayName string `json:"displayName"`
}

// GuildSettings is the per-guild configuration. Target volumes are in dB and
// must stay inside (-30, 30).
type GuildSettings struct {
	UserRoleID       string  `json:"userRoleId"`
	ModeratorRoleID  string  `json:"moderatorRoleId"`
	TargetMeanVolume float64 `json:"targetMeanVolume"`
	TargetMaxVolume  float64 `json:"targetMaxVolume"`

	// Roles maps role id to role name; sent by the server so clients can
	// render a picker. Read-only.
	Roles map[string]string `json:"roles,omitempty"`
}

// RecordingUser is one participant of a recording.
type RecordingUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Recording is a saved voice-channel capture. The timestamp acts as its id
// within a guild.
type Recording struct {
	GuildID   string          `json:"guildId"`
	Timestamp int64           `json:"timestamp"`
	Length    float64         `json:"length"`
	Users     []RecordingUser `json:"users"`
}

// AppInfo is build metadata reported by the server.
type AppInfo struct {
	Version         string `json:"version"`
	BuildID         string `json:"buildId,omitempty"`
	BuildTimestamp  int64  `json:"buildTimestamp,omitempty"`
	DiscordClientID string `json:"discordClientId"`
}

// AuthToken is a long-lived automation token for script use.
type AuthToken struct {
	Token     string    `json:"token"`
	CreatedAt Timestamp `json:"createdAt"`
}
