package types

// ------------------------------
// Request payloads
// ------------------------------

// CreateSoundRequest creates a sound record before its audio is uploaded.
type CreateSoundRequest struct {
	GuildID  string `json:"guildId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UpdateSoundRequest replaces the mutable metadata of a sound.
type UpdateSoundRequest struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	VolumeAdjustment *float64 `json:"volumeAdjustment"`
}

// GuildSettingsPatch updates individual guild settings fields. Each save
// carries exactly the fields being changed.
type GuildSettingsPatch struct {
	UserRoleID       *string  `json:"userRoleId,omitempty"`
	ModeratorRoleID  *string  `json:"moderatorRoleId,omitempty"`
	TargetMeanVolume *float64 `json:"targetMeanVolume,omitempty"`
	TargetMaxVolume  *float64 `json:"targetMaxVolume,omitempty"`
}

// InfixUpdate is one entry of a full-list random-infix replace. The guild id
// is carried in the URL, not the body.
type InfixUpdate struct {
	Infix       string `json:"infix"`
	DisplayName string `json:"displayName"`
}

// RecordingMix selects a trim window and a set of users to mix into a
// downloadable file. This is client-only transient state until submitted.
type RecordingMix struct {
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	UserIDs []string `json:"userIds"`
}
