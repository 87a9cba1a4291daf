package state

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/soundbored/soundbored-go/internal/types"
	"github.com/soundbored/soundbored-go/localstore"
)

// SettingsKey is the store key holding the serialized preferences.
const SettingsKey = "soundboard-settings"

type settingsData struct {
	GuildID         string   `json:"guildId"`
	LocalVolume     int      `json:"localVolume"`
	SoundCategories []string `json:"soundCategories"`
	Debug           bool     `json:"debug"`
	AutoJoin        bool     `json:"autoJoin"`
}

// AppSettings holds per-device user preferences. Every mutation is
// persisted best-effort: preferences are not safety-critical, so persist
// failures are swallowed.
type AppSettings struct {
	mu    sync.Mutex
	store localstore.Store
	data  settingsData
}

// NewAppSettings loads stored preferences from store, falling back to
// defaults when nothing was persisted or the payload is corrupt.
func NewAppSettings(store localstore.Store) *AppSettings {
	s := &AppSettings{
		store: store,
		data: settingsData{
			LocalVolume: 100,
			AutoJoin:    true,
		},
	}

	raw, err := store.Get(SettingsKey)
	switch {
	case err == nil:
		var stored settingsData
		if jsonErr := json.Unmarshal(raw, &stored); jsonErr == nil {
			s.data = stored
		} else {
			log.Debug().Err(jsonErr).Msg("discarding corrupt stored settings")
		}
	case errors.Is(err, localstore.ErrNoValue):
		// First run, keep defaults.
	default:
		log.Debug().Err(err).Msg("could not read stored settings")
	}
	return s
}

// ObserveUser applies the default guild selection: the user's first guild,
// exactly once, and only when no guild was ever selected. Later reloads
// never override an existing selection.
func (s *AppSettings) ObserveUser(user types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.GuildID == "" && len(user.Guilds) > 0 {
		s.data.GuildID = user.Guilds[0].ID
		s.persistLocked()
	}
}

// GuildID returns the selected guild, or "" when none was chosen yet.
func (s *AppSettings) GuildID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.GuildID
}

// SetGuildID selects a guild explicitly.
func (s *AppSettings) SetGuildID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.GuildID = id
	s.persistLocked()
}

// LocalVolume returns the local playback volume in percent.
func (s *AppSettings) LocalVolume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LocalVolume
}

// SetLocalVolume stores the local playback volume, clamped to 0–100.
func (s *AppSettings) SetLocalVolume(v int) {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LocalVolume = v
	s.persistLocked()
}

// SoundCategories returns the selected category filters.
func (s *AppSettings) SoundCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.data.SoundCategories))
	copy(out, s.data.SoundCategories)
	return out
}

// SetSoundCategories stores the selected category filters.
func (s *AppSettings) SetSoundCategories(categories []string) {
	cp := make([]string, len(categories))
	copy(cp, categories)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.SoundCategories = cp
	s.persistLocked()
}

// Debug returns the debug flag.
func (s *AppSettings) Debug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Debug
}

// SetDebug stores the debug flag.
func (s *AppSettings) SetDebug(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Debug = v
	s.persistLocked()
}

// AutoJoin returns whether play requests ask the bot to join first.
func (s *AppSettings) AutoJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AutoJoin
}

// SetAutoJoin stores the auto-join flag.
func (s *AppSettings) SetAutoJoin(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AutoJoin = v
	s.persistLocked()
}

func (s *AppSettings) persistLocked() {
	raw, err := json.Marshal(s.data)
	if err == nil {
		err = s.store.Set(SettingsKey, raw)
	}
	if err != nil {
		log.Debug().Err(err).Msg("could not persist settings")
	}
}
