// Package keybind manages user-defined key-to-action bindings: JSON
// import/export, rebinding against the current sound catalog, persistence,
// and generation of an automation script that drives the play/stop
// endpoints.
package keybind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/soundbored/soundbored-go/internal/types"
	"github.com/soundbored/soundbored-go/localstore"
)

// StorageKey is the store key holding the serialized keybind list.
const StorageKey = "keybinds"

// Builtin is a non-sound command a key can trigger.
type Builtin string

const (
	BuiltinStop   Builtin = "stop"
	BuiltinRecord Builtin = "record"
)

// KeyCombination is the pressed key plus its modifiers.
type KeyCombination struct {
	Key       string `json:"key"`
	IsControl bool   `json:"isControl"`
	IsAlt     bool   `json:"isAlt"`
}

// Command is what a keybind triggers: a sound, a builtin, or nothing.
// Exactly one of Sound and Builtin is set; both empty means unbound. The
// JSON form matches the historical storage format: a sound object, a bare
// string, or null.
type Command struct {
	Sound   *types.Sound
	Builtin Builtin
}

// IsZero reports whether the command is unbound.
func (c Command) IsZero() bool { return c.Sound == nil && c.Builtin == "" }

// MarshalJSON encodes the command as a sound object, a string, or null.
func (c Command) MarshalJSON() ([]byte, error) {
	switch {
	case c.Sound != nil:
		return json.Marshal(c.Sound)
	case c.Builtin != "":
		return json.Marshal(string(c.Builtin))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string builtin, a sound object, or null.
func (c *Command) UnmarshalJSON(data []byte) error {
	*c = Command{}
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch Builtin(s) {
		case BuiltinStop, BuiltinRecord:
			c.Builtin = Builtin(s)
			return nil
		default:
			return fmt.Errorf("keybind: unknown command %q", s)
		}
	}

	var sound types.Sound
	if err := json.Unmarshal(data, &sound); err != nil {
		return fmt.Errorf("keybind: bad command: %w", err)
	}
	c.Sound = &sound
	return nil
}

// Keybind maps one key combination to a command within a guild.
type Keybind struct {
	ID             string         `json:"id,omitempty"`
	KeyCombination KeyCombination `json:"keyCombination"`
	Command        Command        `json:"command"`
	GuildID        string         `json:"guildId"`
}

// New returns an empty keybind for guildID, ready for the user to fill in.
func New(guildID string) Keybind {
	return Keybind{ID: uuid.NewString(), GuildID: guildID}
}

// Rebind points every sound command at the catalog's current instance with
// the same id. Sound commands whose id is gone become unbound; builtin
// commands pass through unchanged.
func Rebind(binds []Keybind, sounds []types.Sound) {
	byID := make(map[string]types.Sound, len(sounds))
	for _, s := range sounds {
		byID[s.ID] = s
	}
	for i := range binds {
		if binds[i].Command.Sound == nil {
			continue
		}
		if current, ok := byID[binds[i].Command.Sound.ID]; ok {
			s := current
			binds[i].Command.Sound = &s
		} else {
			binds[i].Command = Command{}
		}
	}
}

// Import parses a keybind JSON export and rebinds it against sounds.
// Binds without an id get one assigned.
func Import(r io.Reader, sounds []types.Sound) ([]Keybind, error) {
	var binds []Keybind
	if err := json.NewDecoder(r).Decode(&binds); err != nil {
		return nil, fmt.Errorf("keybind: import: %w", err)
	}
	Rebind(binds, sounds)
	for i := range binds {
		if binds[i].ID == "" {
			binds[i].ID = uuid.NewString()
		}
	}
	return binds, nil
}

// Export writes the list as JSON, the same format Import accepts.
func Export(w io.Writer, binds []Keybind) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(binds)
}

// Load reads the persisted list from store. A missing key yields an empty
// list; no rebinding happens here since the catalog may not be loaded yet.
func Load(store localstore.Store) ([]Keybind, error) {
	raw, err := store.Get(StorageKey)
	if errors.Is(err, localstore.ErrNoValue) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var binds []Keybind
	if err := json.Unmarshal(raw, &binds); err != nil {
		return nil, fmt.Errorf("keybind: stored list: %w", err)
	}
	return binds, nil
}

// Save persists the list to store.
func Save(store localstore.Store, binds []Keybind) error {
	raw, err := json.Marshal(binds)
	if err != nil {
		return err
	}
	return store.Set(StorageKey, raw)
}
