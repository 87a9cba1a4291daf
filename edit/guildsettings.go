package edit

import (
	"context"
	"sync"

	"github.com/soundbored/soundbored-go/internal/types"
)

// Field identifies one independently saved guild setting.
type Field string

const (
	FieldUserRole         Field = "userRole"
	FieldModeratorRole    Field = "moderatorRole"
	FieldTargetMeanVolume Field = "targetMeanVolume"
	FieldTargetMaxVolume  Field = "targetMaxVolume"
)

// FieldState is the save status of one guild settings field.
type FieldState int

const (
	FieldSaved FieldState = iota
	FieldSaving
	FieldError
)

// UpdateSettingsFunc sends a partial guild settings update.
type UpdateSettingsFunc func(ctx context.Context, guildID string, patch types.GuildSettingsPatch) error

// GuildSettingsEditor saves each guild setting field with its own PUT and
// tracks per-field status. There is no working copy here: a field edit is
// sent immediately, so the editor is only ever "dirty" in the sense of a
// save being in flight.
type GuildSettingsEditor struct {
	mu       sync.Mutex
	guildID  string
	settings types.GuildSettings
	fields   map[Field]FieldState
	update   UpdateSettingsFunc
}

// NewGuildSettingsEditor wraps the loaded settings of guildID.
func NewGuildSettingsEditor(guildID string, settings types.GuildSettings, update UpdateSettingsFunc) *GuildSettingsEditor {
	return &GuildSettingsEditor{
		guildID:  guildID,
		settings: settings,
		fields:   make(map[Field]FieldState),
		update:   update,
	}
}

// Settings returns the current known settings.
func (e *GuildSettingsEditor) Settings() types.GuildSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// FieldStatus returns the save state of one field.
func (e *GuildSettingsEditor) FieldStatus(f Field) FieldState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields[f]
}

// SaveUserRole assigns the role granted soundboard access.
func (e *GuildSettingsEditor) SaveUserRole(ctx context.Context, roleID string) error {
	return e.saveField(ctx, FieldUserRole,
		types.GuildSettingsPatch{UserRoleID: &roleID},
		func() { e.settings.UserRoleID = roleID })
}

// SaveModeratorRole assigns the role granted moderation rights.
func (e *GuildSettingsEditor) SaveModeratorRole(ctx context.Context, roleID string) error {
	return e.saveField(ctx, FieldModeratorRole,
		types.GuildSettingsPatch{ModeratorRoleID: &roleID},
		func() { e.settings.ModeratorRoleID = roleID })
}

// SaveTargetMeanVolume sets the normalization target mean volume in dB.
func (e *GuildSettingsEditor) SaveTargetMeanVolume(ctx context.Context, v float64) error {
	if err := types.ValidateTargetVolume(v); err != nil {
		e.setStatus(FieldTargetMeanVolume, FieldError)
		return err
	}
	return e.saveField(ctx, FieldTargetMeanVolume,
		types.GuildSettingsPatch{TargetMeanVolume: &v},
		func() { e.settings.TargetMeanVolume = v })
}

// SaveTargetMaxVolume sets the normalization target max volume in dB.
func (e *GuildSettingsEditor) SaveTargetMaxVolume(ctx context.Context, v float64) error {
	if err := types.ValidateTargetVolume(v); err != nil {
		e.setStatus(FieldTargetMaxVolume, FieldError)
		return err
	}
	return e.saveField(ctx, FieldTargetMaxVolume,
		types.GuildSettingsPatch{TargetMaxVolume: &v},
		func() { e.settings.TargetMaxVolume = v })
}

func (e *GuildSettingsEditor) saveField(ctx context.Context, f Field, patch types.GuildSettingsPatch, commit func()) error {
	e.mu.Lock()
	guildID := e.guildID
	e.fields[f] = FieldSaving
	e.mu.Unlock()

	err := e.update(ctx, guildID, patch)

	e.mu.Lock()
	if err != nil {
		e.fields[f] = FieldError
	} else {
		commit()
		e.fields[f] = FieldSaved
	}
	e.mu.Unlock()
	return err
}

func (e *GuildSettingsEditor) setStatus(f Field, s FieldState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fields[f] = s
}

// HasUnsavedChanges always reports false: field edits are sent on change,
// never held locally.
func (e *GuildSettingsEditor) HasUnsavedChanges() bool { return false }

// SaveInFlight reports whether any field save is running.
func (e *GuildSettingsEditor) SaveInFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.fields {
		if s == FieldSaving {
			return true
		}
	}
	return false
}
