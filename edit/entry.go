// Package edit tracks working-copy edits against last-saved snapshots so
// users can accumulate changes locally, batch-save them, and be stopped
// from navigating away while anything is unsaved or in flight.
package edit

import (
	"context"
	"sync"

	"github.com/soundbored/soundbored-go/internal/types"
)

// SaveFunc commits one sound's working copy to the server.
type SaveFunc func(ctx context.Context, sound types.Sound) error

// SoundEntry pairs the last-saved snapshot of a sound with its current
// working copy. Dirtiness is always recomputed from the pair, never cached.
type SoundEntry struct {
	mu    sync.Mutex
	saved types.Sound
	work  types.Sound
	save  SaveFunc
}

// NewSoundEntry wraps sound for editing. save is invoked by Save with the
// working copy.
func NewSoundEntry(sound types.Sound, save SaveFunc) *SoundEntry {
	return &SoundEntry{saved: sound, work: sound, save: save}
}

// Sound returns the current working copy.
func (e *SoundEntry) Sound() types.Sound {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.work
}

// Saved returns the last-saved snapshot.
func (e *SoundEntry) Saved() types.Sound {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved
}

// SetName edits the working copy's name.
func (e *SoundEntry) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work.Name = name
}

// SetCategory edits the working copy's category.
func (e *SoundEntry) SetCategory(category string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work.Category = category
}

// SetVolumeAdjustment edits the working copy's volume adjustment; nil
// restores automatic normalization.
func (e *SoundEntry) SetVolumeAdjustment(v *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work.VolumeAdjustment = v
}

// HasChanges reports whether any editable field differs between the
// working copy and the snapshot.
func (e *SoundEntry) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved.Name != e.work.Name ||
		e.saved.Category != e.work.Category ||
		!volumeEqual(e.saved.VolumeAdjustment, e.work.VolumeAdjustment)
}

// Save commits the working copy. On success the snapshot advances to the
// committed value; on failure both copies stay untouched so the user can
// retry the exact same edit.
func (e *SoundEntry) Save(ctx context.Context) error {
	e.mu.Lock()
	sending := e.work
	e.mu.Unlock()

	if err := e.save(ctx, sending); err != nil {
		return err
	}

	e.mu.Lock()
	e.saved = sending
	e.mu.Unlock()
	return nil
}

// Discard reverts the working copy to the last-saved snapshot,
// unconditionally dropping uncommitted edits.
func (e *SoundEntry) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work = e.saved
}

// ReplaceFile records a freshly uploaded sound file on both copies; a file
// replacement is committed server-side already, so it never makes the
// entry dirty.
func (e *SoundEntry) ReplaceFile(file types.SoundFile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := file
	e.work.SoundFile = &f
	saved := file
	e.saved.SoundFile = &saved
}

func volumeEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
