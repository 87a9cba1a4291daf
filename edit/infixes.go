package edit

import (
	"context"
	"sync"

	"github.com/soundbored/soundbored-go/internal/types"
)

// SaveInfixesFunc replaces a guild's full random-infix list on the server.
type SaveInfixesFunc func(ctx context.Context, guildID string, infixes []types.InfixUpdate) error

// InfixEditor edits one guild's random-play buttons as a batch list with
// add/remove, persisted via full-list replace.
type InfixEditor struct {
	mu      sync.Mutex
	guildID string
	saved   []types.RandomInfix
	work    []types.RandomInfix
	saving  bool
	save    SaveInfixesFunc
}

// NewInfixEditor starts editing the given guild's infixes. initial is the
// loaded list; entries belonging to other guilds are ignored.
func NewInfixEditor(guildID string, initial []types.RandomInfix, save SaveInfixesFunc) *InfixEditor {
	var mine []types.RandomInfix
	for _, infix := range initial {
		if infix.GuildID == guildID {
			mine = append(mine, infix)
		}
	}
	return &InfixEditor{
		guildID: guildID,
		saved:   mine,
		work:    append([]types.RandomInfix(nil), mine...),
		save:    save,
	}
}

// Infixes returns the working list.
func (e *InfixEditor) Infixes() []types.RandomInfix {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.RandomInfix(nil), e.work...)
}

// Add appends an empty row for the user to fill in.
func (e *InfixEditor) Add() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work = append(e.work, types.RandomInfix{GuildID: e.guildID})
}

// Remove drops the row at index i.
func (e *InfixEditor) Remove(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.work) {
		return
	}
	e.work = append(e.work[:i], e.work[i+1:]...)
}

// Update edits the row at index i.
func (e *InfixEditor) Update(i int, infix, displayName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.work) {
		return
	}
	e.work[i].Infix = infix
	e.work[i].DisplayName = displayName
}

// HasUnsavedChanges reports whether the working list differs from the
// last-saved one.
func (e *InfixEditor) HasUnsavedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.work) != len(e.saved) {
		return true
	}
	for i := range e.work {
		if e.work[i] != e.saved[i] {
			return true
		}
	}
	return false
}

// SaveInFlight reports whether a save is currently running.
func (e *InfixEditor) SaveInFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Save replaces the guild's list with the complete rows of the working
// list (rows missing an infix or display name are not sent). Incomplete
// rows stay in the working list: the user may still be typing them. On
// success the snapshot advances to the list as sent; on failure nothing
// changes.
func (e *InfixEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	sent := append([]types.RandomInfix(nil), e.work...)
	updates := make([]types.InfixUpdate, 0, len(sent))
	for _, infix := range sent {
		if infix.Infix == "" || infix.DisplayName == "" {
			continue
		}
		updates = append(updates, types.InfixUpdate{Infix: infix.Infix, DisplayName: infix.DisplayName})
	}
	guildID := e.guildID
	e.saving = true
	e.mu.Unlock()

	err := e.save(ctx, guildID, updates)

	e.mu.Lock()
	e.saving = false
	if err == nil {
		e.saved = sent
	}
	e.mu.Unlock()
	return err
}

// Discard reverts the working list to the last-saved snapshot.
func (e *InfixEditor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.work = append([]types.RandomInfix(nil), e.saved...)
}
