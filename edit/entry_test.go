package edit

import (
	"context"
	"errors"
	"testing"

	"github.com/soundbored/soundbored-go/internal/types"
)

func float(v float64) *float64 { return &v }

func testSound() types.Sound {
	return types.Sound{ID: "g1/horn", GuildID: "g1", Name: "horn", Category: "memes"}
}

func TestEntry_CleanAfterConstruction(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), nil)
	if e.HasChanges() {
		t.Fatal("a fresh entry must be clean")
	}
}

func TestEntry_EditMakesDirtyRevertMakesClean(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), nil)

	e.SetName("foghorn")
	if !e.HasChanges() {
		t.Fatal("rename should dirty the entry")
	}

	// Typing the original name back restores cleanliness; dirtiness is a
	// value comparison, not an edit counter.
	e.SetName("horn")
	if e.HasChanges() {
		t.Fatal("restoring the original value should clean the entry")
	}
}

func TestEntry_VolumeAdjustmentDirtiness(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), nil)

	e.SetVolumeAdjustment(float(3))
	if !e.HasChanges() {
		t.Fatal("setting a manual adjustment should dirty the entry")
	}

	e.SetVolumeAdjustment(nil)
	if e.HasChanges() {
		t.Fatal("back to automatic should clean the entry")
	}

	// Same numeric value behind different pointers is not a change.
	s := testSound()
	s.VolumeAdjustment = float(2)
	e2 := NewSoundEntry(s, nil)
	e2.SetVolumeAdjustment(float(2))
	if e2.HasChanges() {
		t.Fatal("equal adjustment values should compare clean")
	}
}

func TestEntry_SaveAdvancesSnapshot(t *testing.T) {
	t.Parallel()
	var sent types.Sound
	e := NewSoundEntry(testSound(), func(ctx context.Context, s types.Sound) error {
		sent = s
		return nil
	})

	e.SetName("foghorn")
	e.SetCategory("ships")
	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sent.Name != "foghorn" || sent.Category != "ships" {
		t.Fatalf("sent=%+v", sent)
	}
	if e.HasChanges() {
		t.Fatal("entry must be clean after a successful save")
	}
	if e.Saved().Name != "foghorn" {
		t.Fatalf("snapshot did not advance: %+v", e.Saved())
	}
}

func TestEntry_FailedSaveKeepsEdits(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), func(ctx context.Context, s types.Sound) error {
		return errors.New("boom")
	})

	e.SetName("foghorn")
	if err := e.Save(context.Background()); err == nil {
		t.Fatal("expected save failure")
	}
	if !e.HasChanges() {
		t.Fatal("failed save must keep the entry dirty for retry")
	}
	if e.Sound().Name != "foghorn" {
		t.Fatal("working copy lost on failed save")
	}
	if e.Saved().Name != "horn" {
		t.Fatal("snapshot advanced despite failure")
	}
}

func TestEntry_Discard(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), nil)
	e.SetName("foghorn")
	e.SetCategory("ships")
	e.SetVolumeAdjustment(float(-4))

	e.Discard()
	if e.HasChanges() {
		t.Fatal("discard must clean the entry")
	}
	if got := e.Sound(); got.Name != "horn" || got.Category != "memes" || got.VolumeAdjustment != nil {
		t.Fatalf("working copy after discard: %+v", got)
	}
}

func TestEntry_ReplaceFileStaysClean(t *testing.T) {
	t.Parallel()
	e := NewSoundEntry(testSound(), nil)
	e.ReplaceFile(types.SoundFile{Length: 3.2, MeanVolume: -18})

	if e.HasChanges() {
		t.Fatal("a committed file replacement must not dirty the entry")
	}
	if e.Sound().SoundFile == nil || e.Sound().SoundFile.Length != 3.2 {
		t.Fatalf("file not recorded: %+v", e.Sound().SoundFile)
	}
	if e.Saved().SoundFile == nil {
		t.Fatal("snapshot missing the new file")
	}
}
