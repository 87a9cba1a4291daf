package edit

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultSaveConcurrency bounds the fan-out of a batch save so a pile of
// dirty sounds does not turn into a pile of simultaneous requests.
const DefaultSaveConcurrency = 5

// SaveResult is the independent outcome of one entry's save within a
// batch.
type SaveResult struct {
	Entry *SoundEntry
	Err   error
}

// Tracker owns the editable entries of one view and counts in-flight
// mutations so the navigation guard can consult a single place.
type Tracker struct {
	mu      sync.Mutex
	entries []*SoundEntry

	saving     atomic.Int32
	uploading  atomic.Int32
	processing atomic.Int32
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// SetEntries replaces the tracked set, e.g. after a sound list load.
func (t *Tracker) SetEntries(entries []*SoundEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append([]*SoundEntry(nil), entries...)
}

// Entries returns the tracked entries.
func (t *Tracker) Entries() []*SoundEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*SoundEntry(nil), t.entries...)
}

// Add appends a freshly created entry (after an upload).
func (t *Tracker) Add(entry *SoundEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
}

// Remove drops an entry (after a delete).
func (t *Tracker) Remove(entry *SoundEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.entries {
		if e == entry {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Dirty returns the entries with unsaved changes.
func (t *Tracker) Dirty() []*SoundEntry {
	var out []*SoundEntry
	for _, e := range t.Entries() {
		if e.HasChanges() {
			out = append(out, e)
		}
	}
	return out
}

// SaveAll saves every dirty entry with at most concurrency saves in
// flight. One entry's failure neither blocks nor rolls back the others;
// each outcome is reported independently.
func (t *Tracker) SaveAll(ctx context.Context, concurrency int) []SaveResult {
	if concurrency <= 0 {
		concurrency = DefaultSaveConcurrency
	}

	dirty := t.Dirty()
	if len(dirty) == 0 {
		return nil
	}

	t.saving.Add(1)
	defer t.saving.Add(-1)
	batchSavesInFlight.Inc()
	defer batchSavesInFlight.Dec()

	results := make([]SaveResult, len(dirty))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, entry := range dirty {
		wg.Add(1)
		go func(i int, entry *SoundEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := entry.Save(ctx)
			if err != nil {
				saveFailuresTotal.Inc()
			}
			results[i] = SaveResult{Entry: entry, Err: err}
		}(i, entry)
	}
	wg.Wait()
	return results
}

// DiscardAll reverts every dirty entry.
func (t *Tracker) DiscardAll() {
	for _, e := range t.Dirty() {
		e.Discard()
	}
}

// HasUnsavedChanges reports whether any tracked entry is dirty.
func (t *Tracker) HasUnsavedChanges() bool {
	return len(t.Dirty()) > 0
}

// SaveInFlight reports whether a batch save, upload, or delete/replace is
// currently running.
func (t *Tracker) SaveInFlight() bool {
	return t.saving.Load() > 0 || t.uploading.Load() > 0 || t.processing.Load() > 0
}

// BeginUpload marks an upload as running; call the returned func when it
// finishes.
func (t *Tracker) BeginUpload() (done func()) {
	t.uploading.Add(1)
	return func() { t.uploading.Add(-1) }
}

// BeginProcessing marks a delete or file replacement as running; call the
// returned func when it finishes.
func (t *Tracker) BeginProcessing() (done func()) {
	t.processing.Add(1)
	return func() { t.processing.Add(-1) }
}
