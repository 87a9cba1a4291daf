package state

import (
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/soundbored/soundbored-go/internal/types"
)

// SoundCatalog holds the session's full sound list and derives the
// currently visible subset from a fuzzy search text and a category
// selection. Non-empty search text takes precedence over categories.
type SoundCatalog struct {
	mu         sync.RWMutex
	sounds     []types.Sound
	filterText string
	categories map[string]struct{}
	subs       map[int]func([]types.Sound)
	nextID     int
}

// NewSoundCatalog returns an empty catalog.
func NewSoundCatalog() *SoundCatalog {
	return &SoundCatalog{
		categories: make(map[string]struct{}),
		subs:       make(map[int]func([]types.Sound)),
	}
}

// SetSounds replaces the full list. The list is copied and kept sorted by
// lowercased name.
func (c *SoundCatalog) SetSounds(sounds []types.Sound) {
	sorted := make([]types.Sound, len(sounds))
	copy(sorted, sounds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	c.mu.Lock()
	c.sounds = sorted
	c.mu.Unlock()
	c.notify()
}

// Sounds returns a copy of the full sorted list.
func (c *SoundCatalog) Sounds() []types.Sound {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Sound, len(c.sounds))
	copy(out, c.sounds)
	return out
}

// ByID finds a sound by its id.
func (c *SoundCatalog) ByID(id string) (types.Sound, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.sounds {
		if s.ID == id {
			return s, true
		}
	}
	return types.Sound{}, false
}

// SetFilterText updates the fuzzy search text.
func (c *SoundCatalog) SetFilterText(text string) {
	c.mu.Lock()
	c.filterText = text
	c.mu.Unlock()
	c.notify()
}

// SetCategories replaces the category selection used when no search text
// is active.
func (c *SoundCatalog) SetCategories(categories []string) {
	set := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		set[cat] = struct{}{}
	}
	c.mu.Lock()
	c.categories = set
	c.mu.Unlock()
	c.notify()
}

// Categories lists the distinct categories of the current sound list,
// sorted, with the empty category omitted.
func (c *SoundCatalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, s := range c.sounds {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; !ok {
			seen[s.Category] = struct{}{}
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}

/// Visible derives the renderable sound list: fuzzy search when filter text
// is set, otherwise the category selection, otherwise everything. The
// result is recomputed from current state on every call so it can never
// go stale.
func (c *SoundCatalog) Visible() []types.Sound {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filterText != "" {
		return c.search(c.filterText)
	}
	if len(c.categories) > 0 {
		var out []types.Sound
		for _, s := range c.sounds {
			if _, ok := c.categories[s.Category]; ok {
				out = append(out, s)
			}
		}
		return out
	}
	out := make([]types.Sound, len(c.sounds))
	copy(out, c.sounds)
	return out
}

// Subscribe registers fn to run with the visible list after every catalog
// mutation. The returned func cancels the subscription.
func (c *SoundCatalog) Subscribe(fn func([]types.Sound)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// catalogSource feeds name and category of each sound to the matcher.
type catalogSource []types.Sound

func (s catalogSource) String(i int) string {
	return strings.ToLower(s[i].Name + " " + s[i].Category)
}

func (s catalogSource) Len() int { return len(s) }

// search runs case-insensitive fuzzy matching over name and category,
// best matches first. Callers hold at least a read lock.
func (c *SoundCatalog) search(pattern string) []types.Sound {
	matches := fuzzy.FindFrom(strings.ToLower(pattern), catalogSource(c.sounds))
	out := make([]types.Sound, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.sounds[m.Index])
	}
	return out
}

func (c *SoundCatalog) notify() {
	c.mu.RLock()
	subs := make([]func([]types.Sound), 0, len(c.subs))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	c.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	v := c.Visible()
	for _, fn := range subs {
		fn(v)
	}
}
