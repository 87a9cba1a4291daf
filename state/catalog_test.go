package state

import (
	"testing"

	"github.com/soundbored/soundbored-go/internal/types"
)

func testSounds() []types.Sound {
	return []types.Sound{
		{ID: "g1/zelda", Name: "Zelda Secret", Category: "games"},
		{ID: "g1/airhorn", Name: "airhorn", Category: "memes"},
		{ID: "g1/bruh", Name: "Bruh", Category: "memes"},
		{ID: "g1/quack", Name: "quack", Category: ""},
	}
}

func TestCatalog_SortsByLowercasedName(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())

	got := c.Sounds()
	want := []string{"airhorn", "Bruh", "quack", "Zelda Secret"}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCatalog_ByID(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())

	if s, ok := c.ByID("g1/bruh"); !ok || s.Name != "Bruh" {
		t.Fatalf("ByID=%+v,%v", s, ok)
	}
	if _, ok := c.ByID("g1/nope"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestCatalog_Categories(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())

	got := c.Categories()
	if len(got) != 2 || got[0] != "games" || got[1] != "memes" {
		t.Fatalf("Categories=%v", got)
	}
}

func TestCatalog_VisibleDefaultsToAll(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	if got := c.Visible(); len(got) != 4 {
		t.Fatalf("Visible=%d sounds", len(got))
	}
}

func TestCatalog_CategoryFilter(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	c.SetCategories([]string{"memes"})

	got := c.Visible()
	if len(got) != 2 {
		t.Fatalf("Visible=%d, want 2", len(got))
	}
	for _, s := range got {
		if s.Category != "memes" {
			t.Fatalf("leaked %+v", s)
		}
	}
}

func TestCatalog_SearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	c.SetFilterText("BRUH")

	got := c.Visible()
	if len(got) != 1 || got[0].Name != "Bruh" {
		t.Fatalf("Visible=%+v", got)
	}
}

func TestCatalog_SearchMatchesCategory(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	c.SetFilterText("games")

	got := c.Visible()
	if len(got) != 1 || got[0].Name != "Zelda Secret" {
		t.Fatalf("Visible=%+v", got)
	}
}

func TestCatalog_SearchOverridesCategorySelection(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	c.SetCategories([]string{"games"})
	c.SetFilterText("airhorn")

	got := c.Visible()
	if len(got) != 1 || got[0].Name != "airhorn" {
		t.Fatalf("search text must take precedence over categories: %+v", got)
	}
}

func TestCatalog_VisibleIsIdempotent(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())
	c.SetFilterText("a")

	first := c.Visible()
	second := c.Visible()
	if len(first) != len(second) {
		t.Fatalf("len %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("position %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCatalog_SubscribeSeesMutations(t *testing.T) {
	t.Parallel()
	c := NewSoundCatalog()
	c.SetSounds(testSounds())

	var last []types.Sound
	calls := 0
	cancel := c.Subscribe(func(v []types.Sound) {
		last = v
		calls++
	})
	defer cancel()

	c.SetFilterText("bruh")
	if calls != 1 || len(last) != 1 || last[0].Name != "Bruh" {
		t.Fatalf("calls=%d last=%+v", calls, last)
	}

	c.SetFilterText("")
	if calls != 2 || len(last) != 4 {
		t.Fatalf("calls=%d last=%d sounds", calls, len(last))
	}

	cancel()
	c.SetCategories([]string{"memes"})
	if calls != 2 {
		t.Fatal("cancelled subscriber still notified")
	}
}
