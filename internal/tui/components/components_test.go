package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
)

func movies(titles ...string) []domain.Movie {
	out := make([]domain.Movie, len(titles))
	for i, t := range titles {
		out[i] = domain.Movie{ID: i + 1, Title: t, Year: "2001", Rating: 7.1}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToaster(t *testing.T) {
	t.Run("nil toaster panics", func(t *testing.T) {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, domain.ErrNilNotifier) {
				t.Errorf("recover() = %v", r)
			}
		}()
		var toaster *Toaster
		toaster.Add("hello", ToastInfo)
	})

	t.Run("add and expire", func(t *testing.T) {
		toaster := NewToaster(time.Millisecond)
		cmd := toaster.Add("Added to favorites", ToastInfo)
		toaster.Add("You're offline", ToastWarning)

		if len(toaster.Active()) != 2 {
			t.Fatalf("active = %d", len(toaster.Active()))
		}
		if !strings.Contains(toaster.View(80), "You're offline") {
			t.Error("view missing toast")
		}

		msg, ok := cmd().(ToastExpiredMsg)
		if !ok {
			t.Fatalf("expire command returned %T", msg)
		}
		toaster.Expire(msg.ID)
		toaster.Expire("unknown")

		active := toaster.Active()
		if len(active) != 1 || active[0].Message != "You're offline" {
			t.Errorf("active = %+v", active)
		}
		if active[0].ID == msg.ID || active[0].ID == "" {
			t.Error("toast ids must be unique")
		}
	})
}

func TestBanner(t *testing.T) {
	b := NewBanner(time.Millisecond)
	if cmd := b.SetMovies(nil); cmd != nil {
		t.Error("empty featured list must not tick")
	}

	cmd := b.SetMovies(movies("A", "B", "C"))
	if cmd == nil {
		t.Fatal("expected a tick")
	}
	tick := cmd().(BannerTickMsg)

	b, next := b.Update(tick)
	if b.Index() != 1 || next == nil {
		t.Errorf("index = %d", b.Index())
	}

	// A new list makes older ticks stale
	b.SetMovies(movies("D", "E"))
	b, next = b.Update(tick)
	if b.Index() != 0 || next != nil {
		t.Error("stale tick advanced the banner")
	}

	b.Prev()
	if m, _ := b.Current(); m.Title != "E" {
		t.Errorf("Prev wrapped to %q", m.Title)
	}
	b.Next()
	if m, _ := b.Current(); m.Title != "D" {
		t.Errorf("Next wrapped to %q", m.Title)
	}

	gen := b.Generation()
	b.Stop()
	if _, ok := b.Current(); ok {
		t.Error("stopped banner has no current movie")
	}
	if _, cmd := b.Update(BannerTickMsg{Generation: gen}); cmd != nil {
		t.Error("stopped banner must not re-arm")
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid()
	g.SetSize(CardWidth*2+10, 40)
	g.SetMovies(movies("Amélie", "The Matrix", "Matrix Reloaded", "Up"))

	if g.Columns() != 2 {
		t.Fatalf("Columns = %d", g.Columns())
	}

	g, _ = g.Update(runes("j"))
	if g.Cursor() != 2 {
		t.Errorf("down moved to %d", g.Cursor())
	}
	g, _ = g.Update(runes("l"))
	if sel, _ := g.Selected(); sel.Title != "Up" {
		t.Errorf("selected %q", sel.Title)
	}
	g, _ = g.Update(runes("l"))
	if g.Cursor() != 3 {
		t.Error("cursor moved past the end")
	}

	t.Run("filter folds accents", func(t *testing.T) {
		g := g
		g.ToggleFilter()
		for _, r := range "amel" {
			g, _ = g.Update(runes(string(r)))
		}
		if g.Len() != 1 {
			t.Fatalf("Len = %d", g.Len())
		}
		if sel, _ := g.Selected(); sel.Title != "Amélie" {
			t.Errorf("selected %q", sel.Title)
		}

		g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if g.IsFiltering() || g.Len() != 4 {
			t.Error("esc should clear the filter")
		}
	})

	t.Run("empty message", func(t *testing.T) {
		g := NewGrid()
		g.SetEmptyMessage("No favorites yet. Add some!")
		if !strings.Contains(g.View(), "No favorites yet. Add some!") {
			t.Error("empty message missing")
		}
	})

	t.Run("hearts follow favorites", func(t *testing.T) {
		g := NewGrid()
		g.SetSize(200, 40)
		g.SetMovies(movies("Up"))
		g.SetFavoriteFunc(func(id int) bool { return id == 1 })
		if !strings.Contains(g.View(), "♥") {
			t.Error("favorite heart missing")
		}
	})
}

func TestHeader(t *testing.T) {
	h := NewHeader()
	h.SetWidth(120)

	if _, cmd := h.Update(runes("x")); cmd != nil {
		t.Error("unfocused header should ignore keys")
	}

	h.FocusSearch()
	h, _ = h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.IsTyping() {
		t.Error("blank submit should keep focus")
	}

	for _, r := range "  dune " {
		h, _ = h.Update(runes(string(r)))
	}
	h, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}
	if msg := cmd().(SearchSubmittedMsg); msg.Query != "dune" {
		t.Errorf("query = %q", msg.Query)
	}
	if h.IsTyping() {
		t.Error("submit should blur")
	}

	h.SetActive(domain.SectionPopular)
	if !strings.Contains(h.View(), "2 Popular") {
		t.Error("tabs missing")
	}
}

func TestDetail(t *testing.T) {
	d := NewDetail(format.New("en-US"))
	d.SetSize(100, 40)
	d.Open(550)

	if d.SetError(13) {
		t.Error("error for another movie applied")
	}

	runtime := 139
	tagline := "Mischief. Mayhem. Soap."
	trailer := "https://www.youtube.com/watch?v=abc"
	detail := domain.MovieDetail{
		Movie:   domain.Movie{ID: 550, Title: "Fight Club", Rating: 8.4, Votes: 26280},
		Tagline: &tagline,
		Runtime: &runtime,
		Genres:  []string{"Drama"},
		Budget:  63000000,
		Trailer: &trailer,
		Cast:    []domain.CastMember{{Name: "Edward Norton", Character: "Narrator"}},
	}
	if !d.SetDetail(550, detail) {
		t.Fatal("detail rejected")
	}

	view := d.View(true)
	for _, want := range []string{"Fight Club", "2h 19m", "26,280", "$63,000,000", "Edward Norton", "watch?v=abc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got, ok := d.Loaded(); !ok || got.ID != 550 {
		t.Errorf("Loaded = %+v, %v", got, ok)
	}

	d.Close()
	if d.Visible() || d.View(false) != "" {
		t.Error("closed overlay should render nothing")
	}
}
