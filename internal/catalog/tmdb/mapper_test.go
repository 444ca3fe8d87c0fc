package tmdb

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDeriveYear(t *testing.T) {
	cases := map[string]string{
		"1999-03-31": "1999",
		"":           "",
		"2024":       "2024",
		"-01-01":     "",
	}
	for in, want := range cases {
		if got := DeriveYear(in); got != want {
			t.Errorf("DeriveYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClampPages(t *testing.T) {
	t.Run("never exceeds the cap", func(t *testing.T) {
		for _, n := range []int{0, 1, 19, 20, 21, 45, 500, 1 << 20} {
			got := ClampPages(n)
			if got > MaxPages {
				t.Fatalf("ClampPages(%d) = %d exceeds %d", n, got, MaxPages)
			}
			if got < 1 {
				t.Fatalf("ClampPages(%d) = %d below 1", n, got)
			}
		}
	})

	t.Run("search pages from result count", func(t *testing.T) {
		cases := map[int]int{0: 1, 1: 1, 20: 1, 21: 2, 399: 20, 10000: 20}
		for in, want := range cases {
			if got := SearchPages(in); got != want {
				t.Errorf("SearchPages(%d) = %d, want %d", in, got, want)
			}
		}
	})
}

func TestMapMovie(t *testing.T) {
	t.Run("fills sentinels for missing fields", func(t *testing.T) {
		m := MapMovie(MovieDTO{ID: 7}, DefaultImageBaseURL)
		if m.Title != UntitledTitle {
			t.Errorf("title = %q", m.Title)
		}
		if m.Overview != MissingOverview {
			t.Errorf("overview = %q", m.Overview)
		}
		if m.Poster != nil || m.Backdrop != nil {
			t.Error("expected absent images to be nil")
		}
		if m.Year != "" || m.ReleaseDate != "" {
			t.Errorf("expected empty dates, got %q/%q", m.ReleaseDate, m.Year)
		}
		if m.GenreIDs == nil || len(m.GenreIDs) != 0 {
			t.Errorf("expected empty genre ids, got %v", m.GenreIDs)
		}
	})

	t.Run("empty image path is absent not empty", func(t *testing.T) {
		m := MapMovie(MovieDTO{ID: 1, PosterPath: strPtr("")}, DefaultImageBaseURL)
		if m.Poster != nil {
			t.Errorf("expected nil poster, got %q", *m.Poster)
		}
	})

	t.Run("builds image urls and rounds rating", func(t *testing.T) {
		avg := 8.4567
		votes := 1200
		m := MapMovie(MovieDTO{
			ID:           550,
			Title:        strPtr("Fight Club"),
			Overview:     strPtr("Soap."),
			PosterPath:   strPtr("/p.jpg"),
			BackdropPath: strPtr("/b.jpg"),
			VoteAverage:  &avg,
			VoteCount:    &votes,
			ReleaseDate:  strPtr("1999-10-15"),
			GenreIDs:     []int{18},
		}, DefaultImageBaseURL)

		if *m.Poster != "https://image.tmdb.org/t/p/w500/p.jpg" {
			t.Errorf("poster = %q", *m.Poster)
		}
		if *m.Backdrop != "https://image.tmdb.org/t/p/w1280/b.jpg" {
			t.Errorf("backdrop = %q", *m.Backdrop)
		}
		if m.Rating != 8.5 {
			t.Errorf("rating = %v", m.Rating)
		}
		if m.Year != "1999" || m.Votes != 1200 {
			t.Errorf("year/votes = %q/%d", m.Year, m.Votes)
		}
	})
}

func TestMapDetail(t *testing.T) {
	raw := `{
		"id": 603, "title": "The Matrix", "overview": "Neo.", "tagline": "",
		"poster_path": "/m.jpg", "backdrop_path": "/bg.jpg",
		"vote_average": 8.2, "vote_count": 25000, "runtime": 136,
		"release_date": "1999-03-31",
		"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
		"budget": 63000000, "revenue": 463517383,
		"videos": {"results": [
			{"key": "teaser", "site": "YouTube", "type": "Teaser"},
			{"key": "vimeo1", "site": "Vimeo", "type": "Trailer"},
			{"key": "abc123", "site": "YouTube", "type": "Trailer"},
			{"key": "later", "site": "YouTube", "type": "Trailer"}
		]},
		"credits": {"cast": [
			{"name": "A", "character": "a", "profile_path": "/a.jpg"},
			{"name": "B", "character": "b", "profile_path": null},
			{"name": "C", "character": "c"}, {"name": "D", "character": "d"},
			{"name": "E", "character": "e"}, {"name": "F", "character": "f"},
			{"name": "G", "character": "g"}, {"name": "H", "character": "h"},
			{"name": "I", "character": "i"}, {"name": "J", "character": "j"}
		]}
	}`
	var resp DetailResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	d := MapDetail(resp, DefaultImageBaseURL)

	if d.Tagline != nil {
		t.Errorf("empty tagline should be nil, got %q", *d.Tagline)
	}
	if d.Runtime == nil || *d.Runtime != 136 {
		t.Errorf("runtime = %v", d.Runtime)
	}
	if d.Trailer == nil || *d.Trailer != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("trailer = %v", d.Trailer)
	}
	if len(d.Cast) != MaxCast {
		t.Fatalf("cast len = %d, want %d", len(d.Cast), MaxCast)
	}
	if d.Cast[0].Name != "A" || d.Cast[7].Name != "H" {
		t.Errorf("cast order not preserved: %q..%q", d.Cast[0].Name, d.Cast[7].Name)
	}
	if d.Cast[0].Photo == nil || d.Cast[1].Photo != nil {
		t.Error("cast photo presence mismatch")
	}
	if *d.Backdrop != "https://image.tmdb.org/t/p/original/bg.jpg" {
		t.Errorf("detail backdrop = %q", *d.Backdrop)
	}
	if len(d.Genres) != 2 || d.Genres[1] != "Science Fiction" {
		t.Errorf("genres = %v", d.Genres)
	}
	if d.Year != "1999" {
		t.Errorf("year = %q", d.Year)
	}

	t.Run("no matching trailer", func(t *testing.T) {
		got := selectTrailer([]VideoDTO{{Key: "x", Site: "Vimeo", Type: "Trailer"}})
		if got != nil {
			t.Errorf("expected nil trailer, got %q", *got)
		}
	})

	t.Run("summary drops detail-only fields", func(t *testing.T) {
		s := d.Summary()
		if s.ID != 603 || s.Title != "The Matrix" || s.GenreIDs != nil {
			t.Errorf("unexpected summary %+v", s)
		}
	})
}
