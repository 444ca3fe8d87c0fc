package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/mmcdole/cinewave/internal/config"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/favorites"
	"github.com/mmcdole/cinewave/internal/httpcache"
	"github.com/mmcdole/cinewave/internal/store"
)

type stubCatalog struct {
	details map[int]domain.MovieDetail
}

func (s *stubCatalog) Trending(context.Context) ([]domain.Movie, error) { return nil, nil }
func (s *stubCatalog) Popular(context.Context, int) (domain.MovieList, error) {
	return domain.MovieList{}, nil
}
func (s *stubCatalog) TopRated(context.Context, int) (domain.MovieList, error) {
	return domain.MovieList{}, nil
}
func (s *stubCatalog) Search(context.Context, string, int) (domain.SearchResult, error) {
	return domain.SearchResult{}, nil
}
func (s *stubCatalog) Detail(_ context.Context, id int) (domain.MovieDetail, error) {
	d, ok := s.details[id]
	if !ok {
		return domain.MovieDetail{}, domain.ErrMovieNotFound
	}
	return d, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = t.TempDir()
	cfg.Catalog.Language = "en-US"
	return cfg
}

func newTestRunner(t *testing.T, cfg *config.Config, opts RunnerOpts) (*Runner, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	opts.Config = cfg
	opts.Output = out
	if opts.Fs == nil {
		opts.Fs = afero.NewMemMapFs()
	}
	return NewRunner(opts), out
}

func run(r *Runner, args ...string) error {
	return r.app().Run(context.Background(), append([]string{"cinewave"}, args...))
}

func seedFavorites(t *testing.T, dir string, movies ...domain.Movie) {
	t.Helper()
	blobs, err := store.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer blobs.Close()

	favs := favorites.New(blobs, nil)
	for _, m := range movies {
		if _, err := favs.Toggle(m); err != nil {
			t.Fatalf("Toggle(%d) error = %v", m.ID, err)
		}
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil options uses defaults", func(t *testing.T) {
			r := NewRunner(RunnerOpts{})

			if r.config == nil {
				t.Error("expected default config to be set")
			}
			if r.logger == nil {
				t.Error("expected default logger to be set")
			}
			if r.output == nil || r.input == nil || r.fs == nil {
				t.Error("expected default streams and filesystem to be set")
			}
			if r.formatter == nil {
				t.Error("expected formatter to be set")
			}
		})

		t.Run("injected catalog is used as is", func(t *testing.T) {
			cat := &stubCatalog{}
			r := NewRunner(RunnerOpts{Catalog: cat})

			got, err := r.newCatalog()
			if err != nil {
				t.Fatalf("newCatalog() error = %v", err)
			}
			if got != cat {
				t.Error("expected injected catalog")
			}
		})

		t.Run("missing API key fails to build a client", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Config: config.DefaultConfig()})

			if _, err := r.newCatalog(); !errors.Is(err, domain.ErrNotConfigured) {
				t.Errorf("newCatalog() error = %v, want ErrNotConfigured", err)
			}
		})
	})

	t.Run("cacheRules", func(t *testing.T) {
		rules := cacheRules(config.DefaultConfig())
		if len(rules) != 2 {
			t.Fatalf("got %d rules, want 2", len(rules))
		}

		api, img := rules[0], rules[1]
		if api.Host != "api.themoviedb.org" || api.Strategy != httpcache.NetworkFirst {
			t.Errorf("api rule = %+v", api)
		}
		if api.Entries != 100 || api.TTL != 6*time.Hour || api.NetworkTimeout != 8*time.Second {
			t.Errorf("api rule sizing = %+v", api)
		}
		if img.Host != "image.tmdb.org" || img.Strategy != httpcache.CacheFirst {
			t.Errorf("image rule = %+v", img)
		}
		if img.Entries != 200 || img.TTL != 7*24*time.Hour {
			t.Errorf("image rule sizing = %+v", img)
		}
	})

	t.Run("newLimiter", func(t *testing.T) {
		if newLimiter(0, time.Second) != nil {
			t.Error("expected nil limiter for zero requests")
		}
		l := newLimiter(40, 10*time.Second)
		if l == nil {
			t.Fatal("expected limiter")
		}
		if l.Burst() != 40 {
			t.Errorf("Burst() = %d, want 40", l.Burst())
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	fight := domain.Movie{ID: 550, Title: "Fight Club", Year: "1999", Rating: 8.4}
	matrix := domain.Movie{ID: 603, Title: "The Matrix", Year: "1999", Rating: 8.2}
	gump := domain.Movie{ID: 13, Title: "Forrest Gump", Year: "1994", Rating: 8.5}

	t.Run("list prints favorites in id order", func(t *testing.T) {
		cfg := testConfig(t)
		seedFavorites(t, cfg.Storage.DataDir, fight, gump)
		r, out := newTestRunner(t, cfg, RunnerOpts{})

		if err := run(r, "favorites", "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}

		text := out.String()
		first, second := strings.Index(text, "Forrest Gump"), strings.Index(text, "Fight Club")
		if first < 0 || second < 0 || first > second {
			t.Errorf("unexpected order in output:\n%s", text)
		}
		if !strings.Contains(text, "2 favorites") {
			t.Errorf("missing count in output:\n%s", text)
		}
	})

	t.Run("list with no favorites", func(t *testing.T) {
		r, out := newTestRunner(t, testConfig(t), RunnerOpts{})

		if err := run(r, "favorites", "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(out.String(), "No favorites yet.") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("list json with match", func(t *testing.T) {
		cfg := testConfig(t)
		seedFavorites(t, cfg.Storage.DataDir, fight, matrix, gump)
		r, out := newTestRunner(t, cfg, RunnerOpts{})

		if err := run(r, "favorites", "list", "--json", "--match", "matrix"); err != nil {
			t.Fatalf("list error = %v", err)
		}

		var got []domain.Movie
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
		}
		if len(got) == 0 || got[0].ID != 603 {
			t.Errorf("got %+v, want The Matrix first", got)
		}
	})

	t.Run("empty json list is an array", func(t *testing.T) {
		r, out := newTestRunner(t, testConfig(t), RunnerOpts{})

		if err := run(r, "favorites", "list", "--json"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if strings.TrimSpace(out.String()) != "[]" {
			t.Errorf("output = %q, want []", out.String())
		}
	})

	t.Run("export clear import round trip", func(t *testing.T) {
		cfg := testConfig(t)
		seedFavorites(t, cfg.Storage.DataDir, fight, matrix)
		fs := afero.NewMemMapFs()
		r, out := newTestRunner(t, cfg, RunnerOpts{Fs: fs})

		if err := run(r, "favorites", "export", "/backup/favorites.json"); err != nil {
			t.Fatalf("export error = %v", err)
		}
		if ok, _ := afero.Exists(fs, "/backup/favorites.json"); !ok {
			t.Fatal("expected export file to exist")
		}
		if err := run(r, "favorites", "clear"); err != nil {
			t.Fatalf("clear error = %v", err)
		}
		if !strings.Contains(out.String(), "Removed 2 favorites") {
			t.Errorf("output = %q", out.String())
		}

		if err := run(r, "favorites", "import", "/backup/favorites.json"); err != nil {
			t.Fatalf("import error = %v", err)
		}
		out.Reset()
		if err := run(r, "favorites", "list", "--json"); err != nil {
			t.Fatalf("list error = %v", err)
		}

		var got []domain.Movie
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(got) != 2 || got[0].ID != 550 || got[1].ID != 603 {
			t.Errorf("got %+v, want 550 and 603", got)
		}
	})

	t.Run("export without a path", func(t *testing.T) {
		r, _ := newTestRunner(t, testConfig(t), RunnerOpts{})

		if err := run(r, "favorites", "export"); !errors.Is(err, errMissingArgument) {
			t.Errorf("error = %v, want errMissingArgument", err)
		}
	})

	t.Run("import of a malformed file keeps favorites", func(t *testing.T) {
		cfg := testConfig(t)
		seedFavorites(t, cfg.Storage.DataDir, fight)
		fs := afero.NewMemMapFs()
		afero.WriteFile(fs, "/bad.json", []byte("not json"), 0644)
		r, out := newTestRunner(t, cfg, RunnerOpts{Fs: fs})

		if err := run(r, "favorites", "import", "/bad.json"); err == nil {
			t.Fatal("expected an error")
		}
		if err := run(r, "favorites", "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(out.String(), "Fight Club") {
			t.Errorf("favorites lost after failed import:\n%s", out.String())
		}
	})
}

func TestDetailCommand(t *testing.T) {
	runtime := 139
	tagline := "Mischief. Mayhem. Soap."
	trailer := "https://www.youtube.com/watch?v=SUXWAEX2jlg"
	cat := &stubCatalog{details: map[int]domain.MovieDetail{
		550: {
			Movie:   domain.Movie{ID: 550, Title: "Fight Club", Year: "1999", Rating: 8.4, Votes: 26280, Overview: "An insomniac office worker..."},
			Tagline: &tagline,
			Runtime: &runtime,
			Genres:  []string{"Drama", "Thriller"},
			Budget:  63000000,
			Trailer: &trailer,
			Cast:    []domain.CastMember{{Name: "Brad Pitt", Character: "Tyler Durden"}},
		},
	}}

	t.Run("plain output", func(t *testing.T) {
		r, out := newTestRunner(t, testConfig(t), RunnerOpts{Catalog: cat})

		if err := run(r, "detail", "550"); err != nil {
			t.Fatalf("detail error = %v", err)
		}

		text := out.String()
		for _, want := range []string{
			"Fight Club (1999)",
			tagline,
			"★ 8.4 (26,280 votes)",
			"2h 19m",
			"Drama, Thriller",
			"Budget: $63,000,000   Revenue: -",
			"Trailer: " + trailer,
			"Brad Pitt as Tyler Durden",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("output missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		r, out := newTestRunner(t, testConfig(t), RunnerOpts{Catalog: cat})

		if err := run(r, "detail", "--json", "550"); err != nil {
			t.Fatalf("detail error = %v", err)
		}

		var got domain.MovieDetail
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if got.ID != 550 || got.Runtime == nil || *got.Runtime != 139 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("bad arguments", func(t *testing.T) {
		r, _ := newTestRunner(t, testConfig(t), RunnerOpts{Catalog: cat})

		if err := run(r, "detail"); !errors.Is(err, errMissingArgument) {
			t.Errorf("no id: error = %v", err)
		}
		if err := run(r, "detail", "abc"); !errors.Is(err, errInvalidArgument) {
			t.Errorf("abc: error = %v", err)
		}
		if err := run(r, "detail", "-1"); err == nil {
			t.Error("-1: expected an error")
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		r, _ := newTestRunner(t, testConfig(t), RunnerOpts{Catalog: cat})

		err := run(r, "detail", "404")
		if !errors.Is(err, domain.ErrMovieNotFound) {
			t.Fatalf("error = %v, want ErrMovieNotFound", err)
		}
		if !strings.Contains(err.Error(), "no movie with id 404") {
			t.Errorf("error = %q", err.Error())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("saves the first non-blank key", func(t *testing.T) {
		t.Setenv("CINEWAVE_CATALOG_API_KEY", "")
		dir := t.TempDir()
		cfg := testConfig(t)
		r, out := newTestRunner(t, cfg, RunnerOpts{Input: strings.NewReader("\n  abc123 \n")})

		if err := run(r, "setup", "--dir", dir); err != nil {
			t.Fatalf("setup error = %v", err)
		}
		if cfg.Catalog.APIKey != "abc123" {
			t.Errorf("runner config key = %q", cfg.Catalog.APIKey)
		}
		if !strings.Contains(out.String(), "cannot be empty") {
			t.Errorf("expected a retry prompt:\n%s", out.String())
		}

		loaded, err := config.LoadFrom(dir)
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if loaded.Catalog.APIKey != "abc123" {
			t.Errorf("saved key = %q", loaded.Catalog.APIKey)
		}
		if loaded.Catalog.Language != "en-US" {
			t.Errorf("saved language = %q, want the runner's settings kept", loaded.Catalog.Language)
		}
	})

	t.Run("no input", func(t *testing.T) {
		r, _ := newTestRunner(t, testConfig(t), RunnerOpts{Input: strings.NewReader("")})

		if err := run(r, "setup", "--dir", t.TempDir()); !errors.Is(err, errNoAPIKey) {
			t.Errorf("error = %v, want errNoAPIKey", err)
		}
	})
}
