// Package browse holds the navigation state of the movie browser: which
// section is shown, the active search, the page and the loaded movies.
//
// State is a value. Every transition returns the next State plus, when the
// displayed listing has to be refetched, the Request describing that fetch.
package browse

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinewave/internal/domain"
)

// FeaturedCount is the number of movies shown in the banner
const FeaturedCount = 6

// Mode is the catalog operation a Request runs
type Mode int

const (
	ModeTrending Mode = iota
	ModePopular
	ModeTopRated
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeTrending:
		return "trending"
	case ModePopular:
		return "popular"
	case ModeTopRated:
		return "toprated"
	case ModeSearch:
		return "search"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Request is one fetch cycle. Generation ties its result back to the state
// that issued it.
type Request struct {
	Mode       Mode
	Page       int
	Query      string
	Generation uint64
}

// Result is the outcome of a successful Request
type Result struct {
	Generation uint64
	Movies     []domain.Movie
	TotalPages int
}

// State is the canonical navigation tuple plus the loaded listing
type State struct {
	Section    domain.Section
	Searching  bool
	Query      string
	Page       int
	TotalPages int
	Movies     []domain.Movie
	Loading    bool
	SelectedID *int

	// Generation increments with every fetch cycle and on entering
	// favorites, so results from superseded cycles are dropped.
	Generation uint64
}

// New returns the state for section before its first fetch
func New(section domain.Section) State {
	if section == domain.SectionSearch || section == "" {
		section = domain.SectionTrending
	}
	return State{Section: section, Page: 1, TotalPages: 1}
}

// Effective is the section being displayed: search overrides the active one
func (s State) Effective() domain.Section {
	if s.Searching {
		return domain.SectionSearch
	}
	return s.Section
}

// HasPagination reports whether page controls apply
func (s State) HasPagination() bool {
	paged := s.Searching || s.Section == domain.SectionPopular || s.Section == domain.SectionTopRated
	return paged && s.TotalPages > 1
}

func (s State) CanPrev() bool { return s.Page > 1 }

func (s State) CanNext() bool { return s.Page < s.TotalPages }

// ShowBanner reports whether the featured banner is visible
func (s State) ShowBanner() bool {
	return !s.Searching && s.Section != domain.SectionFavorites && !s.Loading && len(s.Movies) > 0
}

// Featured returns the first FeaturedCount loaded movies
func (s State) Featured() []domain.Movie {
	if len(s.Movies) <= FeaturedCount {
		return s.Movies
	}
	return s.Movies[:FeaturedCount]
}

// Displayed returns the list the grid shows; favorites come from the store
func (s State) Displayed(favorites []domain.Movie) []domain.Movie {
	if !s.Searching && s.Section == domain.SectionFavorites {
		return favorites
	}
	return s.Movies
}

// EmptyMessage is shown when Displayed is empty
func (s State) EmptyMessage() string {
	if s.Effective() == domain.SectionFavorites {
		return "No favorites yet. Add some!"
	}
	return "No movies to show"
}

// Title is the heading above the grid
func (s State) Title(favCount int) string {
	switch s.Effective() {
	case domain.SectionTrending:
		return "Trending This Week"
	case domain.SectionPopular:
		return "Popular Movies"
	case domain.SectionTopRated:
		return "Top Rated"
	case domain.SectionFavorites:
		return fmt.Sprintf("My Favorites (%d)", favCount)
	case domain.SectionSearch:
		return fmt.Sprintf("%q", s.Query)
	default:
		return ""
	}
}

// ChangeSection switches to section, leaving any search and going back to
// page 1. Favorites never fetch.
func (s State) ChangeSection(section domain.Section) (State, *Request) {
	s.Section = section
	s.Searching = false
	s.Query = ""
	s.Page = 1
	s.TotalPages = 1
	return s.Begin()
}

// Search starts a search for q. A blank query changes nothing.
func (s State) Search(q string) (State, *Request) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s, nil
	}
	s.Searching = true
	s.Query = q
	s.Page = 1
	s.TotalPages = 1
	return s.Begin()
}

// ChangePage moves delta pages within [1, TotalPages]. It is a no-op while
// a listing is loading, when pagination does not apply, or when the page
// would not change.
func (s State) ChangePage(delta int) (State, *Request) {
	if s.Loading || !s.HasPagination() {
		return s, nil
	}
	target := min(max(s.Page+delta, 1), s.TotalPages)
	if target == s.Page {
		return s, nil
	}
	s.Page = target
	return s.Begin()
}

func (s State) OpenDetail(id int) State {
	s.SelectedID = &id
	return s
}

func (s State) CloseDetail() State {
	s.SelectedID = nil
	return s
}

// Begin starts a fetch cycle for the current tuple. Any cycle still in
// flight is superseded.
func (s State) Begin() (State, *Request) {
	if !s.Searching && s.Section == domain.SectionFavorites {
		s.Generation++
		s.Loading = false
		return s, nil
	}

	s.Generation++
	s.Loading = true
	return s, &Request{
		Mode:       s.mode(),
		Page:       s.Page,
		Query:      s.Query,
		Generation: s.Generation,
	}
}

// Apply completes the current cycle with res. Results from an older cycle
// are ignored and ok is false.
func (s State) Apply(res Result) (next State, ok bool) {
	if res.Generation != s.Generation {
		return s, false
	}
	s.Movies = res.Movies
	s.TotalPages = max(res.TotalPages, 1)
	s.Page = min(max(s.Page, 1), s.TotalPages)
	s.Loading = false
	return s, true
}

// Fail completes the current cycle with an error: the list is cleared.
// Failures from an older cycle are ignored and ok is false.
func (s State) Fail(generation uint64) (next State, ok bool) {
	if generation != s.Generation {
		return s, false
	}
	s.Movies = nil
	s.Loading = false
	return s, true
}

// mode picks the catalog operation: an active search wins over the section
func (s State) mode() Mode {
	if s.Searching && s.Query != "" {
		return ModeSearch
	}
	switch s.Section {
	case domain.SectionPopular:
		return ModePopular
	case domain.SectionTopRated:
		return ModeTopRated
	default:
		return ModeTrending
	}
}
