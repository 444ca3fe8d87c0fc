package domain

// Section identifies one of the primary browsing modes.
type Section string

const (
	SectionTrending  Section = "trending"
	SectionPopular   Section = "popular"
	SectionTopRated  Section = "toprated"
	SectionFavorites Section = "favorites"

	// SectionSearch is never stored as the active section. It is the displayed
	// section while a search is active.
	SectionSearch Section = "search"
)

// Sections lists the browsable sections in navigation order.
var Sections = []Section{SectionTrending, SectionPopular, SectionTopRated, SectionFavorites}

// ParseSection converts a user supplied name to a Section.
func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionTrending, SectionPopular, SectionTopRated, SectionFavorites:
		return Section(s), true
	case "top_rated", "top-rated":
		return SectionTopRated, true
	}
	return "", false
}

// Label returns the short tab label for the section.
func (s Section) Label() string {
	switch s {
	case SectionTrending:
		return "Trending"
	case SectionPopular:
		return "Popular"
	case SectionTopRated:
		return "Top Rated"
	case SectionFavorites:
		return "Favorites"
	case SectionSearch:
		return "Search"
	}
	return string(s)
}

// Movie is the normalized summary record shared by listings and favorites.
// The JSON layout is the persisted favorites format.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Poster      *string `json:"poster"`
	Backdrop    *string `json:"backdrop"`
	Rating      float64 `json:"rating"`
	Votes       int     `json:"votes"`
	ReleaseDate string  `json:"releaseDate"`
	Year        string  `json:"year"`
	GenreIDs    []int   `json:"genreIds,omitempty"`
}

// CastMember is one billed cast entry on a detail page.
type CastMember struct {
	Name      string  `json:"name"`
	Character string  `json:"character"`
	Photo     *string `json:"photo"`
}

// MovieDetail is the full record shown in the detail overlay.
type MovieDetail struct {
	Movie
	Tagline *string      `json:"tagline"`
	Runtime *int         `json:"runtime"`
	Genres  []string     `json:"genres"`
	Budget  int64        `json:"budget"`
	Revenue int64        `json:"revenue"`
	Trailer *string      `json:"trailer"`
	Cast    []CastMember `json:"cast"`
}

// Summary projects the detail back onto a summary snapshot suitable for
// storing as a favorite. Genre ids are not part of a detail response.
func (d MovieDetail) Summary() Movie {
	m := d.Movie
	m.GenreIDs = nil
	return m
}

// MovieList is a paged listing.
type MovieList struct {
	Results    []Movie
	TotalPages int
}

// SearchResult is a paged search listing. Upstream reports a result count
// rather than a page count for searches.
type SearchResult struct {
	Results      []Movie
	TotalResults int
}

// FavoritesMap maps a movie id to the snapshot taken when it was favorited.
type FavoritesMap map[int]Movie
