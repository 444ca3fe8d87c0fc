package tmdb

import (
	"math"
	"strings"

	"github.com/mmcdole/cinewave/internal/domain"
)

// Image sizes used for the different artwork slots
const (
	sizePoster       = "w500"
	sizeBackdrop     = "w1280"
	sizeBackdropFull = "original"
	sizeProfile      = "w500"
)

// Normalization sentinels
const (
	UntitledTitle   = "Untitled"
	MissingOverview = "No description available."
)

// MaxCast is the number of billed cast entries kept on a detail record
const MaxCast = 8

// MaxPages caps every page count reported to callers
const MaxPages = 20

// ResultsPerPage is the fixed upstream page size, used to derive search pages
const ResultsPerPage = 20

const (
	trailerType = "Trailer"
	trailerSite = "YouTube"
	youtubeURL  = "https://www.youtube.com/watch?v="
)

// ClampPages bounds an upstream page count to [1, MaxPages]
func ClampPages(pages int) int {
	if pages < 1 {
		return 1
	}
	if pages > MaxPages {
		return MaxPages
	}
	return pages
}

// SearchPages converts a search result count into a clamped page count
func SearchPages(totalResults int) int {
	if totalResults <= 0 {
		return 1
	}
	return ClampPages((totalResults + ResultsPerPage - 1) / ResultsPerPage)
}

// DeriveYear returns the part of a release date before the first hyphen
func DeriveYear(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	return year
}

// RoundRating rounds a vote average to one decimal place
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// imageURL joins an image path onto the CDN base, or returns nil when the
// path is absent
func imageURL(imageBase, size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := strings.TrimRight(imageBase, "/") + "/" + size + *path
	return &u
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// MapMovie normalizes a list entry into a domain.Movie
func MapMovie(dto MovieDTO, imageBase string) domain.Movie {
	return mapMovie(dto, imageBase, sizeBackdrop)
}

func mapMovie(dto MovieDTO, imageBase, backdropSize string) domain.Movie {
	releaseDate := stringOr(dto.ReleaseDate, "")

	var rating float64
	if dto.VoteAverage != nil {
		rating = RoundRating(*dto.VoteAverage)
	}
	votes := 0
	if dto.VoteCount != nil {
		votes = *dto.VoteCount
	}
	genreIDs := dto.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return domain.Movie{
		ID:          dto.ID,
		Title:       stringOr(dto.Title, UntitledTitle),
		Overview:    stringOr(dto.Overview, MissingOverview),
		Poster:      imageURL(imageBase, sizePoster, dto.PosterPath),
		Backdrop:    imageURL(imageBase, backdropSize, dto.BackdropPath),
		Rating:      rating,
		Votes:       votes,
		ReleaseDate: releaseDate,
		Year:        DeriveYear(releaseDate),
		GenreIDs:    genreIDs,
	}
}

// MapMovies normalizes a slice of list entries
func MapMovies(dtos []MovieDTO, imageBase string) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, dto := range dtos {
		movies = append(movies, MapMovie(dto, imageBase))
	}
	return movies
}

// MapDetail normalizes a detail response. The backdrop uses the full size
// image since the overlay is the only place it is shown large.
func MapDetail(resp DetailResponse, imageBase string) domain.MovieDetail {
	movie := mapMovie(resp.MovieDTO, imageBase, sizeBackdropFull)
	movie.GenreIDs = nil

	detail := domain.MovieDetail{
		Movie:   movie,
		Genres:  make([]string, 0, len(resp.Genres)),
		Budget:  resp.Budget,
		Revenue: resp.Revenue,
		Cast:    []domain.CastMember{},
	}

	if resp.Tagline != nil && *resp.Tagline != "" {
		tagline := *resp.Tagline
		detail.Tagline = &tagline
	}
	if resp.Runtime != nil && *resp.Runtime > 0 {
		runtime := *resp.Runtime
		detail.Runtime = &runtime
	}
	for _, g := range resp.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}

	if resp.Videos != nil {
		detail.Trailer = selectTrailer(resp.Videos.Results)
	}
	if resp.Credits != nil {
		detail.Cast = mapCast(resp.Credits.Cast, imageBase)
	}

	return detail
}

// selectTrailer picks the first YouTube-hosted trailer in upstream order
func selectTrailer(videos []VideoDTO) *string {
	for _, v := range videos {
		if v.Type == trailerType && v.Site == trailerSite && v.Key != "" {
			u := youtubeURL + v.Key
			return &u
		}
	}
	return nil
}

// mapCast keeps the first MaxCast entries in upstream order
func mapCast(cast []CastDTO, imageBase string) []domain.CastMember {
	if len(cast) > MaxCast {
		cast = cast[:MaxCast]
	}
	members := make([]domain.CastMember, 0, len(cast))
	for _, c := range cast {
		members = append(members, domain.CastMember{
			Name:      c.Name,
			Character: c.Character,
			Photo:     imageURL(imageBase, sizeProfile, c.ProfilePath),
		})
	}
	return members
}
