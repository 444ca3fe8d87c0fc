package tmdb

// Pointer fields distinguish an absent upstream value from a zero one.

// MovieDTO is a movie entry as it appears in list endpoints
type MovieDTO struct {
	ID           int      `json:"id"`
	Title        *string  `json:"title"`
	Overview     *string  `json:"overview"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    *int     `json:"vote_count"`
	ReleaseDate  *string  `json:"release_date"`
	GenreIDs     []int    `json:"genre_ids"`
}

// ListResponse is the envelope shared by trending, popular, top rated and search
type ListResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// GenreDTO is a resolved genre on a detail response
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VideoDTO is one entry of the appended videos sub-resource
type VideoDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// CastDTO is one entry of the appended credits sub-resource
type CastDTO struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// DetailResponse is /movie/{id} with credits and videos appended
type DetailResponse struct {
	MovieDTO
	Tagline *string    `json:"tagline"`
	Runtime *int       `json:"runtime"`
	Genres  []GenreDTO `json:"genres"`
	Budget  int64      `json:"budget"`
	Revenue int64      `json:"revenue"`
	Videos  *struct {
		Results []VideoDTO `json:"results"`
	} `json:"videos"`
	Credits *struct {
		Cast []CastDTO `json:"cast"`
	} `json:"credits"`
}

// ErrorResponse is the body TMDB returns alongside non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
