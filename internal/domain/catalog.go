package domain

import "context"

// Catalog is the read-only remote movie catalog.
type Catalog interface {
	// Trending returns this week's trending movies. It is not paged.
	Trending(ctx context.Context) ([]Movie, error)

	// Popular returns one page of popular movies
	Popular(ctx context.Context, page int) (MovieList, error)

	// TopRated returns one page of the highest rated movies
	TopRated(ctx context.Context, page int) (MovieList, error)

	// Search returns one page of movies matching query
	Search(ctx context.Context, query string, page int) (SearchResult, error)

	// Detail returns the full record for a single movie
	Detail(ctx context.Context, id int) (MovieDetail, error)
}

// BlobStore is durable string-keyed blob storage.
type BlobStore interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
