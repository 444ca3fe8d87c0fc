package browse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinewave/internal/catalog/tmdb"
	"github.com/mmcdole/cinewave/internal/domain"
)

// Loader runs fetch cycles against a catalog
type Loader struct {
	catalog domain.Catalog
	logger  *slog.Logger
}

func NewLoader(catalog domain.Catalog, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{catalog: catalog, logger: logger}
}

// Load fetches the listing req describes. Page counts are capped at
// tmdb.MaxPages; trending is always a single page.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	res := Result{Generation: req.Generation, TotalPages: 1}

	switch req.Mode {
	case ModeSearch:
		sr, err := l.catalog.Search(ctx, req.Query, req.Page)
		if err != nil {
			return res, err
		}
		res.Movies = sr.Results
		res.TotalPages = tmdb.SearchPages(sr.TotalResults)

	case ModeTrending:
		movies, err := l.catalog.Trending(ctx)
		if err != nil {
			return res, err
		}
		res.Movies = movies

	case ModePopular, ModeTopRated:
		fetch := l.catalog.Popular
		if req.Mode == ModeTopRated {
			fetch = l.catalog.TopRated
		}
		list, err := fetch(ctx, req.Page)
		if err != nil {
			return res, err
		}
		res.Movies = list.Results
		res.TotalPages = tmdb.ClampPages(list.TotalPages)

	default:
		return res, fmt.Errorf("unknown mode %v", req.Mode)
	}

	if res.Movies == nil {
		res.Movies = []domain.Movie{}
	}
	l.logger.Debug("loaded listing", "mode", req.Mode.String(), "page", req.Page,
		"count", len(res.Movies), "total_pages", res.TotalPages)
	return res, nil
}
