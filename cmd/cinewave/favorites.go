package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
)

// FavoritesList prints saved favorites, optionally narrowed by --match.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	favs, closeStore, err := r.openFavorites(false)
	if err != nil {
		return err
	}
	defer closeStore()

	var movies []domain.Movie
	if q := cmd.String("match"); q != "" {
		movies = favs.Match(q)
	} else {
		movies = favs.List()
	}
	if movies == nil {
		movies = []domain.Movie{}
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, true)
	}

	if len(movies) == 0 {
		return r.writePlain("No favorites yet.\n")
	}
	for _, m := range movies {
		year := m.Year
		if year == "" {
			year = "----"
		}
		if err := r.writePlain("%-8d %-40s %s  ★ %s\n", m.ID, format.Truncate(m.Title, 40), year, format.Rating(m.Rating)); err != nil {
			return err
		}
	}
	return r.writePlain("\n%s favorites\n", r.formatter.Count(len(movies)))
}

// FavoritesClear removes every favorite.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	favs, closeStore, err := r.openFavorites(false)
	if err != nil {
		return err
	}
	defer closeStore()

	n := favs.Len()
	if err := favs.Clear(); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	r.logger.Info("favorites cleared", "count", n)
	return r.writePlain("Removed %d favorites\n", n)
}

// FavoritesExport writes favorites to the file named by the first argument.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("%w: export needs a file path", errMissingArgument)
	}

	favs, closeStore, err := r.openFavorites(false)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := favs.Export(r.fs, path)
	if err != nil {
		return err
	}
	return r.writePlain("Exported %d favorites to %s\n", n, path)
}

// FavoritesImport replaces favorites with the file named by the first argument.
func (r *Runner) FavoritesImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("%w: import needs a file path", errMissingArgument)
	}

	favs, closeStore, err := r.openFavorites(false)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := favs.Import(r.fs, path)
	if err != nil {
		return err
	}
	return r.writePlain("Imported %d favorites from %s\n", n, path)
}
