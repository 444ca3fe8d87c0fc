package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/cinewave/internal/catalog/tmdb"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/format"
)

const detailTimeout = 30 * time.Second

// Detail fetches and prints one movie by id.
func (r *Runner) Detail(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	if arg == "" {
		return fmt.Errorf("%w: detail needs a movie id", errMissingArgument)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: %q is not a movie id", errInvalidArgument, arg)
	}

	catalog, err := r.newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	d, err := catalog.Detail(ctx, id)
	if tmdb.IsNotFound(err) {
		return fmt.Errorf("no movie with id %d: %w", id, err)
	}
	if err != nil {
		return fmt.Errorf("failed to load movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(d, true)
	}
	return r.writePlain("%s", r.renderDetail(d))
}

func (r *Runner) renderDetail(d domain.MovieDetail) string {
	var b strings.Builder

	b.WriteString(d.Title)
	if d.Year != "" {
		fmt.Fprintf(&b, " (%s)", d.Year)
	}
	b.WriteString("\n")
	if d.Tagline != nil && *d.Tagline != "" {
		fmt.Fprintf(&b, "%s\n", *d.Tagline)
	}
	b.WriteString("\n")

	facts := []string{fmt.Sprintf("★ %s (%s votes)", format.Rating(d.Rating), r.formatter.Count(d.Votes))}
	if d.Runtime != nil && *d.Runtime > 0 {
		facts = append(facts, format.Runtime(d.Runtime))
	}
	if len(d.Genres) > 0 {
		facts = append(facts, strings.Join(d.Genres, ", "))
	}
	fmt.Fprintf(&b, "%s\n", strings.Join(facts, "  ·  "))
	fmt.Fprintf(&b, "Budget: %s   Revenue: %s\n", r.formatter.Money(d.Budget), r.formatter.Money(d.Revenue))
	if d.Trailer != nil {
		fmt.Fprintf(&b, "Trailer: %s\n", *d.Trailer)
	}

	fmt.Fprintf(&b, "\n%s\n", d.Overview)

	if len(d.Cast) > 0 {
		b.WriteString("\nCast:\n")
		for _, c := range d.Cast {
			if c.Character != "" {
				fmt.Fprintf(&b, "  %s as %s\n", c.Name, c.Character)
			} else {
				fmt.Fprintf(&b, "  %s\n", c.Name)
			}
		}
	}
	return b.String()
}
