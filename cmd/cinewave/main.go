package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/cinewave/internal/config"
	"github.com/mmcdole/cinewave/internal/logging"
)

// Version is set at build time
var Version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not setup logging: %v\n", err)
		logger = logging.NullLogger()
	}
	slog.SetDefault(logger)

	runner := NewRunner(RunnerOpts{
		Config: cfg,
		Logger: logger,
	})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		logger.Error("application error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app builds the root command. With no subcommand it launches the browser.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "cinewave",
		Usage:    "Browse trending, popular and top rated movies from your terminal",
		Version:  Version,
		Flags:    tuiFlags(),
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Store a TMDB API key in the config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory to write config.yaml to",
				Value: config.DefaultConfigPath(),
			},
		},
		Action: r.Setup,
	}
}

func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage saved favorites",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorites in id order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output as JSON",
					},
					&cli.StringFlag{
						Name:    "match",
						Aliases: []string{"m"},
						Usage:   "Only show favorites whose title fuzzily matches",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:   "clear",
				Usage:  "Remove every favorite",
				Action: r.FavoritesClear,
			},
			{
				Name:      "export",
				Usage:     "Write favorites to a JSON file",
				ArgsUsage: "<file>",
				Action:    r.FavoritesExport,
			},
			{
				Name:      "import",
				Usage:     "Replace favorites with the contents of a JSON file",
				ArgsUsage: "<file>",
				Action:    r.FavoritesImport,
			},
		},
	}
}

func detailCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "detail",
		Usage:     "Print one movie's detail",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: r.Detail,
	}
}
