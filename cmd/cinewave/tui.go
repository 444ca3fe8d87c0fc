package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/mmcdole/cinewave/internal/config"
	"github.com/mmcdole/cinewave/internal/connectivity"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/launcher"
	"github.com/mmcdole/cinewave/internal/tui"
	"github.com/mmcdole/cinewave/internal/tui/components"
)

func tuiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "section",
			Aliases: []string{"s"},
			Usage:   "Section to open: trending, popular, toprated or favorites",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep favorites in memory only for this session",
		},
	}
}

// TUI launches the interactive movie browser. Without an API key it runs
// the setup prompt first.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if !r.config.IsConfigured() {
		if err := r.runSetup(config.DefaultConfigPath()); err != nil {
			return err
		}
	}
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	name := cmd.String("section")
	if name == "" {
		name = r.config.UI.DefaultSection
	}
	section, ok := domain.ParseSection(name)
	if !ok {
		return fmt.Errorf("%w: unknown section %q", errInvalidArgument, name)
	}

	catalog, err := r.newCatalog()
	if err != nil {
		return err
	}

	favs, closeStore, err := r.openFavorites(cmd.Bool("ephemeral"))
	if err != nil {
		return err
	}
	defer closeStore()

	var monitor *connectivity.Monitor
	if r.config.Network.ProbeHost != "" {
		monitor = connectivity.NewMonitor(r.config.Network.ProbeHost, r.logger)
	}

	r.logger.Info("starting browser", "section", section, "language", r.config.Catalog.Language)

	model := tui.NewModel(tui.Options{
		Catalog:       catalog,
		Favorites:     favs,
		Toaster:       components.NewToaster(r.config.UI.ToastDuration),
		Launcher:      launcher.New(r.config.Player.Command, r.config.Player.Args, r.logger),
		Monitor:       monitor,
		Formatter:     r.formatter,
		Logger:        r.logger,
		Section:       section,
		SlideInterval: r.config.UI.SlideshowInterval,
		ProbeInterval: r.config.Network.ProbeInterval,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
