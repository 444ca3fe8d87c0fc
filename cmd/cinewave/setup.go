package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mmcdole/cinewave/internal/config"
)

var errNoAPIKey = errors.New("no API key entered")

// Setup prompts for a TMDB API key and saves it to config.yaml.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	return r.runSetup(cmd.String("dir"))
}

func (r *Runner) runSetup(dir string) error {
	r.writePlain("\nWelcome to cinewave!\n\n")
	r.writePlain("A TMDB API key is required: https://www.themoviedb.org/settings/api\n\n")

	key, err := r.promptAPIKey()
	if err != nil {
		return err
	}

	cfg := *r.config
	cfg.Catalog.APIKey = key
	if err := config.SaveTo(dir, &cfg); err != nil {
		return err
	}
	r.config.Catalog.APIKey = key

	r.logger.Info("configuration saved", "dir", dir)
	r.writePlain("\n✓ Configuration saved to %s\n\n", filepath.Join(dir, "config.yaml"))
	return nil
}

// promptAPIKey reads a key, hiding input when attached to a terminal. Blank
// answers are asked again until input runs out.
func (r *Runner) promptAPIKey() (string, error) {
	readLine := r.lineReader()
	for {
		r.writePlain("Enter your TMDB API key: ")
		line, err := readLine()
		key := strings.TrimSpace(line)
		if key != "" {
			return key, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errNoAPIKey
			}
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		r.writePlain("API key cannot be empty. Please try again.\n")
	}
}

func (r *Runner) lineReader() func() (string, error) {
	if f, ok := r.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return func() (string, error) {
			b, err := term.ReadPassword(int(f.Fd()))
			r.writePlain("\n")
			return string(b), err
		}
	}
	br := bufio.NewReader(r.input)
	return func() (string, error) {
		return br.ReadString('\n')
	}
}
