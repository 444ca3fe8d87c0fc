package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/mmcdole/cinewave/internal/catalog/tmdb"
	"github.com/mmcdole/cinewave/internal/config"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/favorites"
	"github.com/mmcdole/cinewave/internal/format"
	"github.com/mmcdole/cinewave/internal/httpcache"
	"github.com/mmcdole/cinewave/internal/logging"
	"github.com/mmcdole/cinewave/internal/store"
)

var (
	errMissingArgument = errors.New("missing argument")
	errInvalidArgument = errors.New("invalid argument")
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *config.Config
	logger    *slog.Logger
	output    io.Writer
	input     io.Reader
	fs        afero.Fs
	catalog   domain.Catalog
	formatter *format.Formatter
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *config.Config
	Logger *slog.Logger
	Output io.Writer
	Input  io.Reader
	Fs     afero.Fs

	// Catalog replaces the TMDB client built from Config
	Catalog domain.Catalog
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NullLogger()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	return &Runner{
		config:    opts.Config,
		logger:    opts.Logger,
		output:    opts.Output,
		input:     opts.Input,
		fs:        opts.Fs,
		catalog:   opts.Catalog,
		formatter: format.New(opts.Config.Catalog.Language),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, favoritesCommand, detailCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// newCatalog returns the injected catalog or builds a rate limited TMDB
// client behind the caching transport.
func (r *Runner) newCatalog() (domain.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	cc := r.config.Catalog
	client, err := tmdb.NewClient(tmdb.Options{
		APIKey:       cc.APIKey,
		BaseURL:      cc.BaseURL,
		ImageBaseURL: cc.ImageBaseURL,
		Language:     cc.Language,
		Timeout:      cc.Timeout,
		Transport:    httpcache.NewTransport(nil, r.logger, cacheRules(r.config)...),
		Limiter:      newLimiter(cc.RequestsPerWindow, cc.RateWindow),
	}, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	r.catalog = client
	return client, nil
}

// newLimiter allows n requests per window with a burst of n
func newLimiter(n int, window time.Duration) *rate.Limiter {
	if n <= 0 || window <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(n)), n)
}

// cacheRules serves the API network-first and images cache-first
func cacheRules(cfg *config.Config) []httpcache.Rule {
	var rules []httpcache.Rule
	if host := hostOf(cfg.Catalog.BaseURL); host != "" {
		rules = append(rules, httpcache.Rule{
			Host:           host,
			Strategy:       httpcache.NetworkFirst,
			Entries:        cfg.Cache.APIEntries,
			TTL:            cfg.Cache.APITTL,
			NetworkTimeout: cfg.Cache.NetworkTimeout,
		})
	}
	if host := hostOf(cfg.Catalog.ImageBaseURL); host != "" {
		rules = append(rules, httpcache.Rule{
			Host:     host,
			Strategy: httpcache.CacheFirst,
			Entries:  cfg.Cache.ImageEntries,
			TTL:      cfg.Cache.ImageTTL,
		})
	}
	return rules
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// openFavorites opens the favorites store. The returned func closes the
// underlying database.
func (r *Runner) openFavorites(ephemeral bool) (*favorites.Store, func() error, error) {
	dir := expandHome(r.config.Storage.DataDir)
	if ephemeral {
		dir = ""
	}
	blobs, err := store.Open(dir, r.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open favorites store: %w", err)
	}
	if !blobs.Persistent() {
		r.logger.Info("favorites are kept in memory for this session")
	}
	return favorites.New(blobs, r.logger), blobs.Close, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
