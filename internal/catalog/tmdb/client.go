package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/cinewave/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "es-MX"

	defaultTimeout = 15 * time.Second
)

// Options configures a Client
type Options struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration

	// Transport is the round tripper used for every request. The caching
	// transport from internal/httpcache is plugged in here.
	Transport http.RoundTripper

	// Limiter paces outgoing requests. Nil disables pacing.
	Limiter *rate.Limiter
}

// Client implements domain.Catalog against the TMDB v3 API
type Client struct {
	baseURL    string
	imageBase  string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ domain.Catalog = (*Client)(nil)

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.ErrNotConfigured
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		imageBase: opts.ImageBaseURL,
		apiKey:    opts.APIKey,
		language:  opts.Language,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		limiter: opts.Limiter,
		logger:  logger,
	}, nil
}

// doRequest performs a GET against the API. Every failure wraps
// domain.ErrFetch; nothing is retried here.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	reqURL := c.baseURL + path + "?" + query.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetch, path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetch, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("tmdb request error",
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.StatusMessage,
		)
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetch, path, domain.ErrMovieNotFound)
		}
		return nil, fmt.Errorf("%w: TMDB error %d: %s", domain.ErrFetch, resp.StatusCode, path)
	}

	return body, nil
}

// getJSON fetches path and decodes the body into T
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: failed to parse response: %w", domain.ErrFetch, err)
	}
	return out, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

// Trending returns the weekly trending movies
func (c *Client) Trending(ctx context.Context) ([]domain.Movie, error) {
	resp, err := getJSON[ListResponse](ctx, c, "/trending/movie/week", nil)
	if err != nil {
		return nil, err
	}
	return MapMovies(resp.Results, c.imageBase), nil
}

// Popular returns one page of popular movies
func (c *Client) Popular(ctx context.Context, page int) (domain.MovieList, error) {
	return c.list(ctx, "/movie/popular", page)
}

// TopRated returns one page of top rated movies
func (c *Client) TopRated(ctx context.Context, page int) (domain.MovieList, error) {
	return c.list(ctx, "/movie/top_rated", page)
}

func (c *Client) list(ctx context.Context, path string, page int) (domain.MovieList, error) {
	resp, err := getJSON[ListResponse](ctx, c, path, pageQuery(page))
	if err != nil {
		return domain.MovieList{}, err
	}
	return domain.MovieList{
		Results:    MapMovies(resp.Results, c.imageBase),
		TotalPages: ClampPages(resp.TotalPages),
	}, nil
}

// Search returns one page of movies matching query
func (c *Client) Search(ctx context.Context, query string, page int) (domain.SearchResult, error) {
	q := pageQuery(page)
	q.Set("query", query)

	resp, err := getJSON[ListResponse](ctx, c, "/search/movie", q)
	if err != nil {
		return domain.SearchResult{}, err
	}
	return domain.SearchResult{
		Results:      MapMovies(resp.Results, c.imageBase),
		TotalResults: resp.TotalResults,
	}, nil
}

// Detail returns one movie with its credits and videos resolved
func (c *Client) Detail(ctx context.Context, id int) (domain.MovieDetail, error) {
	if id <= 0 {
		return domain.MovieDetail{}, fmt.Errorf("%w: invalid movie id %d", domain.ErrFetch, id)
	}
	q := url.Values{}
	q.Set("append_to_response", "credits,videos")

	resp, err := getJSON[DetailResponse](ctx, c, "/movie/"+strconv.Itoa(id), q)
	if err != nil {
		return domain.MovieDetail{}, err
	}
	return MapDetail(resp, c.imageBase), nil
}

// IsNotFound reports whether err came from a 404 on a detail lookup
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrMovieNotFound)
}
