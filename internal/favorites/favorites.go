// Package favorites keeps the user's favorite movies in a durable blob store.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/cinewave/internal/domain"
)

// Key is the store key holding the favorites object
const Key = "cinewave_favorites"

var errBadKey = errors.New("favorite key is not a movie id")

// Store is the favorites map plus its persistence. Safe for concurrent use.
type Store struct {
	blobs  domain.BlobStore
	logger *slog.Logger

	mu  sync.Mutex
	fav domain.FavoritesMap
}

// New loads favorites from blobs. A missing or corrupt blob starts an empty
// map; it is logged and never returned as an error.
func New(blobs domain.BlobStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{blobs: blobs, logger: logger}
	s.fav = s.load()
	return s
}

func (s *Store) load() domain.FavoritesMap {
	data, ok := s.blobs.Get(Key)
	if !ok {
		return domain.FavoritesMap{}
	}
	fav, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable favorites", "error", err)
		return domain.FavoritesMap{}
	}
	s.logger.Debug("loaded favorites", "count", len(fav))
	return fav
}

// IsFavorite reports whether id is a favorite
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.fav[id]
	return ok
}

// Toggle removes movie when it is a favorite and adds the snapshot otherwise,
// then persists the whole map. added reports the new membership. On a
// persistence error the in-memory change is kept.
func (s *Store) Toggle(movie domain.Movie) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fav[movie.ID]; ok {
		delete(s.fav, movie.ID)
	} else {
		s.fav[movie.ID] = movie
		added = true
	}

	if err := s.persist(); err != nil {
		return added, err
	}
	s.logger.Debug("toggled favorite", "id", movie.ID, "added", added)
	return added, nil
}

// List returns the favorites ordered by ascending id
func (s *Store) List() []domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sorted(s.fav)
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fav)
}

// Snapshot returns a copy of the favorites map
func (s *Store) Snapshot() domain.FavoritesMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.FavoritesMap, len(s.fav))
	for id, m := range s.fav {
		out[id] = m
	}
	return out
}

// Clear removes every favorite
func (s *Store) Clear() error {
	return s.Replace(domain.FavoritesMap{})
}

// Replace swaps the whole map for fav and persists it
func (s *Store) Replace(fav domain.FavoritesMap) error {
	next := make(domain.FavoritesMap, len(fav))
	for id, m := range fav {
		next[id] = m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fav = next
	return s.persist()
}

// Match ranks favorites whose titles fuzzily contain query. A blank query
// returns every favorite in id order.
func (s *Store) Match(query string) []domain.Movie {
	list := s.List()
	if query == "" {
		return list
	}

	titles := make([]string, len(list))
	for i, m := range list {
		titles[i] = m.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.Movie, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, list[r.OriginalIndex])
	}
	return out
}

// persist writes the map; callers hold mu
func (s *Store) persist() error {
	data, err := Encode(s.fav)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(Key, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// Encode renders fav as a JSON object keyed by the stringified movie id
func Encode(fav domain.FavoritesMap) ([]byte, error) {
	out := make(map[string]domain.Movie, len(fav))
	for id, m := range fav {
		out[strconv.Itoa(id)] = m
	}
	return json.Marshal(out)
}

// Decode parses the JSON object written by Encode
func Decode(data []byte) (domain.FavoritesMap, error) {
	var raw map[string]domain.Movie
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	fav := make(domain.FavoritesMap, len(raw))
	for k, m := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadKey, k)
		}
		fav[id] = m
	}
	return fav, nil
}

func sorted(fav domain.FavoritesMap) []domain.Movie {
	out := make([]domain.Movie, 0, len(fav))
	for _, m := range fav {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
