package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const dbFile = "cinewave.db"

var bucketBlobs = []byte("blobs")

// Store is a string-keyed blob store backed by BoltDB.
// With no directory it keeps everything in memory.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the store under dir. An empty dir gives a
// memory-only store.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		return &Store{logger: logger, cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, dbFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger, cache: make(map[string][]byte)}, nil
}

// Persistent reports whether writes reach disk
func (s *Store) Persistent() bool {
	return s.db != nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns a copy of the blob stored under key
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return clone(data), true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBlobs)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to read blob, treating as absent", "key", key, "error", err)
		return nil, false
	}

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return clone(data), true
}

// Put stores value under key, replacing any previous blob
func (s *Store) Put(key string, value []byte) error {
	data := clone(value)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketBlobs).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Delete([]byte(key))
	})
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
