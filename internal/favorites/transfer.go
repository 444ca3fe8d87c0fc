package favorites

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Export writes the favorites object to path on fs
func (s *Store) Export(fs afero.Fs, path string) (int, error) {
	fav := s.Snapshot()
	data, err := Encode(fav)
	if err != nil {
		return 0, err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(fav), nil
}

// Import replaces the favorites with the object stored at path on fs.
// Unlike loading from the store, a malformed file is an error.
func (s *Store) Import(fs afero.Fs, path string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fav, err := Decode(data)
	if err != nil {
		return 0, fmt.Errorf("invalid favorites file %s: %w", path, err)
	}
	if err := s.Replace(fav); err != nil {
		return 0, err
	}
	return len(fav), nil
}
