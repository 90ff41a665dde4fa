// ABOUTME: YAML-backed storage for the local profile settings.
// ABOUTME: Returns defaults when nothing is saved and rewrites the file wholesale on save.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/minigram/internal/models"
)

// ProfileStore defines persistence for the profile shown on the profile page.
type ProfileStore interface {
	// Load returns the saved profile, or the default profile when none exists.
	Load() (models.Profile, error)

	// Save replaces the stored profile.
	Save(p models.Profile) error
}

// ProfileYAMLStore stores the profile as a single YAML file.
type ProfileYAMLStore struct {
	path string
}

// NewProfileYAMLStore creates a profile store at the given file path.
func NewProfileYAMLStore(path string) *ProfileYAMLStore {
	return &ProfileYAMLStore{path: path}
}

// Path returns the backing file path.
func (s *ProfileYAMLStore) Path() string {
	return s.path
}

// Load reads the profile file. A missing file yields the default profile.
func (s *ProfileYAMLStore) Load() (models.Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultProfile(), nil
		}
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var p models.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return p.WithDefaults(), nil
}

// Save writes the whole profile, replacing any previous file atomically.
func (s *ProfileYAMLStore) Save(p models.Profile) error {
	data, err := yaml.Marshal(p.WithDefaults())
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return atomicWrite(s.path, data)
}

// atomicWrite writes data to a temp file in the target directory and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
