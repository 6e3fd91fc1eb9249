package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bluecore/bluecore/core/config"
)

const (
	saltFileName      = "salt.bin"
	overridesFileName = "overrides.yaml"
)

// FileStore persists adapter state under a single data directory.
// Writes go through a temp file and rename so a crash never leaves a
// partially written value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory '%s': %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// ReadSalt returns the committed salt blob, or ErrNotFound on first boot.
func (s *FileStore) ReadSalt() ([]byte, error) {
	buf, err := os.ReadFile(filepath.Join(s.dir, saltFileName))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}
	return buf, nil
}

// WriteSalt commits the salt blob, replacing any previous value atomically.
func (s *FileStore) WriteSalt(salt []byte) error {
	return s.writeFile(saltFileName, salt, 0o600)
}

// ReadConfig returns the persisted configuration overrides, or ErrNotFound
// if none have been written yet.
func (s *FileStore) ReadConfig() (*config.Overrides, error) {
	buf, err := os.ReadFile(filepath.Join(s.dir, overridesFileName))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}
	var overrides config.Overrides
	if err := yaml.Unmarshal(buf, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	return &overrides, nil
}

// WriteConfig persists the configuration overrides atomically.
func (s *FileStore) WriteConfig(overrides *config.Overrides) error {
	buf, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("failed to encode overrides: %w", err)
	}
	return s.writeFile(overridesFileName, buf, 0o600)
}

func (s *FileStore) writeFile(name string, data []byte, mode os.FileMode) error {
	final := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for '%s': %w", name, err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set mode on '%s': %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write '%s': %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close '%s': %w", name, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace '%s': %w", name, err)
	}
	return nil
}
