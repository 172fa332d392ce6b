package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every configuration in memory behind a single mutex and
// writes the whole snapshot through to a JSON file on each mutation. The
// snapshot is written to a temporary file and renamed into place, so a
// reader never observes a half-updated store.
type FileStore struct {
	path string

	mu      sync.Mutex
	configs map[string]*DeviceConfig
}

// NewFileStore creates a file-backed store at path, loading any existing
// snapshot. An empty path keeps the store purely in memory.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		configs: make(map[string]*DeviceConfig),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading store file: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		return s, nil
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.configs); err != nil {
			return nil, fmt.Errorf("parsing store file: %w", err)
		}
	}
	return s, nil
}

// Put stores a device configuration, replacing any previous record under the
// same key ID.
func (s *FileStore) Put(ctx context.Context, cfg *DeviceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.configs[cfg.KeyID]
	s.configs[cfg.KeyID] = cfg.Clone()

	if err := s.persistLocked(); err != nil {
		// Roll the in-memory map back so memory and disk stay in agreement.
		if existed {
			s.configs[cfg.KeyID] = previous
		} else {
			delete(s.configs, cfg.KeyID)
		}
		return err
	}
	return nil
}

// Get retrieves a device configuration by key ID, or (nil, nil) when absent.
func (s *FileStore) Get(ctx context.Context, keyID string) (*DeviceConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configs[keyID].Clone(), nil
}

// Delete removes a device configuration. It reports ErrNotFound when the key
// ID is not stored.
func (s *FileStore) Delete(ctx context.Context, keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.configs[keyID]
	if !existed {
		return ErrNotFound
	}
	delete(s.configs, keyID)

	if err := s.persistLocked(); err != nil {
		s.configs[keyID] = previous
		return err
	}
	return nil
}

// List returns every stored configuration.
func (s *FileStore) List(ctx context.Context) ([]*DeviceConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*DeviceConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		out = append(out, cfg.Clone())
	}
	return out, nil
}

// CheckHealth verifies the snapshot directory is reachable.
func (s *FileStore) CheckHealth(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	return nil
}

// persistLocked writes the full snapshot to disk. Callers must hold s.mu.
func (s *FileStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.configs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.json")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
