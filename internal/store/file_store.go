package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
)

const cacheFileName = "sleep_cache.json"

// FileStore persists the payload as a single JSON file. Writes go through a
// temp file and rename so a crash mid-write cannot corrupt prior state.
type FileStore struct {
	path string
}

// NewFileStore creates a file store rooted at dir, creating dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, cacheFileName)}, nil
}

func (s *FileStore) Load() (*domain.Payload, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, nil // unreadable state is a cold start, not an error
	}

	var payload domain.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil
	}
	return &payload, nil
}

func (s *FileStore) Save(payload domain.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), cacheFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace payload: %w", err)
	}
	return nil
}

func (s *FileStore) Reset() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
