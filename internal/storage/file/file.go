package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
)

// Store persists all slots as one JSON object on disk. Every write rewrites
// the file through a temp file and rename.
type Store struct {
	mu    sync.RWMutex
	path  string
	slots map[string]string
}

// Open loads path if it exists; a missing file starts empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	s := &Store{path: filepath.Clean(path), slots: make(map[string]string)}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.slots); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if s.slots == nil {
		s.slots = make(map[string]string)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.slots[key]
	s.slots[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.slots[key] = prev
		} else {
			delete(s.slots, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.slots[key]
	if !had {
		return nil
	}
	delete(s.slots, key)
	if err := s.flushLocked(); err != nil {
		s.slots[key] = prev
		return err
	}
	return nil
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
