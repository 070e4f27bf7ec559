package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/pixil98/go-errors"
)

// Storer keeps validated specs by id.
type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// FileStore loads every .json asset under a directory tree and writes
// saved specs back one file per id. A directory holding any bad asset
// fails to load as a whole, with every problem listed.
type FileStore[T ValidatingSpec] struct {
	dir     string
	records map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](dir string) (*FileStore[T], error) {
	s := &FileStore[T]{dir: dir}

	records, err := s.scan()
	if err != nil {
		return nil, err
	}
	s.records = records

	return s, nil
}

func (s *FileStore[T]) scan() (map[string]T, error) {
	records := map[string]T{}
	el := errors.NewErrorList()

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := readAsset[T](path)
		if err != nil {
			el.Add(fmt.Errorf("%s: %w", filepath.Base(path), err))
			return nil
		}

		id := asset.Id().String()
		if _, dup := records[id]; dup {
			el.Add(fmt.Errorf("duplicate key detected: %s", id))
			return nil
		}
		records[id] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.dir, err)
	}

	return records, el.Err()
}

func readAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return asset, nil
}

// Save validates o, writes it to disk and only then updates the cache.
func (s *FileStore[T]) Save(id string, o T) error {
	asset := &Asset[T]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       o,
	}
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	data, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := replaceFile(filepath.Join(s.dir, id+".json"), data); err != nil {
		return err
	}
	s.records[id] = o
	return nil
}

// replaceFile swaps in data through a temp file so readers never see a
// partial asset.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			slog.Warn("removing temp file", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Get returns the spec saved under id, or the zero value.
func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.records)
}
