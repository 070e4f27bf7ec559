package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/pixil98/go-errors"
	"github.com/pixil98/go-maze/internal/game"
)

var ErrMissingMaterial = errors.New("missing material")

// MaterialIndex maps material keys to files under a resource root laid out
// as images/, audios/ and fonts/. A key matches any file whose name without
// extension equals the key.
type MaterialIndex struct {
	root   string
	images map[string]string
	audios map[string]string
	fonts  map[string]string
}

func NewMaterialIndex(root string) (*MaterialIndex, error) {
	idx := &MaterialIndex{root: root}

	var err error
	if idx.images, err = indexDir(filepath.Join(root, "images")); err != nil {
		return nil, err
	}
	if idx.audios, err = indexDir(filepath.Join(root, "audios")); err != nil {
		return nil, err
	}
	if idx.fonts, err = indexDir(filepath.Join(root, "fonts")); err != nil {
		return nil, err
	}

	return idx, nil
}

// indexDir lists the files directly in dir. A missing directory is empty.
func indexDir(dir string) (map[string]string, error) {
	found := map[string]string{}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return found, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		found[key] = filepath.Join(dir, e.Name())
	}
	return found, nil
}

// Check reports every key in m with no file behind it.
func (idx *MaterialIndex) Check(m game.Materials) error {
	el := goerrors.NewErrorList()

	for _, k := range m.Images {
		if _, ok := idx.images[k]; !ok {
			el.Add(fmt.Errorf("%w: image %q", ErrMissingMaterial, k))
		}
	}
	for _, k := range m.Audios {
		if _, ok := idx.audios[k]; !ok {
			el.Add(fmt.Errorf("%w: audio %q", ErrMissingMaterial, k))
		}
	}
	for _, k := range m.Fonts {
		if _, ok := idx.fonts[k]; !ok {
			el.Add(fmt.Errorf("%w: font %q", ErrMissingMaterial, k))
		}
	}

	return el.Err()
}

// Image returns the file for an image key.
func (idx *MaterialIndex) Image(key string) (string, bool) {
	p, ok := idx.images[key]
	return p, ok
}

func (idx *MaterialIndex) Audio(key string) (string, bool) {
	p, ok := idx.audios[key]
	return p, ok
}

func (idx *MaterialIndex) Font(key string) (string, bool) {
	p, ok := idx.fonts[key]
	return p, ok
}
