package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-testutil"
)

func touch(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestMaterialIndex_Check(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "images", "wall.png"))
	touch(t, filepath.Join(root, "images", "road.png"))
	touch(t, filepath.Join(root, "audios", "pick.wav"))
	touch(t, filepath.Join(root, "fonts", "default.ttf"))

	idx, err := NewMaterialIndex(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		materials  game.Materials
		expMissing []string
	}{
		"all present": {
			materials: game.Materials{
				Images: []string{"wall", "road"},
				Audios: []string{"pick"},
				Fonts:  []string{"default"},
			},
		},
		"every missing key is listed": {
			materials: game.Materials{
				Images: []string{"wall", "lemon", "apple"},
				Audios: []string{"victory"},
				Fonts:  []string{"default", "title"},
			},
			expMissing: []string{`image "lemon"`, `image "apple"`, `audio "victory"`, `font "title"`},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := idx.Check(tt.materials)
			if len(tt.expMissing) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected missing materials error")
			}
			for _, m := range tt.expMissing {
				if !strings.Contains(err.Error(), m) {
					t.Errorf("error %q does not mention %s", err, m)
				}
			}
		})
	}
}

func TestMaterialIndex_Lookup(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "images", "fog.png"))

	idx, err := NewMaterialIndex(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, ok := idx.Image("fog")
	testutil.AssertEqual(t, "found", ok, true)
	testutil.AssertEqual(t, "path", path, filepath.Join(root, "images", "fog.png"))

	_, ok = idx.Audio("fog")
	testutil.AssertEqual(t, "audio found", ok, false)
	_, ok = idx.Font("default")
	testutil.AssertEqual(t, "font found", ok, false)
}
