package storage

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-maze/internal/game"
)

// SpawnCatalog is the item mix a server scatters over each new map, kept as
// one asset per item kind.
type SpawnCatalog struct {
	store Storer[*game.SpawnSpec]
}

// LoadSpawnCatalog reads the catalog under path. An empty directory is
// seeded with the default item mix.
func LoadSpawnCatalog(path string) (*SpawnCatalog, error) {
	store, err := NewFileStore[*game.SpawnSpec](path)
	if err != nil {
		return nil, fmt.Errorf("loading spawn catalog: %w", err)
	}

	c := &SpawnCatalog{store: store}
	if len(store.GetAll()) == 0 {
		if err := c.seed(game.DefaultSpawnTable()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *SpawnCatalog) seed(table []game.SpawnSpec) error {
	for _, spec := range table {
		if err := c.store.Save(catalogID(spec.Kind), &spec); err != nil {
			return fmt.Errorf("seeding %s: %w", spec.Kind, err)
		}
	}
	return nil
}

// Table returns the catalog sorted by id, so the same files always give the
// same spawn order.
func (c *SpawnCatalog) Table() []game.SpawnSpec {
	all := c.store.GetAll()

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	table := make([]game.SpawnSpec, 0, len(ids))
	for _, id := range ids {
		table = append(table, *all[id])
	}
	return table
}

// Get returns the spec saved for kind, or nil.
func (c *SpawnCatalog) Get(kind game.ItemKind) *game.SpawnSpec {
	return c.store.Get(catalogID(kind))
}

func catalogID(kind game.ItemKind) string {
	return kind.String()
}
