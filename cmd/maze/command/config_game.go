package command

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/storage"
)

type GameConfig struct {
	Players   int      `json:"players"`
	RoomRows  int      `json:"room_rows"`
	RoomCols  int      `json:"room_cols"`
	CellWidth float64  `json:"cell_width"`
	Density   *float64 `json:"density"`
	Seed      uint64   `json:"seed"`
	ItemsPath string   `json:"items_path"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()

	if c.Players < 1 {
		el.Add(fmt.Errorf("players must be at least 1"))
	}
	if c.RoomRows < 0 || c.RoomCols < 0 {
		el.Add(fmt.Errorf("room_rows and room_cols must not be negative"))
	}
	if c.CellWidth < 0 {
		el.Add(fmt.Errorf("cell_width must not be negative"))
	}
	if c.Density != nil && (*c.Density < 0 || *c.Density > 1) {
		el.Add(fmt.Errorf("density must be between 0 and 1"))
	}

	return el.Err()
}

// gameConfig overlays the configured values on the defaults. Zero values
// keep the default, except density where only an absent value does.
func (c *GameConfig) gameConfig() (game.Config, error) {
	cfg := game.DefaultConfig(c.Players)
	if c.RoomRows > 0 {
		cfg.RoomRows = c.RoomRows
	}
	if c.RoomCols > 0 {
		cfg.RoomCols = c.RoomCols
	}
	if c.CellWidth > 0 {
		cfg.CellWidth = c.CellWidth
	}
	if c.Density != nil {
		cfg.Density = *c.Density
	}

	if c.ItemsPath != "" {
		catalog, err := storage.LoadSpawnCatalog(c.ItemsPath)
		if err != nil {
			return game.Config{}, err
		}
		cfg.Spawns = catalog.Table()
	}

	return cfg, cfg.Validate()
}

func (c *GameConfig) buildEngine() (*game.Engine, error) {
	cfg, err := c.gameConfig()
	if err != nil {
		return nil, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("creating engine", "players", cfg.Players, "rooms", fmt.Sprintf("%dx%d", cfg.RoomRows, cfg.RoomCols), "seed", seed)

	return game.NewEngine(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}
