package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Config fixes everything about a match except the random seed.
type Config struct {
	Players   int
	RoomRows  int
	RoomCols  int
	CellWidth float64
	Density   float64

	// SpawnRoom is the room, in room coordinates, every explorer starts in.
	SpawnRoomRow int
	SpawnRoomCol int
	Explorer     ExplorerConfig
	Spawns       []SpawnSpec
}

func DefaultConfig(players int) Config {
	return Config{
		Players:      players,
		RoomRows:     10,
		RoomCols:     8,
		CellWidth:    100,
		Density:      0.9,
		SpawnRoomRow: 1,
		SpawnRoomCol: 1,
		Explorer:     DefaultExplorerConfig(),
		Spawns:       DefaultSpawnTable(),
	}
}

func (c Config) Validate() error {
	el := errors.NewErrorList()

	if c.Players < 1 {
		el.Add(fmt.Errorf("players must be at least 1"))
	}
	if c.RoomRows < 1 || c.RoomCols < 1 {
		el.Add(fmt.Errorf("room_rows and room_cols must be at least 1"))
	}
	if c.CellWidth <= 0 {
		el.Add(fmt.Errorf("cell_width must be positive"))
	}
	if c.Density < 0 || c.Density > 1 {
		el.Add(fmt.Errorf("density must be between 0 and 1"))
	}
	if c.SpawnRoomRow < 0 || c.SpawnRoomRow >= c.RoomRows || c.SpawnRoomCol < 0 || c.SpawnRoomCol >= c.RoomCols {
		el.Add(fmt.Errorf("spawn room (%d,%d) is outside the maze", c.SpawnRoomRow, c.SpawnRoomCol))
	}
	if c.Explorer.Width <= 0 || c.Explorer.Height <= 0 {
		el.Add(fmt.Errorf("explorer size must be positive"))
	}
	if c.Explorer.Width >= c.CellWidth || c.Explorer.Height >= c.CellWidth {
		el.Add(fmt.Errorf("explorer must be smaller than a cell"))
	}
	if c.Explorer.BagCapacity < 0 {
		el.Add(fmt.Errorf("bag capacity must not be negative"))
	}
	for i, s := range c.Spawns {
		if err := s.Validate(); err != nil {
			el.Add(fmt.Errorf("spawn %d: %w", i, err))
		}
	}

	err := el.Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
