package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// SpawnSpec says how many of an item kind to scatter over a fresh map.
type SpawnSpec struct {
	Kind         ItemKind `json:"kind"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Count        int      `json:"count"`
	Depreciation int      `json:"depreciation,omitempty"`
}

func (s *SpawnSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("spawn spec is required")
	}

	el := errors.NewErrorList()

	if s.Kind == ItemUnknown {
		el.Add(fmt.Errorf("kind is required"))
	}
	if s.Width <= 0 || s.Height <= 0 {
		el.Add(fmt.Errorf("width and height must be positive"))
	}
	if s.Count < 0 {
		el.Add(fmt.Errorf("count must not be negative"))
	}
	if s.Depreciation < 0 {
		el.Add(fmt.Errorf("depreciation must not be negative"))
	}

	return el.Err()
}

// DefaultSpawnTable is the stock item mix.
func DefaultSpawnTable() []SpawnSpec {
	return []SpawnSpec{
		{Kind: ItemWatermelon, Width: 50, Height: 40, Count: 4},
		{Kind: ItemLemon, Width: 20, Height: 20, Count: 2},
		{Kind: ItemApple, Width: 20, Height: 20, Count: 4},
		{Kind: ItemSnowflake, Width: 20, Height: 20, Count: 4},
		{Kind: ItemCoffee, Width: 20, Height: 20, Count: 5},
		{Kind: ItemMushroom, Width: 20, Height: 20, Count: 3},
		{Kind: ItemCrayon, Width: 30, Height: 30, Count: 4, Depreciation: 15},
		{Kind: ItemCrystalScarlet, Width: 30, Height: 30, Count: 3},
		{Kind: ItemCrystalGreen, Width: 20, Height: 20, Count: 3},
		{Kind: ItemCrystalBlue, Width: 20, Height: 20, Count: 3},
		{Kind: ItemDestination, Width: 50, Height: 50, Count: 2},
	}
}
