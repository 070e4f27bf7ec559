package game

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid game config")
	ErrNoSpawnCells  = errors.New("no open cells to place items in")
)
