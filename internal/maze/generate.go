package maze

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// Generate carves a perfect maze over roomRows×roomCols rooms with randomized
// Prim, then opens extra wall cells until the share of interior wall left
// standing is roughly density. A density of 1 keeps the perfect maze.
func Generate(roomRows, roomCols int, width, density float64, rng *rand.Rand) (*Maze, error) {
	if roomRows < 1 || roomCols < 1 {
		return nil, fmt.Errorf("%w: %dx%d rooms", ErrInvalidDimensions, roomRows, roomCols)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive", ErrInvalidDimensions)
	}
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDensity, density)
	}

	m := newMaze(roomRows, roomCols, width)
	m.carve(rng)
	m.simplify(density, rng)
	return m, nil
}

// InnerWallCells is the number of closed interior cells a perfect maze of
// this size has.
func (m *Maze) InnerWallCells() int {
	return (m.Rows-2)*(m.Cols-2) - (2*m.RoomRows*m.RoomCols - 1)
}

// carve runs randomized Prim over room coordinates. Rooms are opened one at
// a time, each joined through exactly one connector to a room already open,
// so the result is a spanning tree.
func (m *Maze) carve(rng *rand.Rand) {
	var frontier []Cell
	queued := mapset.New[Cell]()

	push := func(room Cell) {
		for _, step := range steps {
			n := Cell{Row: room.Row + step.Row, Col: room.Col + step.Col}
			if !m.roomInBounds(n) || m.roomOpen(n) || queued.Has(n) {
				continue
			}
			queued.Put(n)
			frontier = append(frontier, n)
		}
	}

	root := Cell{Row: rng.IntN(m.RoomRows), Col: rng.IntN(m.RoomCols)}
	m.setOpen(RoomCell(root.Row, root.Col))
	push(root)

	for len(frontier) > 0 {
		i := rng.IntN(len(frontier))
		room := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		queued.Remove(room)

		var joined []Cell
		for _, step := range steps {
			n := Cell{Row: room.Row + step.Row, Col: room.Col + step.Col}
			if m.roomInBounds(n) && m.roomOpen(n) {
				joined = append(joined, n)
			}
		}
		to := joined[rng.IntN(len(joined))]

		cell := RoomCell(room.Row, room.Col)
		m.setOpen(cell)
		m.setOpen(Cell{Row: cell.Row + (to.Row - room.Row), Col: cell.Col + (to.Col - room.Col)})

		push(room)
	}
}

// simplify opens round((1-density)·InnerWallCells) interior cells, each one
// chosen uniformly among closed cells that would join two open cells in a
// straight line. It stops early if no such cell is left.
func (m *Maze) simplify(density float64, rng *rand.Rand) int {
	target := int(math.Round((1 - density) * float64(m.InnerWallCells())))

	opened := 0
	for opened < target {
		candidates := m.straightConnectors()
		if len(candidates) == 0 {
			break
		}
		m.setOpen(candidates[rng.IntN(len(candidates))])
		opened++
	}
	return opened
}

func (m *Maze) straightConnectors() []Cell {
	var cells []Cell
	for row := 1; row < m.Rows-1; row++ {
		for col := 1; col < m.Cols-1; col++ {
			c := Cell{Row: row, Col: col}
			if m.IsOpen(c) {
				continue
			}
			if m.IsStraightConnector(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// IsStraightConnector reports whether both horizontal or both vertical
// neighbours of c are open.
func (m *Maze) IsStraightConnector(c Cell) bool {
	horizontal := m.IsOpen(Cell{Row: c.Row, Col: c.Col - 1}) && m.IsOpen(Cell{Row: c.Row, Col: c.Col + 1})
	vertical := m.IsOpen(Cell{Row: c.Row - 1, Col: c.Col}) && m.IsOpen(Cell{Row: c.Row + 1, Col: c.Col})
	return horizontal || vertical
}

func (m *Maze) roomInBounds(room Cell) bool {
	return room.Row >= 0 && room.Row < m.RoomRows && room.Col >= 0 && room.Col < m.RoomCols
}

func (m *Maze) roomOpen(room Cell) bool {
	return m.IsOpen(RoomCell(room.Row, room.Col))
}
