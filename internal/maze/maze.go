// Package maze builds and queries the grid the game is played on.
//
// A maze with R×C rooms is a (2R+1)×(2C+1) grid of square cells. Cells at odd
// (row, col) are rooms; the cells between them are walls or, once carved,
// connectors. The outer border is always closed.
package maze

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidDensity    = errors.New("density must be between 0 and 1")
)

// Cell addresses one grid square.
type Cell struct {
	Row int `msgpack:"r"`
	Col int `msgpack:"c"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Rect is an axis aligned pixel rectangle with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H float64
}

type Maze struct {
	RoomRows int     `msgpack:"room_rows"`
	RoomCols int     `msgpack:"room_cols"`
	Rows     int     `msgpack:"rows"`
	Cols     int     `msgpack:"cols"`
	Width    float64 `msgpack:"width"`
	Open     []bool  `msgpack:"open"`
}

func newMaze(roomRows, roomCols int, width float64) *Maze {
	rows, cols := 2*roomRows+1, 2*roomCols+1
	return &Maze{
		RoomRows: roomRows,
		RoomCols: roomCols,
		Rows:     rows,
		Cols:     cols,
		Width:    width,
		Open:     make([]bool, rows*cols),
	}
}

func (m *Maze) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < m.Rows && c.Col >= 0 && c.Col < m.Cols
}

// IsOpen reports whether c is inside the grid and walkable.
func (m *Maze) IsOpen(c Cell) bool {
	return m.InBounds(c) && m.Open[m.index(c)]
}

// AreCellsOpen reports whether every listed cell is open.
func (m *Maze) AreCellsOpen(cells ...Cell) bool {
	for _, c := range cells {
		if !m.IsOpen(c) {
			return false
		}
	}
	return true
}

// IsRectOpen reports whether every cell the pixel rectangle touches is open.
// The covered range is clamped to the grid.
func (m *Maze) IsRectOpen(r Rect) bool {
	rMin := max(0, int(math.Floor(r.Y/m.Width)))
	rMax := min(m.Rows-1, int(math.Floor((r.Y+r.H)/m.Width)))
	cMin := max(0, int(math.Floor(r.X/m.Width)))
	cMax := min(m.Cols-1, int(math.Floor((r.X+r.W)/m.Width)))

	if rMin > rMax || cMin > cMax {
		return false
	}

	for row := rMin; row <= rMax; row++ {
		for col := cMin; col <= cMax; col++ {
			if !m.Open[row*m.Cols+col] {
				return false
			}
		}
	}
	return true
}

// CellAt returns the cell containing pixel x, y.
func (m *Maze) CellAt(x, y float64) Cell {
	return Cell{
		Row: int(math.Floor(y / m.Width)),
		Col: int(math.Floor(x / m.Width)),
	}
}

// RoomCell converts room coordinates to grid coordinates.
func RoomCell(roomRow, roomCol int) Cell {
	return Cell{Row: 2*roomRow + 1, Col: 2*roomCol + 1}
}

// CellCenter returns the pixel centre of c.
func (m *Maze) CellCenter(c Cell) (x, y float64) {
	return float64(c.Col)*m.Width + m.Width/2, float64(c.Row)*m.Width + m.Width/2
}

// OpenCount returns the number of open cells.
func (m *Maze) OpenCount() int {
	n := 0
	for _, o := range m.Open {
		if o {
			n++
		}
	}
	return n
}

// OpenCells lists every open cell in row-major order.
func (m *Maze) OpenCells() []Cell {
	var cells []Cell
	for i, o := range m.Open {
		if o {
			cells = append(cells, m.cell(i))
		}
	}
	return cells
}

func (m *Maze) Clone() *Maze {
	c := *m
	c.Open = append([]bool(nil), m.Open...)
	return &c
}

// String renders the grid with '#' for closed cells.
func (m *Maze) String() string {
	var sb strings.Builder
	for row := range m.Rows {
		for col := range m.Cols {
			if m.Open[row*m.Cols+col] {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Maze) index(c Cell) int {
	return c.Row*m.Cols + c.Col
}

func (m *Maze) cell(i int) Cell {
	return Cell{Row: i / m.Cols, Col: i % m.Cols}
}

func (m *Maze) setOpen(c Cell) {
	m.Open[m.index(c)] = true
}

// FromRows builds a maze from an ASCII drawing where '#' marks a closed cell
// and anything else an open one.
func FromRows(rows []string, width float64) (*Maze, error) {
	if len(rows) < 3 || len(rows)%2 == 0 {
		return nil, fmt.Errorf("%w: need an odd number of rows, got %d", ErrInvalidDimensions, len(rows))
	}
	cols := len(rows[0])
	if cols < 3 || cols%2 == 0 {
		return nil, fmt.Errorf("%w: need an odd number of columns, got %d", ErrInvalidDimensions, cols)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive", ErrInvalidDimensions)
	}

	m := newMaze(len(rows)/2, cols/2, width)
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidDimensions, r, len(line), cols)
		}
		for c := range len(line) {
			if line[c] != '#' {
				m.setOpen(Cell{Row: r, Col: c})
			}
		}
	}
	return m, nil
}
