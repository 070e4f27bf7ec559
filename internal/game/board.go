package game

import (
	"slices"

	"github.com/pixil98/go-maze/internal/maze"
)

// Board is the maze plus whatever lies in each of its cells. Items and marks
// are stored per cell, indexed row-major.
type Board struct {
	Maze  *maze.Maze `msgpack:"maze"`
	Items [][]*Item  `msgpack:"items"`
	Marks [][]Mark   `msgpack:"marks"`
}

func NewBoard(m *maze.Maze) *Board {
	return &Board{
		Maze:  m,
		Items: make([][]*Item, m.Rows*m.Cols),
		Marks: make([][]Mark, m.Rows*m.Cols),
	}
}

func (b *Board) index(c maze.Cell) (int, bool) {
	if !b.Maze.InBounds(c) {
		return 0, false
	}
	return c.Row*b.Maze.Cols + c.Col, true
}

// ItemsAt returns the items lying in c. The slice must not be modified.
func (b *Board) ItemsAt(c maze.Cell) []*Item {
	i, ok := b.index(c)
	if !ok {
		return nil
	}
	return b.Items[i]
}

// FindItem looks up an item by id within cell c.
func (b *Board) FindItem(c maze.Cell, id uint64) *Item {
	for _, it := range b.ItemsAt(c) {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// PlaceItem drops item into the cell containing its centre.
func (b *Board) PlaceItem(item *Item) bool {
	i, ok := b.index(b.Maze.CellAt(item.X, item.Y))
	if !ok {
		return false
	}
	b.Items[i] = append(b.Items[i], item)
	return true
}

// RemoveItem takes the item with id out of cell c.
func (b *Board) RemoveItem(c maze.Cell, id uint64) *Item {
	i, ok := b.index(c)
	if !ok {
		return nil
	}
	j := slices.IndexFunc(b.Items[i], func(it *Item) bool { return it.ID == id })
	if j < 0 {
		return nil
	}
	item := b.Items[i][j]
	b.Items[i] = slices.Delete(b.Items[i], j, j+1)
	return item
}

// AllItems lists every item on the board in cell order.
func (b *Board) AllItems() []*Item {
	var items []*Item
	for _, cell := range b.Items {
		items = append(items, cell...)
	}
	return items
}

func (b *Board) AddMark(m Mark) bool {
	i, ok := b.index(b.Maze.CellAt(m.X, m.Y))
	if !ok {
		return false
	}
	b.Marks[i] = append(b.Marks[i], m)
	return true
}

func (b *Board) MarksAt(c maze.Cell) []Mark {
	i, ok := b.index(c)
	if !ok {
		return nil
	}
	return b.Marks[i]
}

// Clone copies the board deeply enough that no mutation of the original can
// be observed through the copy.
func (b *Board) Clone() *Board {
	c := &Board{
		Maze:  b.Maze.Clone(),
		Items: make([][]*Item, len(b.Items)),
		Marks: make([][]Mark, len(b.Marks)),
	}
	for i, cell := range b.Items {
		if len(cell) == 0 {
			continue
		}
		c.Items[i] = make([]*Item, len(cell))
		for j, it := range cell {
			c.Items[i][j] = it.Clone()
		}
	}
	for i, cell := range b.Marks {
		c.Marks[i] = slices.Clone(cell)
	}
	return c
}
