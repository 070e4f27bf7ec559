package maze

import "slices"

var steps = []Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ShortestPath returns a minimum length 4-connected path of open cells from
// a to b, both ends included. It returns nil when either end is closed or
// b cannot be reached from a.
func (m *Maze) ShortestPath(a, b Cell) []Cell {
	if !m.IsOpen(a) || !m.IsOpen(b) {
		return nil
	}

	parent := make([]int, len(m.Open))
	for i := range parent {
		parent[i] = -1
	}
	start, goal := m.index(a), m.index(b)
	parent[start] = start

	queue := []int{start}
	for len(queue) > 0 && parent[goal] < 0 {
		cur := m.cell(queue[0])
		queue = queue[1:]

		for _, s := range steps {
			n := Cell{Row: cur.Row + s.Row, Col: cur.Col + s.Col}
			if !m.IsOpen(n) {
				continue
			}
			ni := m.index(n)
			if parent[ni] >= 0 {
				continue
			}
			parent[ni] = m.index(cur)
			queue = append(queue, ni)
		}
	}

	if parent[goal] < 0 {
		return nil
	}

	var path []Cell
	for i := goal; ; i = parent[i] {
		path = append(path, m.cell(i))
		if i == start {
			break
		}
	}
	slices.Reverse(path)
	return path
}
