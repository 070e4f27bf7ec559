package game

// Snapshot is a self-contained copy of the engine state. Nothing in it is
// shared with the engine, so it can be encoded or read while the match goes
// on.
type Snapshot struct {
	Tick      uint64      `msgpack:"tick"`
	Mode      Mode        `msgpack:"mode"`
	Winner    int         `msgpack:"winner"`
	Board     *Board      `msgpack:"board"`
	Explorers []*Explorer `msgpack:"explorers"`
	Events    []Event     `msgpack:"events"`
}

// Snapshot copies the current state under the lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Tick:      e.tick,
		Mode:      e.mode,
		Winner:    e.winner,
		Board:     e.board.Clone(),
		Explorers: make([]*Explorer, len(e.explorers)),
		Events:    make([]Event, len(e.events)),
	}
	for i, x := range e.explorers {
		s.Explorers[i] = x.Clone()
	}
	for i, ev := range e.events {
		ev.Action = cloneAction(ev.Action)
		s.Events[i] = ev
	}
	return s
}

// Explorer returns the explorer with id, or nil.
func (s *Snapshot) Explorer(id int) *Explorer {
	if id < 0 || id >= len(s.Explorers) {
		return nil
	}
	return s.Explorers[id]
}

// Materials lists every asset key needed to draw this snapshot.
func (s *Snapshot) Materials() Materials {
	m := Materials{Images: []string{"wall", "road"}}
	for _, x := range s.Explorers {
		m = m.Merge(x.Materials())
		for _, fx := range x.Effects {
			m = m.Merge(Materials{Images: []string{fx.Kind.String()}})
		}
	}
	if s.Board != nil {
		for _, it := range s.Board.AllItems() {
			m = m.Merge(it.Materials())
		}
	}
	return m
}
