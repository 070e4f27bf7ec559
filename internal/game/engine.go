package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/pixil98/go-maze/internal/maze"
	"github.com/sasha-s/go-deadlock"
)

// Mode is the engine's top level state.
type Mode int

const (
	ModeRunning Mode = iota
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModeGameOver:
		return "gameover"
	}
	return "unknown"
}

const (
	// NoWinner is the winner id while a match is undecided.
	NoWinner = -1

	CrystalsToWin = 3
	UseEventTime  = 1.5
	ChatEventTime = 4.0
	MaxChatLength = 120
	MarkSizeRatio = 0.3
)

// Engine owns the authoritative state of one match. A single lock guards
// all of it; every exported method holds the lock for its whole body, so
// concurrent callers see each operation as atomic.
type Engine struct {
	mu deadlock.Mutex

	cfg Config
	rng *rand.Rand

	mode      Mode
	winner    int
	tick      uint64
	board     *Board
	explorers []*Explorer
	pending   []Action
	events    []Event
}

// NewEngine validates cfg and builds the first map.
func NewEngine(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, rng: rng}
	if err := e.reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset throws the current match away and starts a new one on a fresh map.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reset()
}

func (e *Engine) reset() error {
	m, err := maze.Generate(e.cfg.RoomRows, e.cfg.RoomCols, e.cfg.CellWidth, e.cfg.Density, e.rng)
	if err != nil {
		return fmt.Errorf("generating maze: %w", err)
	}

	board := NewBoard(m)
	spawn := maze.RoomCell(e.cfg.SpawnRoomRow, e.cfg.SpawnRoomCol)
	if err := e.populate(board, spawn); err != nil {
		return err
	}

	x, y := m.CellCenter(spawn)
	explorers := make([]*Explorer, e.cfg.Players)
	for i := range explorers {
		explorers[i] = NewExplorer(i, x, y, e.cfg.Explorer)
	}

	e.mode = ModeRunning
	e.winner = NoWinner
	e.tick = 0
	e.board = board
	e.explorers = explorers
	e.pending = nil
	e.events = nil
	return nil
}

// populate scatters the spawn table over random open cells, keeping the
// spawn cell clear.
func (e *Engine) populate(b *Board, spawn maze.Cell) error {
	var cells []maze.Cell
	for _, c := range b.Maze.OpenCells() {
		if c != spawn {
			cells = append(cells, c)
		}
	}

	w := b.Maze.Width
	for _, s := range e.cfg.Spawns {
		if s.Count > 0 && len(cells) == 0 {
			return ErrNoSpawnCells
		}
		for range s.Count {
			c := cells[e.rng.IntN(len(cells))]
			x := float64(c.Col)*w + e.offset(w, s.Width)
			y := float64(c.Row)*w + e.offset(w, s.Height)
			b.PlaceItem(NewItem(s.Kind, x, y, s.Width, s.Height, s.Depreciation))
		}
	}
	return nil
}

// offset picks a centre coordinate within a cell of width w that keeps an
// object of the given size inside the cell.
func (e *Engine) offset(w, size float64) float64 {
	if size >= w {
		return w / 2
	}
	return size/2 + e.rng.Float64()*(w-size)
}

func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mode
}

// Winner is the player id that won, or NoWinner.
func (e *Engine) Winner() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.winner
}

func (e *Engine) Players() int {
	return e.cfg.Players
}

// ApplyAction validates a and applies it if legal. Illegal actions are
// dropped without error.
func (e *Engine) ApplyAction(a Action) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.apply(a)
}

// ApplyActions applies a batch received from player. Actions claiming a
// different applier are dropped. It reports whether the batch made the
// player quit.
func (e *Engine) ApplyActions(player int, actions []Action) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	quit := false
	for _, a := range actions {
		if a.Applier != player {
			continue
		}
		if e.apply(a) && a.Kind == ActionQuit {
			quit = true
		}
	}
	return quit
}

// Enqueue buffers actions to be applied at the start of the next Update.
func (e *Engine) Enqueue(actions ...Action) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = append(e.pending, actions...)
}

func (e *Engine) explorer(id int) *Explorer {
	if id < 0 || id >= len(e.explorers) {
		return nil
	}
	return e.explorers[id]
}

// apply reports whether a was accepted. The lock must be held.
func (e *Engine) apply(a Action) bool {
	if e.mode == ModeGameOver {
		return false
	}

	applier, target := e.explorer(a.Applier), e.explorer(a.Target)
	if applier == nil || target == nil || applier.Quit {
		return false
	}

	switch a.Kind {
	case ActionTurn, ActionUnturn:
		d := Direction(a.Value)
		if a.Applier != a.Target || !d.Valid() {
			return false
		}
		applier.SetDirection(d, a.Kind == ActionTurn)
		return true

	case ActionPick:
		return e.pick(applier, a)

	case ActionUse:
		return e.use(applier, target, a)

	case ActionPlace:
		// Dropping items back on the map is not supported.
		return true

	case ActionChat:
		text := strings.TrimSpace(a.Text)
		if text == "" {
			return false
		}
		if utf8.RuneCountInString(text) > MaxChatLength {
			text = string([]rune(text)[:MaxChatLength])
		}
		a.Text = text
		a.Args = nil
		e.events = append(e.events, Event{Action: a, Remaining: ChatEventTime})
		return true

	case ActionQuit:
		if a.Applier != a.Target {
			return false
		}
		applier.StopMoving()
		applier.Quit = true
		return true
	}

	return false
}

func (e *Engine) pick(applier *Explorer, a Action) bool {
	if len(a.Args) < 2 {
		return false
	}
	cell := maze.Cell{Row: a.Args[0], Col: a.Args[1]}
	item := e.board.FindItem(cell, a.Item)
	if item == nil || !applier.CanReach(item.X, item.Y) {
		return false
	}

	switch {
	case item.Kind == ItemDestination:
		if len(applier.Crystals) < CrystalsToWin {
			return false
		}
		e.mode = ModeGameOver
		e.winner = applier.ID
		return true

	case item.Kind.IsCrystal():
		if !applier.AddCrystal(item.Kind) {
			return false
		}
		e.board.RemoveItem(cell, item.ID)
		e.events = append(e.events, Event{Action: cloneAction(a), ItemKind: item.Kind, Remaining: UseEventTime})
		return true

	default:
		if !applier.Bag.Add(item) {
			return false
		}
		e.board.RemoveItem(cell, item.ID)
		return true
	}
}

func (e *Engine) use(applier, target *Explorer, a Action) bool {
	item := applier.Bag.Get(a.Value)
	if item == nil {
		return false
	}
	effect, ok := itemUses[item.Kind]
	if !ok {
		return false
	}

	effect(e, target)
	item.Life -= item.Depreciation
	if item.Exhausted() {
		applier.Bag.Remove(a.Value)
	}

	if applier.ID != target.ID {
		e.events = append(e.events, Event{Action: cloneAction(a), ItemKind: item.Kind, Remaining: UseEventTime})
	}
	return true
}

// Update advances the simulation by dt seconds: buffered actions are
// applied, explorers move, effects and events count down.
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range e.pending {
		e.apply(a)
	}
	e.pending = nil

	if e.mode == ModeGameOver {
		return
	}
	e.tick++

	m := e.board.Maze
	for _, x := range e.explorers {
		if x.IsMoving() {
			e.move(x, dt)
		}
		x.DecayEffects(dt, m)
	}

	kept := e.events[:0]
	for _, ev := range e.events {
		ev.Remaining -= dt
		if ev.Remaining > 0 {
			kept = append(kept, ev)
		}
	}
	e.events = kept
}

// move tries the full step, then half and a quarter of it, so explorers can
// close in on a wall instead of stopping a whole step short.
func (e *Engine) move(x *Explorer, dt float64) {
	for _, step := range []float64{dt, dt / 2, dt / 4} {
		nx, ny := x.NextPosition(step)
		if e.board.Maze.IsRectOpen(x.rectAt(nx, ny, x.W, x.H)) {
			x.X, x.Y = nx, ny
			return
		}
	}
}

func cloneAction(a Action) Action {
	if a.Args != nil {
		a.Args = append([]int(nil), a.Args...)
	}
	return a
}
