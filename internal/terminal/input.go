package terminal

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-maze/internal/game"
)

// DefaultHoldWindow is how long a direction counts as held after its last
// key event. Terminals report key repeats, never key releases.
const DefaultHoldWindow = 180 * time.Millisecond

var directionKeys = map[tcell.Key]game.Direction{
	tcell.KeyLeft:  game.DirLeft,
	tcell.KeyRight: game.DirRight,
	tcell.KeyUp:    game.DirUp,
	tcell.KeyDown:  game.DirDown,
}

var directionRunes = map[rune]game.Direction{
	'a': game.DirLeft,
	'd': game.DirRight,
	'w': game.DirUp,
	's': game.DirDown,
}

// Input turns key events into actions for one player. Movement is sent as
// turn and unturn actions whenever the server's view of the explorer
// disagrees with the keys currently held.
type Input struct {
	player int
	hold   time.Duration

	pressed [4]time.Time
	target  int
	pick    bool
	quit    bool
	uses    []int
	pending []game.Action
}

type InputOpt func(*Input)

func WithHoldWindow(d time.Duration) InputOpt {
	return func(in *Input) {
		if d > 0 {
			in.hold = d
		}
	}
}

func NewInput(player int, opts ...InputOpt) *Input {
	in := &Input{
		player: player,
		hold:   DefaultHoldWindow,
		target: player,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Target is the player the next item use is aimed at.
func (in *Input) Target() int {
	return in.target
}

// Quit reports whether the player asked to leave.
func (in *Input) Quit() bool {
	return in.quit
}

// HandleKey records one key event.
func (in *Input) HandleKey(ev *tcell.EventKey, now time.Time) {
	if d, ok := directionKeys[ev.Key()]; ok {
		in.pressed[d] = now
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.requestQuit()
		return
	case tcell.KeyEnter:
		in.pick = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if d, ok := directionRunes[r]; ok {
		in.pressed[d] = now
		return
	}

	switch {
	case r == 'q':
		in.requestQuit()
	case r == ' ' || r == 'e':
		in.pick = true
	case r == 't':
		in.target = -1
	case r >= '1' && r <= '9':
		in.uses = append(in.uses, int(r-'1'))
	case r == '0':
		in.uses = append(in.uses, 9)
	}
}

func (in *Input) requestQuit() {
	if !in.quit {
		in.quit = true
		in.pending = append(in.pending, game.Quit(in.player))
	}
}

// Held reports whether d is held at now.
func (in *Input) Held(d game.Direction, now time.Time) bool {
	t := in.pressed[d]
	return !t.IsZero() && now.Sub(t) < in.hold
}

// Actions returns the batch to send given the latest snapshot, and clears
// any one-shot requests. It returns nil when nothing needs sending.
func (in *Input) Actions(snap *game.Snapshot, now time.Time) []game.Action {
	actions := in.pending
	uses := in.uses
	in.pending, in.uses = nil, nil

	x := snap.Explorer(in.player)
	if x == nil {
		in.pick = false
		return actions
	}

	// Uses are aimed after the target is resolved.
	if in.target < 0 {
		in.target = nearestOther(snap, x)
	}
	for _, slot := range uses {
		actions = append(actions, game.Use(in.player, in.target, slot))
	}

	for d := range game.Direction(len(x.Moving)) {
		held := in.Held(d, now)
		if held == x.Moving[d] {
			continue
		}
		if held {
			actions = append(actions, game.Turn(in.player, d))
		} else {
			actions = append(actions, game.Unturn(in.player, d))
		}
	}

	if in.pick {
		in.pick = false
		if a, ok := pickNearest(snap, x); ok {
			actions = append(actions, a)
		}
	}

	return actions
}

// nearestOther is the closest explorer other than x, or x itself when
// playing alone.
func nearestOther(snap *game.Snapshot, x *game.Explorer) int {
	best, bestDist := x.ID, math.Inf(1)
	for _, o := range snap.Explorers {
		if o.ID == x.ID || o.Quit {
			continue
		}
		if d := math.Hypot(o.X-x.X, o.Y-x.Y); d < bestDist {
			best, bestDist = o.ID, d
		}
	}
	return best
}

// pickNearest builds a pick for the closest item x can reach.
func pickNearest(snap *game.Snapshot, x *game.Explorer) (game.Action, bool) {
	if snap.Board == nil || snap.Board.Maze == nil {
		return game.Action{}, false
	}

	m := snap.Board.Maze
	here := m.CellAt(x.X, x.Y)

	var (
		best     *game.Item
		bestDist = math.Inf(1)
		row, col int
	)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			c := here
			c.Row += dr
			c.Col += dc
			for _, it := range snap.Board.ItemsAt(c) {
				if !x.CanReach(it.X, it.Y) {
					continue
				}
				if d := math.Hypot(it.X-x.X, it.Y-x.Y); d < bestDist {
					best, bestDist, row, col = it, d, c.Row, c.Col
				}
			}
		}
	}

	if best == nil {
		return game.Action{}, false
	}
	return game.Pick(x.ID, best, row, col), true
}
