package game

import (
	"math"
	"slices"
	"strings"

	"github.com/pixil98/go-maze/internal/maze"
)

// Direction indexes the four movement bits. It doubles as the facing an
// explorer is drawn with.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) Valid() bool {
	return d >= DirLeft && d <= DirDown
}

func (d Direction) horizontal() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

type ExplorerConfig struct {
	Width       float64
	Height      float64
	Speed       float64
	FOV         float64
	PickupScale float64
	BagCapacity int
}

func DefaultExplorerConfig() ExplorerConfig {
	return ExplorerConfig{
		Width:       50,
		Height:      50,
		Speed:       300,
		FOV:         100,
		PickupScale: 1.2,
		BagCapacity: DefaultBagCapacity,
	}
}

// Explorer is a player's avatar. X and Y are the centre in pixels.
type Explorer struct {
	ID          int        `msgpack:"id"`
	X           float64    `msgpack:"x"`
	Y           float64    `msgpack:"y"`
	MaxW        float64    `msgpack:"max_w"`
	MaxH        float64    `msgpack:"max_h"`
	W           float64    `msgpack:"w"`
	H           float64    `msgpack:"h"`
	MaxSpeed    float64    `msgpack:"max_speed"`
	Speed       float64    `msgpack:"speed"`
	MaxFOV      float64    `msgpack:"max_fov"`
	FOV         float64    `msgpack:"fov"`
	PickupScale float64    `msgpack:"pickup_scale"`
	Moving      [4]bool    `msgpack:"moving"`
	Facing      Direction  `msgpack:"facing"`
	Bag         Bag        `msgpack:"bag"`
	Effects     []Effect   `msgpack:"effects"`
	Crystals    []ItemKind `msgpack:"crystals"`
	Quit        bool       `msgpack:"quit"`
}

func NewExplorer(id int, x, y float64, cfg ExplorerConfig) *Explorer {
	return &Explorer{
		ID:          id,
		X:           x,
		Y:           y,
		MaxW:        cfg.Width,
		MaxH:        cfg.Height,
		W:           cfg.Width,
		H:           cfg.Height,
		MaxSpeed:    cfg.Speed,
		Speed:       cfg.Speed,
		MaxFOV:      cfg.FOV,
		FOV:         cfg.FOV,
		PickupScale: cfg.PickupScale,
		Facing:      DirDown,
		Bag:         NewBag(cfg.BagCapacity),
	}
}

// SetDirection turns one movement bit on or off and recomputes facing. With
// a single axis active the explorer faces along it. With both active the
// axis of the bit just changed wins. Standing still keeps the old facing.
func (e *Explorer) SetDirection(d Direction, on bool) {
	if !d.Valid() {
		return
	}
	e.Moving[d] = on

	dx, dy := e.velocity()
	switch {
	case dx == 0 && dy != 0:
		e.Facing = verticalFacing(dy)
	case dx != 0 && dy == 0:
		e.Facing = horizontalFacing(dx)
	case dx != 0 && dy != 0:
		if d.horizontal() {
			e.Facing = horizontalFacing(dx)
		} else {
			e.Facing = verticalFacing(dy)
		}
	}
}

func verticalFacing(dy int) Direction {
	if dy < 0 {
		return DirUp
	}
	return DirDown
}

func horizontalFacing(dx int) Direction {
	if dx < 0 {
		return DirLeft
	}
	return DirRight
}

// StopMoving clears every direction bit.
func (e *Explorer) StopMoving() {
	e.Moving = [4]bool{}
}

func (e *Explorer) velocity() (dx, dy int) {
	return b2i(e.Moving[DirRight]) - b2i(e.Moving[DirLeft]), b2i(e.Moving[DirDown]) - b2i(e.Moving[DirUp])
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsMoving reports whether the direction bits produce any displacement.
func (e *Explorer) IsMoving() bool {
	dx, dy := e.velocity()
	return dx != 0 || dy != 0
}

// NextPosition is where the explorer's centre would be after dt seconds.
// Diagonal movement is scaled down so speed is the same in every direction.
func (e *Explorer) NextPosition(dt float64) (float64, float64) {
	dx, dy := e.velocity()
	step := e.Speed * dt
	if dx != 0 && dy != 0 {
		step /= math.Sqrt2
	}
	return e.X + float64(dx)*step, e.Y + float64(dy)*step
}

// Rect is the explorer's bounding box.
func (e *Explorer) Rect() maze.Rect {
	return e.rectAt(e.X, e.Y, e.W, e.H)
}

func (e *Explorer) rectAt(x, y, w, h float64) maze.Rect {
	return maze.Rect{X: x - w/2, Y: y - h/2, W: w, H: h}
}

// PickupRange is the radius within which the explorer can reach an item.
func (e *Explorer) PickupRange() float64 {
	return e.PickupScale * min(e.W, e.H) / 2
}

// CanReach reports whether a point is within pickup range, boundary
// included.
func (e *Explorer) CanReach(x, y float64) bool {
	dx, dy := x-e.X, y-e.Y
	r := e.PickupRange()
	return dx*dx+dy*dy <= r*r
}

func (e *Explorer) HasCrystal(kind ItemKind) bool {
	return slices.Contains(e.Crystals, kind)
}

// AddCrystal records a crystal kind. It reports false if the kind is
// already held.
func (e *Explorer) AddCrystal(kind ItemKind) bool {
	if e.HasCrystal(kind) {
		return false
	}
	e.Crystals = append(e.Crystals, kind)
	return true
}

// Resize changes the explorer's size. Shrinking always succeeds and keeps
// the centre. Growing tries the centred box, then boxes anchored to each
// old edge, then to each old corner, and takes the first that fits in open
// cells. If none fits the size is left alone and Resize reports false.
func (e *Explorer) Resize(w, h float64, m *maze.Maze) bool {
	w0, h0 := e.W, e.H
	if w <= w0 && h <= h0 {
		e.W, e.H = w, h
		return true
	}

	offsets := [][2]float64{
		{-w / 2, -h / 2},
		{-w / 2, h0/2 - h}, {-w / 2, -h0 / 2}, {-w0 / 2, -h / 2}, {w0/2 - w, -h / 2},
		{w0/2 - w, h0/2 - h}, {w0/2 - w, -h0 / 2}, {-w0 / 2, h0/2 - h}, {-w0 / 2, -h0 / 2},
	}
	for _, off := range offsets {
		r := maze.Rect{X: e.X + off[0], Y: e.Y + off[1], W: w, H: h}
		if m == nil || m.IsRectOpen(r) {
			e.W, e.H = w, h
			e.X, e.Y = r.X+w/2, r.Y+h/2
			return true
		}
	}
	return false
}

// ApplyEffect starts kind or, if it is already running, adds another full
// duration to it. The same effect never runs twice at once.
func (e *Explorer) ApplyEffect(kind EffectKind, m *maze.Maze) {
	spec, ok := effectTable[kind]
	if !ok {
		return
	}

	i := slices.IndexFunc(e.Effects, func(fx Effect) bool { return fx.Kind == kind })
	fx := Effect{Kind: kind, Remaining: spec.duration}
	if i >= 0 {
		fx.Remaining += e.Effects[i].Remaining
		e.Effects = slices.Delete(e.Effects, i, i+1)
	}
	e.Effects = append(e.Effects, fx)
	e.refresh(m)
}

// DecayEffects counts every effect down by dt and reverses the ones that
// run out. A size change that was blocked by walls is retried on every
// call until it fits. It returns the kinds that expired.
func (e *Explorer) DecayEffects(dt float64, m *maze.Maze) []EffectKind {
	var expired []EffectKind
	kept := e.Effects[:0]
	for _, fx := range e.Effects {
		fx.Remaining -= dt
		if fx.Remaining <= 0 {
			expired = append(expired, fx.Kind)
			continue
		}
		kept = append(kept, fx)
	}
	e.Effects = kept

	if len(expired) > 0 {
		e.refresh(m)
	} else if w, h := e.targetSize(); w != e.W || h != e.H {
		e.Resize(w, h, m)
	}
	return expired
}

// ClearEffects ends every effect at once.
func (e *Explorer) ClearEffects(m *maze.Maze) {
	e.Effects = nil
	e.refresh(m)
}

func (e *Explorer) HasEffect(kind EffectKind) bool {
	return slices.ContainsFunc(e.Effects, func(fx Effect) bool { return fx.Kind == kind })
}

// refresh derives speed, size and fov from the active effects. For each
// attribute the most recently applied effect touching it decides the
// multiplier; with none the attribute is back at its maximum.
func (e *Explorer) refresh(m *maze.Maze) {
	speed, size, fov := e.multipliers()

	e.Speed = e.MaxSpeed * speed
	e.FOV = e.MaxFOV * fov

	w, h := e.MaxW*size, e.MaxH*size
	if w != e.W || h != e.H {
		e.Resize(w, h, m)
	}
}

func (e *Explorer) multipliers() (speed, size, fov float64) {
	speed, size, fov = 1, 1, 1
	for _, fx := range e.Effects {
		spec := effectTable[fx.Kind]
		if spec.speed != 0 {
			speed = spec.speed
		}
		if spec.size != 0 {
			size = spec.size
		}
		if spec.fov != 0 {
			fov = spec.fov
		}
	}
	return speed, size, fov
}

// targetSize is the size the active effects call for.
func (e *Explorer) targetSize() (float64, float64) {
	_, size, _ := e.multipliers()
	return e.MaxW * size, e.MaxH * size
}

func (e *Explorer) Materials() Materials {
	m := Materials{Audios: []string{"footstep"}}
	for d := DirLeft; d <= DirDown; d++ {
		m.Images = append(m.Images, "explorer"+capitalize(d.String()))
	}
	return m
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (e *Explorer) Clone() *Explorer {
	c := *e
	c.Bag = e.Bag.clone()
	c.Effects = slices.Clone(e.Effects)
	c.Crystals = slices.Clone(e.Crystals)
	return &c
}
