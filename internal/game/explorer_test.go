package game

import (
	"math"
	"slices"
	"testing"

	"github.com/pixil98/go-maze/internal/maze"
	"github.com/pixil98/go-testutil"
)

var corridorLayout = []string{
	"#####",
	"#...#",
	"#####",
}

func newTestExplorer() *Explorer {
	return NewExplorer(0, 150, 150, DefaultExplorerConfig())
}

func TestExplorer_SetDirection(t *testing.T) {
	type toggle struct {
		dir Direction
		on  bool
	}

	tests := map[string]struct {
		toggles   []toggle
		expFacing Direction
	}{
		"vertical only": {
			toggles:   []toggle{{DirUp, true}},
			expFacing: DirUp,
		},
		"horizontal only": {
			toggles:   []toggle{{DirLeft, true}},
			expFacing: DirLeft,
		},
		"horizontal added to vertical": {
			toggles:   []toggle{{DirUp, true}, {DirRight, true}},
			expFacing: DirRight,
		},
		"vertical added to horizontal": {
			toggles:   []toggle{{DirRight, true}, {DirDown, true}},
			expFacing: DirDown,
		},
		"releasing one axis faces the other": {
			toggles:   []toggle{{DirRight, true}, {DirDown, true}, {DirDown, false}},
			expFacing: DirRight,
		},
		"stopping keeps facing": {
			toggles:   []toggle{{DirLeft, true}, {DirLeft, false}},
			expFacing: DirLeft,
		},
		"opposite keys cancel": {
			toggles:   []toggle{{DirUp, true}, {DirLeft, true}, {DirRight, true}},
			expFacing: DirUp,
		},
		"invalid direction ignored": {
			toggles:   []toggle{{Direction(9), true}},
			expFacing: DirDown,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x := newTestExplorer()
			for _, tg := range tt.toggles {
				x.SetDirection(tg.dir, tg.on)
			}
			testutil.AssertEqual(t, "facing", x.Facing, tt.expFacing)
		})
	}
}

func TestExplorer_NextPosition(t *testing.T) {
	tests := map[string]struct {
		dirs []Direction
		expX float64
		expY float64
	}{
		"still":      {expX: 150, expY: 150},
		"right":      {dirs: []Direction{DirRight}, expX: 180, expY: 150},
		"up":         {dirs: []Direction{DirUp}, expX: 150, expY: 120},
		"down right": {dirs: []Direction{DirDown, DirRight}, expX: 150 + 30/math.Sqrt2, expY: 150 + 30/math.Sqrt2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x := newTestExplorer()
			for _, d := range tt.dirs {
				x.SetDirection(d, true)
			}
			nx, ny := x.NextPosition(0.1)
			if math.Abs(nx-tt.expX) > 1e-9 || math.Abs(ny-tt.expY) > 1e-9 {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.expX, tt.expY, nx, ny)
			}
		})
	}
}

func TestExplorer_DiagonalSpeedMatchesStraight(t *testing.T) {
	x := newTestExplorer()
	x.SetDirection(DirUp, true)
	x.SetDirection(DirLeft, true)

	nx, ny := x.NextPosition(1)
	dist := math.Hypot(nx-x.X, ny-x.Y)
	if math.Abs(dist-x.Speed) > 1e-9 {
		t.Errorf("diagonal distance %v, expected %v", dist, x.Speed)
	}
}

func TestExplorer_ApplyEffectExtends(t *testing.T) {
	m, err := maze.FromRows(corridorLayout, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x := newTestExplorer()

	x.ApplyEffect(EffectFrozen, m)
	x.ApplyEffect(EffectFrozen, m)

	testutil.AssertEqual(t, "effects", len(x.Effects), 1)
	testutil.AssertEqual(t, "remaining", x.Effects[0].Remaining, 9.0)
	testutil.AssertEqual(t, "speed", x.Speed, 300*0.2)
}

func TestExplorer_DecayEffects(t *testing.T) {
	m, err := maze.FromRows(corridorLayout, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x := newTestExplorer()

	x.ApplyEffect(EffectFaster, m)
	x.ApplyEffect(EffectFrozen, m)
	testutil.AssertEqual(t, "frozen wins", x.Speed, 300*0.2)

	expired := x.DecayEffects(5, m)
	testutil.AssertEqual(t, "expired", len(expired), 1)
	testutil.AssertEqual(t, "expired kind", expired[0], EffectFrozen)
	testutil.AssertEqual(t, "still faster", x.Speed, 300*1.45)

	x.DecayEffects(1, m)
	testutil.AssertEqual(t, "no effects", len(x.Effects), 0)
	testutil.AssertEqual(t, "speed restored", x.Speed, 300.0)
}

func TestExplorer_ClearEffects(t *testing.T) {
	m, err := maze.FromRows(corridorLayout, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x := newTestExplorer()

	x.ApplyEffect(EffectBlinded, m)
	x.ApplyEffect(EffectSmaller, m)
	testutil.AssertEqual(t, "fov", x.FOV, 25.0)
	testutil.AssertEqual(t, "width", x.W, 25.0)

	x.ClearEffects(m)
	testutil.AssertEqual(t, "fov", x.FOV, 100.0)
	testutil.AssertEqual(t, "width", x.W, 50.0)
	testutil.AssertEqual(t, "height", x.H, 50.0)
}

func TestExplorer_Resize(t *testing.T) {
	m, err := maze.FromRows(corridorLayout, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		y     float64
		size  float64
		expOk bool
		expY  float64
		expW  float64
	}{
		"shrink keeps centre":        {y: 130, size: 25, expOk: true, expY: 130, expW: 25},
		"grow centred":               {y: 150, size: 75, expOk: true, expY: 150, expW: 75},
		"grow away from top wall":    {y: 130, size: 75, expOk: true, expY: 142.5, expW: 75},
		"grow away from bottom wall": {y: 170, size: 75, expOk: true, expY: 157.5, expW: 75},
		"too big for the corridor":   {y: 150, size: 120, expOk: false, expY: 150, expW: 50},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x := NewExplorer(0, 150, tt.y, DefaultExplorerConfig())

			ok := x.Resize(tt.size, tt.size, m)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "y", x.Y, tt.expY)
			testutil.AssertEqual(t, "width", x.W, tt.expW)
			if !m.IsRectOpen(x.Rect()) {
				t.Errorf("explorer clips into a wall at %+v", x.Rect())
			}
		})
	}
}

func TestExplorer_CanReach(t *testing.T) {
	x := newTestExplorer()

	testutil.AssertEqual(t, "range", x.PickupRange(), 30.0)
	testutil.AssertEqual(t, "on boundary", x.CanReach(180, 150), true)
	testutil.AssertEqual(t, "past boundary", x.CanReach(181, 150), false)
	testutil.AssertEqual(t, "diagonal inside", x.CanReach(170, 170), true)
}

func TestBag(t *testing.T) {
	b := NewBag(2)
	first := NewItem(ItemApple, 0, 0, 20, 20, 0)
	second := NewItem(ItemLemon, 0, 0, 20, 20, 0)

	testutil.AssertEqual(t, "add first", b.Add(first), true)
	testutil.AssertEqual(t, "add second", b.Add(second), true)
	testutil.AssertEqual(t, "add to full bag", b.Add(NewItem(ItemCoffee, 0, 0, 20, 20, 0)), false)

	testutil.AssertEqual(t, "swap", b.Swap(0, 1), true)
	testutil.AssertEqual(t, "slot 0 after swap", b.Get(0), second)

	testutil.AssertEqual(t, "remove", b.Remove(0), second)
	testutil.AssertEqual(t, "count", b.Count(), 1)

	b.Expand(3)
	testutil.AssertEqual(t, "capacity", b.Capacity(), 5)
	testutil.AssertEqual(t, "out of range", b.Get(9) == nil, true)
}

func TestDefaultSpawnTable_Sizes(t *testing.T) {
	tests := map[ItemKind]struct {
		w, h float64
	}{
		ItemWatermelon:     {w: 50, h: 40},
		ItemCrayon:         {w: 30, h: 30},
		ItemCrystalScarlet: {w: 30, h: 30},
		ItemCrystalGreen:   {w: 20, h: 20},
		ItemCrystalBlue:    {w: 20, h: 20},
		ItemDestination:    {w: 50, h: 50},
	}

	table := DefaultSpawnTable()
	for kind, tt := range tests {
		t.Run(kind.String(), func(t *testing.T) {
			i := slices.IndexFunc(table, func(s SpawnSpec) bool { return s.Kind == kind })
			if i < 0 {
				t.Fatalf("%s missing from spawn table", kind)
			}
			testutil.AssertEqual(t, "width", table[i].Width, tt.w)
			testutil.AssertEqual(t, "height", table[i].Height, tt.h)
		})
	}
}

func TestExplorer_GrowsBackOnceThereIsRoom(t *testing.T) {
	m, err := maze.FromRows([]string{
		"#######",
		"#.....#",
		"#...###",
		"#...###",
		"#######",
	}, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The corridor at the right is narrower than a full size explorer.
	x := NewExplorer(0, 180, 60, DefaultExplorerConfig())
	x.ApplyEffect(EffectSmaller, m)
	testutil.AssertEqual(t, "shrunk", x.W, 25.0)

	expired := x.DecayEffects(6.5, m)
	testutil.AssertEqual(t, "expired", len(expired), 1)
	testutil.AssertEqual(t, "blocked width", x.W, 25.0)

	x.DecayEffects(0.1, m)
	testutil.AssertEqual(t, "still blocked", x.H, 25.0)

	x.X, x.Y = 80, 80
	expired = x.DecayEffects(0.1, m)
	testutil.AssertEqual(t, "nothing expired", len(expired), 0)
	testutil.AssertEqual(t, "width", x.W, 50.0)
	testutil.AssertEqual(t, "height", x.H, 50.0)
	if !m.IsRectOpen(x.Rect()) {
		t.Errorf("explorer clips into a wall at %+v", x.Rect())
	}
}
