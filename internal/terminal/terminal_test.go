package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/maze"
	"github.com/pixil98/go-testutil"
)

var testLayout = []string{
	"#######",
	"#     #",
	"# ### #",
	"#     #",
	"#######",
}

func testSnapshot(t *testing.T) *game.Snapshot {
	t.Helper()

	m, err := maze.FromRows(testLayout, 100)
	if err != nil {
		t.Fatalf("building maze: %v", err)
	}
	board := game.NewBoard(m)
	board.PlaceItem(game.NewItem(game.ItemCoffee, 170, 150, 20, 20, 0))
	board.PlaceItem(game.NewItem(game.ItemApple, 550, 350, 20, 20, 0))

	cfg := game.DefaultExplorerConfig()
	return &game.Snapshot{
		Board: board,
		Explorers: []*game.Explorer{
			game.NewExplorer(0, 150, 150, cfg),
			game.NewExplorer(1, 350, 150, cfg),
			game.NewExplorer(2, 550, 350, cfg),
		},
		Winner: game.NoWinner,
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestInput_Actions(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := map[string]struct {
		keys   []*tcell.EventKey
		moving [4]bool
		after  time.Duration
		exp    []game.Action
	}{
		"nothing to do": {},
		"arrow starts moving": {
			keys: []*tcell.EventKey{key(tcell.KeyRight)},
			exp:  []game.Action{game.Turn(0, game.DirRight)},
		},
		"wasd starts moving": {
			keys: []*tcell.EventKey{runeKey('w')},
			exp:  []game.Action{game.Turn(0, game.DirUp)},
		},
		"held key already applied": {
			keys:   []*tcell.EventKey{key(tcell.KeyLeft)},
			moving: [4]bool{game.DirLeft: true},
		},
		"released key stops moving": {
			keys:   []*tcell.EventKey{key(tcell.KeyLeft)},
			moving: [4]bool{game.DirLeft: true},
			after:  time.Second,
			exp:    []game.Action{game.Unturn(0, game.DirLeft)},
		},
		"server drift is corrected": {
			moving: [4]bool{game.DirDown: true},
			exp:    []game.Action{game.Unturn(0, game.DirDown)},
		},
		"digit uses slot on self": {
			keys: []*tcell.EventKey{runeKey('3')},
			exp:  []game.Action{game.Use(0, 0, 2)},
		},
		"zero uses tenth slot": {
			keys: []*tcell.EventKey{runeKey('0')},
			exp:  []game.Action{game.Use(0, 0, 9)},
		},
		"target switch and use in one frame": {
			keys: []*tcell.EventKey{runeKey('t'), runeKey('1')},
			exp:  []game.Action{game.Use(0, 1, 0)},
		},
		"quit": {
			keys: []*tcell.EventKey{runeKey('q'), key(tcell.KeyEscape)},
			exp:  []game.Action{game.Quit(0)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			snap := testSnapshot(t)
			snap.Explorers[0].Moving = tt.moving

			in := NewInput(0)
			for _, k := range tt.keys {
				in.HandleKey(k, now)
			}

			got := in.Actions(snap, now.Add(tt.after))
			testutil.AssertEqual(t, "count", len(got), len(tt.exp))
			for i := range min(len(got), len(tt.exp)) {
				testutil.AssertEqual(t, "kind", got[i].Kind, tt.exp[i].Kind)
				testutil.AssertEqual(t, "target", got[i].Target, tt.exp[i].Target)
				testutil.AssertEqual(t, "value", got[i].Value, tt.exp[i].Value)
			}
		})
	}
}

func TestInput_Pick(t *testing.T) {
	snap := testSnapshot(t)
	in := NewInput(0)

	in.HandleKey(runeKey(' '), time.Now())
	got := in.Actions(snap, time.Now())

	testutil.AssertEqual(t, "count", len(got), 1)
	testutil.AssertEqual(t, "kind", got[0].Kind, game.ActionPick)
	testutil.AssertEqual(t, "item id", got[0].Item, snap.Board.ItemsAt(maze.Cell{Row: 1, Col: 1})[0].ID)
	testutil.AssertEqual(t, "row", got[0].Args[0], 1)
	testutil.AssertEqual(t, "col", got[0].Args[1], 1)

	// One-shot requests are cleared once sent.
	testutil.AssertEqual(t, "sent once", len(in.Actions(snap, time.Now())), 0)

	// Nothing in reach.
	snap.Explorers[0].X, snap.Explorers[0].Y = 550, 150
	in.HandleKey(key(tcell.KeyEnter), time.Now())
	testutil.AssertEqual(t, "out of reach", len(in.Actions(snap, time.Now())), 0)
}

func TestInput_Target(t *testing.T) {
	snap := testSnapshot(t)
	in := NewInput(0)
	testutil.AssertEqual(t, "default target", in.Target(), 0)

	in.HandleKey(runeKey('t'), time.Now())
	in.Actions(snap, time.Now())
	testutil.AssertEqual(t, "nearest other", in.Target(), 1)

	in.HandleKey(runeKey('1'), time.Now())
	got := in.Actions(snap, time.Now())
	testutil.AssertEqual(t, "use target", got[0].Target, 1)
}

type fakeSession struct {
	snap      *game.Snapshot
	submitted []game.Action
}

func (f *fakeSession) Snapshot() (game.Snapshot, error) {
	return *f.snap, nil
}

func (f *fakeSession) Submit(actions ...game.Action) {
	f.submitted = append(f.submitted, actions...)
}

func TestApp_Frame(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("initialising screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	session := &fakeSession{snap: testSnapshot(t)}
	app := NewApp(screen, session, 0)

	now := time.Now()
	app.input.HandleKey(key(tcell.KeyDown), now)
	app.Frame(now)

	testutil.AssertEqual(t, "submitted", len(session.submitted), 1)
	testutil.AssertEqual(t, "action", session.submitted[0].Kind, game.ActionTurn)

	// The player is drawn in the middle of the map pane.
	mapW := 80 - statusWidth - 1
	r, _, _, _ := screen.GetContent(mapW/2, 12)
	testutil.AssertEqual(t, "player glyph", r, '@')

	// The status pane names the player.
	var status []rune
	for x := mapW + 1; x < mapW+9; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		status = append(status, r)
	}
	testutil.AssertEqual(t, "status", string(status), "Player 1")
}
