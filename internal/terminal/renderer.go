// Package terminal is the text front end: a tcell renderer for snapshots and
// a keyboard input source producing actions.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-maze/internal/display"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/maze"
)

const (
	// Screen characters per maze cell.
	cellCols = 4
	cellRows = 2

	// Multiplier from an explorer's field of view to its sight radius.
	fovScale = 2.5

	statusWidth = 32
)

var (
	styleWall   = tcell.StyleDefault.Background(tcell.ColorGray)
	styleRoad   = tcell.StyleDefault
	styleFog    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleMark   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePlayer = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	}
)

var itemGlyphs = map[game.ItemKind]rune{
	game.ItemLemon:          'l',
	game.ItemWatermelon:     'w',
	game.ItemApple:          'a',
	game.ItemSnowflake:      '*',
	game.ItemCoffee:         'c',
	game.ItemMushroom:       'm',
	game.ItemCrayon:         '/',
	game.ItemCat:            'k',
	game.ItemDog:            'd',
	game.ItemSpice:          's',
	game.ItemCrystalScarlet: '◆',
	game.ItemCrystalGreen:   '◆',
	game.ItemCrystalBlue:    '◆',
	game.ItemCrystalYellow:  '◆',
	game.ItemDestination:    'X',
}

var crystalStyles = map[game.ItemKind]tcell.Style{
	game.ItemCrystalScarlet: tcell.StyleDefault.Foreground(tcell.ColorRed),
	game.ItemCrystalGreen:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	game.ItemCrystalBlue:    tcell.StyleDefault.Foreground(tcell.ColorBlue),
	game.ItemCrystalYellow:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

// Renderer draws snapshots centred on one player with a status pane on the
// right.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	w, h       int
	originX    float64
	originY    float64
	unitX      float64
	unitY      float64
	sight      float64
	eyeX, eyeY float64
}

func (v viewport) toScreen(x, y float64) (int, int) {
	return int(math.Floor((x - v.originX) / v.unitX)), int(math.Floor((y - v.originY) / v.unitY))
}

func (v viewport) toWorld(sx, sy int) (float64, float64) {
	return v.originX + (float64(sx)+0.5)*v.unitX, v.originY + (float64(sy)+0.5)*v.unitY
}

func (v viewport) visible(x, y float64) bool {
	return math.Hypot(x-v.eyeX, y-v.eyeY) <= v.sight
}

// Draw renders snap as seen by player and shows the frame.
func (r *Renderer) Draw(snap *game.Snapshot, player int) {
	r.screen.Clear()
	defer r.screen.Show()

	w, h := r.screen.Size()
	mapW := max(w-statusWidth-1, 1)

	x := snap.Explorer(player)
	if snap.Board == nil || snap.Board.Maze == nil || x == nil {
		r.drawText(0, 0, w, []string{"Waiting for game state..."})
		return
	}
	m := snap.Board.Maze

	v := viewport{
		w:     mapW,
		h:     h,
		unitX: m.Width / cellCols,
		unitY: m.Width / cellRows,
		sight: x.FOV * fovScale,
		eyeX:  x.X,
		eyeY:  x.Y,
	}
	v.originX = x.X - float64(mapW)/2*v.unitX
	v.originY = x.Y - float64(h)/2*v.unitY

	r.drawMaze(m, v)
	r.drawMarks(snap, m, v, player)
	r.drawItems(snap, v)
	r.drawExplorers(snap, v, player)

	r.drawText(mapW+1, 0, statusWidth, display.StatusLines(snap, player, statusWidth))
}

func (r *Renderer) drawMaze(m *maze.Maze, v viewport) {
	for sy := range v.h {
		for sx := range v.w {
			wx, wy := v.toWorld(sx, sy)
			switch {
			case !v.visible(wx, wy):
				r.screen.SetContent(sx, sy, '░', nil, styleFog)
			case m.IsOpen(m.CellAt(wx, wy)):
				r.screen.SetContent(sx, sy, ' ', nil, styleRoad)
			default:
				r.screen.SetContent(sx, sy, ' ', nil, styleWall)
			}
		}
	}
}

func (r *Renderer) drawMarks(snap *game.Snapshot, m *maze.Maze, v viewport, player int) {
	for row := range m.Rows {
		for col := range m.Cols {
			for _, mk := range snap.Board.MarksAt(maze.Cell{Row: row, Col: col}) {
				if !mk.VisibleFor(player) {
					continue
				}
				r.plot(v, mk.X, mk.Y, 'o', styleMark)
			}
		}
	}
}

func (r *Renderer) drawItems(snap *game.Snapshot, v viewport) {
	for _, it := range snap.Board.AllItems() {
		glyph, ok := itemGlyphs[it.Kind]
		if !ok {
			glyph = '?'
		}
		style, ok := crystalStyles[it.Kind]
		if !ok {
			style = styleItem
		}
		r.plot(v, it.X, it.Y, glyph, style)
	}
}

func (r *Renderer) drawExplorers(snap *game.Snapshot, v viewport, player int) {
	for _, o := range snap.Explorers {
		if o.Quit {
			continue
		}
		glyph := '@'
		if o.ID != player {
			glyph = rune('1' + o.ID%9)
		}
		r.plot(v, o.X, o.Y, glyph, stylePlayer[o.ID%len(stylePlayer)])
	}
}

// plot draws glyph at world position x, y when it is on screen and in
// sight.
func (r *Renderer) plot(v viewport, x, y float64, glyph rune, style tcell.Style) {
	if !v.visible(x, y) {
		return
	}
	sx, sy := v.toScreen(x, y)
	if sx < 0 || sy < 0 || sx >= v.w || sy >= v.h {
		return
	}
	r.screen.SetContent(sx, sy, glyph, nil, style)
}

func (r *Renderer) drawText(x, y, width int, lines []string) {
	for i, line := range lines {
		col := 0
		for _, ch := range line {
			if col >= width {
				break
			}
			r.screen.SetContent(x+col, y+i, ch, nil, styleStatus)
			col++
		}
	}
}

// DrawLines fills the screen with plain text, for the lobby and errors.
func (r *Renderer) DrawLines(lines []string) {
	r.screen.Clear()
	w, _ := r.screen.Size()
	var wrapped []string
	for _, l := range lines {
		wrapped = append(wrapped, display.Lines(l, w)...)
	}
	r.drawText(0, 0, w, wrapped)
	r.screen.Show()
}
