package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-maze/internal/display"
	"github.com/pixil98/go-maze/internal/game"
)

const DefaultFrameRate = 30

// Session is where the front end gets state and sends actions: a network
// client or a local engine.
type Session interface {
	Snapshot() (game.Snapshot, error)
	Submit(actions ...game.Action)
}

// Lobby reports what to show before the first snapshot arrives.
type Lobby interface {
	Roster() ([]bool, error)
}

// App runs the draw and input loop for one player.
type App struct {
	screen   tcell.Screen
	session  Session
	player   int
	input    *Input
	renderer *Renderer
	frame    time.Duration
}

type AppOpt func(*App)

func WithFrameRate(hz int) AppOpt {
	return func(a *App) {
		if hz > 0 {
			a.frame = time.Second / time.Duration(hz)
		}
	}
}

func WithInputOpts(opts ...InputOpt) AppOpt {
	return func(a *App) {
		a.input = NewInput(a.player, opts...)
	}
}

func NewApp(screen tcell.Screen, session Session, player int, opts ...AppOpt) *App {
	a := &App{
		screen:   screen,
		session:  session,
		player:   player,
		input:    NewInput(player),
		renderer: NewRenderer(screen),
		frame:    time.Second / DefaultFrameRate,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run draws frames and forwards input until ctx ends or the player quits.
// The caller owns the screen's Init and Fini.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.input.HandleKey(ev, time.Now())
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case now := <-ticker.C:
			a.Frame(now)
			if a.input.Quit() {
				return nil
			}
		}
	}
}

// Frame draws the latest state and submits any actions it calls for.
func (a *App) Frame(now time.Time) {
	snap, err := a.session.Snapshot()
	if err != nil {
		a.drawLobby()
		return
	}

	a.renderer.Draw(&snap, a.player)

	if actions := a.input.Actions(&snap, now); len(actions) > 0 {
		a.session.Submit(actions...)
	}
}

func (a *App) drawLobby() {
	lines := []string{fmt.Sprintf("You are %s. Waiting for the game to start...", display.PlayerName(a.player))}

	lobby, ok := a.session.(Lobby)
	if ok {
		// No roster yet while still matching.
		roster, _ := lobby.Roster()
		for id, ready := range roster {
			state := "not ready"
			if ready {
				state = "ready"
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", display.PlayerName(id), state))
		}
	}
	lines = append(lines, "", "Arrows or WASD move, space picks up, 1-0 use, t targets, q quits.")

	a.renderer.DrawLines(lines)
}
