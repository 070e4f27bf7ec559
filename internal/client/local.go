package client

import (
	"context"
	"time"

	"github.com/pixil98/go-maze/internal/game"
)

// Local plays against an in-process engine with no server. Submitted
// actions are applied at the start of the next tick. Local is a
// driver.Manager.
type Local struct {
	engine *game.Engine
	player int
}

func NewLocal(engine *game.Engine, player int) *Local {
	return &Local{engine: engine, player: player}
}

func (l *Local) ID() int {
	return l.player
}

func (l *Local) Tick(ctx context.Context, dt time.Duration) error {
	l.engine.Update(dt.Seconds())
	return nil
}

func (l *Local) Submit(actions ...game.Action) {
	l.engine.Enqueue(actions...)
}

func (l *Local) Snapshot() (game.Snapshot, error) {
	return l.engine.Snapshot(), nil
}
