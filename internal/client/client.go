// Package client connects a player to a game server and follows it through
// one game: handshake, ready-up, then streaming actions until game over.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/listener"
	"github.com/pixil98/go-maze/internal/shared"
	"github.com/pixil98/go-maze/internal/wire"
)

const DefaultReadyInterval = 2 * time.Second

var (
	ErrClosed     = errors.New("connection closed")
	ErrNotStarted = errors.New("client not connected")
	ErrNoState    = errors.New("no state of that kind received")
)

// Client is one player's connection. The receiver goroutine keeps the last
// server message; Play sends whatever was most recently submitted.
type Client struct {
	protocol      listener.Protocol
	addr          string
	readyInterval time.Duration
	onUpdate      func()

	conn listener.Conn
	wmu  sync.Mutex

	id      *shared.Value[int]
	state   *shared.Value[State]
	latest  *shared.Value[wire.Envelope]
	outbox  *shared.Mailbox[[]game.Action]
	updates chan struct{}

	done    chan struct{}
	recvErr *shared.Value[error]
}

func NewClient(protocol listener.Protocol, addr string, opts ...ClientOpt) *Client {
	c := &Client{
		protocol:      protocol,
		addr:          addr,
		readyInterval: DefaultReadyInterval,
		id:            shared.NewValue(-1),
		state:         shared.NewValue(StateInitiated),
		latest:        shared.NewValue(wire.Envelope{}),
		outbox:        shared.NewMailbox[[]game.Action](),
		updates:       make(chan struct{}, 1),
		done:          make(chan struct{}),
		recvErr:       shared.NewValue[error](nil),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ID is the player index the server assigned, or -1 before the handshake.
func (c *Client) ID() int {
	return c.id.Load()
}

func (c *Client) State() State {
	return c.state.Load()
}

// Run plays one game: Connect, Prepare, then Play.
func (c *Client) Run(ctx context.Context) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	if err := c.Prepare(ctx); err != nil {
		return err
	}
	return c.Play(ctx)
}

// Connect dials the server and waits for the handshake carrying our id.
func (c *Client) Connect(ctx context.Context) error {
	c.state.Store(StateConnecting)

	conn, err := listener.Dial(ctx, c.protocol, c.addr)
	if err != nil {
		return err
	}
	c.conn = conn
	go c.receive(ctx)

	_, err = c.waitFor(ctx, func(wire.Envelope) bool { return c.ID() >= 0 })
	if err != nil {
		return fmt.Errorf("waiting for handshake: %w", err)
	}
	slog.InfoContext(ctx, "connected", "server", c.addr, "player", c.ID())

	return nil
}

// Prepare reports READY until the server starts the game.
func (c *Client) Prepare(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotStarted
	}
	c.state.Store(StatePreparing)

	for {
		if err := c.send(wire.TagReady, nil); err != nil {
			return err
		}

		waitCtx, cancel := context.WithTimeout(ctx, c.readyInterval)
		_, err := c.waitFor(waitCtx, func(e wire.Envelope) bool { return e.Tag == wire.TagGaming })
		cancel()

		switch {
		case err == nil:
			c.state.Store(StatePlaying)
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case !errors.Is(err, context.DeadlineExceeded):
			return err
		}
	}
}

// Play sends submitted actions until the server reports the game is over.
func (c *Client) Play(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotStarted
	}
	c.state.Store(StatePlaying)

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ended := make(chan error, 1)
	go func() {
		_, err := c.waitFor(playCtx, func(e wire.Envelope) bool {
			return e.Tag == wire.TagGameOver || e.Tag == wire.TagPreparing
		})
		ended <- err
		cancel()
	}()

	for {
		actions, err := c.outbox.Wait(playCtx)
		if err != nil {
			break
		}
		if err := c.send(wire.TagGaming, actions); err != nil {
			cancel()
			<-ended
			return err
		}
	}

	if err := <-ended; err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	c.state.Store(StateGameOver)
	slog.InfoContext(ctx, "game over", "player", c.ID())
	return nil
}

// Submit hands a batch of actions to Play. A batch that has not been sent
// yet is replaced.
func (c *Client) Submit(actions ...game.Action) {
	c.outbox.Put(actions)
}

// Latest is the last message received from the server.
func (c *Client) Latest() (wire.Envelope, bool) {
	env := c.latest.Load()
	return env, env.Tag != ""
}

// Snapshot decodes the last game state received.
func (c *Client) Snapshot() (game.Snapshot, error) {
	var snap game.Snapshot

	env, _ := c.Latest()
	if env.Tag != wire.TagGaming && env.Tag != wire.TagGameOver {
		return snap, ErrNoState
	}
	if err := env.Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// Roster decodes the last ready roster received.
func (c *Client) Roster() ([]bool, error) {
	env, _ := c.Latest()
	if env.Tag != wire.TagPreparing {
		return nil, ErrNoState
	}

	var roster []bool
	if err := env.Decode(&roster); err != nil {
		return nil, fmt.Errorf("decoding roster: %w", err)
	}
	return roster, nil
}

// Done is closed when the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close drops the connection and waits for the receiver to stop.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) receive(ctx context.Context) {
	defer close(c.done)

	for {
		env, err := wire.Receive(c.conn)
		if err != nil {
			c.recvErr.Store(err)
			slog.DebugContext(ctx, "receiver stopped", "error", err)
			return
		}

		if env.Tag == wire.TagMatching && c.ID() < 0 {
			var id int
			if err := env.Decode(&id); err != nil {
				c.recvErr.Store(fmt.Errorf("decoding player id: %w", err))
				return
			}
			c.id.Store(id)
		}

		c.latest.Store(env)
		select {
		case c.updates <- struct{}{}:
		default:
		}
		if c.onUpdate != nil {
			c.onUpdate()
		}
	}
}

// waitFor blocks until match accepts the latest message. Only one
// goroutine may wait at a time.
func (c *Client) waitFor(ctx context.Context, match func(wire.Envelope) bool) (wire.Envelope, error) {
	for {
		if env, ok := c.Latest(); ok && match(env) {
			return env, nil
		}

		select {
		case <-ctx.Done():
			return wire.Envelope{}, ctx.Err()
		case <-c.done:
			if env, ok := c.Latest(); ok && match(env) {
				return env, nil
			}
			if err := c.recvErr.Load(); err != nil {
				return wire.Envelope{}, fmt.Errorf("%w: %w", ErrClosed, err)
			}
			return wire.Envelope{}, ErrClosed
		case <-c.updates:
		}
	}
}

func (c *Client) send(tag wire.Tag, body any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := wire.Send(c.conn, tag, body); err != nil {
		return fmt.Errorf("sending %s: %w", tag, err)
	}
	return nil
}
