package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/listener"
	"github.com/pixil98/go-maze/internal/messaging"
	"github.com/pixil98/go-maze/internal/shared"
	"github.com/pixil98/go-maze/internal/wire"
)

const (
	DefaultSettleDelay  = 2 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Engine is the authoritative game the server drives.
type Engine interface {
	Reset() error
	Update(dt float64)
	Snapshot() game.Snapshot
	ApplyActions(player int, actions []game.Action) bool
	Mode() game.Mode
	Players() int
}

// EventPublisher receives lifecycle events.
type EventPublisher interface {
	PublishEvent(ev messaging.Event) error
}

// Server runs matches for a fixed number of players. It is a worker (Start)
// and a driver.Manager (Tick): Start moves through the lifecycle states while
// Tick advances the engine and broadcasts state to every session.
type Server struct {
	listeners []listener.Listener
	engine    Engine
	players   int

	settleDelay  time.Duration
	pollInterval time.Duration
	publisher    EventPublisher
	id           string
	gameID       *shared.Value[string]

	state    *shared.Value[State]
	sessions *shared.List[*session]
	ready    *shared.List[bool]

	// admitMu serializes id assignment against the MATCHING to PREPARING
	// transition.
	admitMu sync.Mutex
	wg      sync.WaitGroup
}

func NewServer(listeners []listener.Listener, engine Engine, opts ...ServerOpt) (*Server, error) {
	if len(listeners) == 0 {
		return nil, fmt.Errorf("at least one listener is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if engine.Players() < 1 {
		return nil, fmt.Errorf("engine must have at least one player")
	}

	s := &Server{
		listeners:    listeners,
		engine:       engine,
		players:      engine.Players(),
		settleDelay:  DefaultSettleDelay,
		pollInterval: DefaultPollInterval,
		id:           uuid.NewString(),
		gameID:       shared.NewValue(""),
		state:        shared.NewValue(StateInitiated),
		sessions:     shared.NewList[*session](),
		ready:        shared.NewList[bool](),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Server) ID() string {
	return s.id
}

func (s *Server) State() State {
	return s.state.Load()
}

// Connected is the number of registered sessions.
func (s *Server) Connected() int {
	return s.sessions.Len()
}

// Start accepts connections and runs matches until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.setState(ctx, StateMatching)

	for _, l := range s.listeners {
		slog.InfoContext(ctx, "accepting players", "protocol", l.Protocol(), "addr", l.Addr())
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.acceptLoop(ctx, l)
		}()
	}

	err := s.run(ctx)

	for _, l := range s.listeners {
		if cerr := l.Close(); cerr != nil {
			slog.WarnContext(ctx, "closing listener", "addr", l.Addr(), "error", cerr)
		}
	}
	for _, sess := range s.sessions.Snapshot() {
		sess.close()
	}
	s.wg.Wait()
	s.setState(ctx, StateClosed)

	return err
}

func (s *Server) run(ctx context.Context) error {
	for {
		var err error
		switch s.State() {
		case StateMatching:
			err = s.match(ctx)
		case StatePreparing:
			err = s.prepare(ctx)
		case StatePlaying:
			err = s.play(ctx)
		default:
			return fmt.Errorf("unexpected state %s", s.State())
		}

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// match waits for a full table, settles, and moves on to PREPARING if the
// table is still full.
func (s *Server) match(ctx context.Context) error {
	if err := s.pollUntil(ctx, func() bool { return s.sessions.Len() >= s.players }); err != nil {
		return err
	}
	if err := sleep(ctx, s.settleDelay); err != nil {
		return err
	}

	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	if s.sessions.Len() >= s.players {
		s.enterPreparing(ctx)
	}
	return nil
}

// prepare waits for every player to report READY, then starts a new game.
func (s *Server) prepare(ctx context.Context) error {
	lost := false
	err := s.pollUntil(ctx, func() bool {
		if s.sessions.Len() < s.players {
			lost = true
			return true
		}
		return s.ready.All(isReady)
	})
	if err != nil {
		return err
	}
	if lost {
		slog.InfoContext(ctx, "player lost while preparing")
		s.setState(ctx, StateMatching)
		return nil
	}

	if err := sleep(ctx, s.settleDelay); err != nil {
		return err
	}

	if err := s.engine.Reset(); err != nil {
		return fmt.Errorf("resetting engine: %w", err)
	}
	s.gameID.Store(uuid.NewString())
	s.setState(ctx, StatePlaying)
	return nil
}

// play waits for the engine to finish the game or for every player to leave.
func (s *Server) play(ctx context.Context) error {
	err := s.pollUntil(ctx, func() bool {
		return s.engine.Mode() == game.ModeGameOver || s.sessions.Len() == 0
	})
	if err != nil {
		return err
	}

	if s.sessions.Len() == 0 {
		slog.InfoContext(ctx, "every player left the game")
		s.setState(ctx, StateMatching)
		return nil
	}

	snap := s.engine.Snapshot()
	slog.InfoContext(ctx, "game over", "game", s.gameID.Load(), "winner", snap.Winner, "ticks", snap.Tick)
	s.publish(ctx, messaging.Event{Kind: messaging.EventGameOver, Player: snap.Winner, Winner: snap.Winner})

	// Tick keeps broadcasting GAMEOVER while we hold here.
	if err := sleep(ctx, s.settleDelay); err != nil {
		return err
	}

	s.admitMu.Lock()
	defer s.admitMu.Unlock()
	s.enterPreparing(ctx)
	return nil
}

func (s *Server) enterPreparing(ctx context.Context) {
	s.ready.Fill(s.players, false)
	s.setState(ctx, StatePreparing)
}

func (s *Server) setState(ctx context.Context, st State) {
	if old := s.state.Swap(st); old == st {
		return
	}
	slog.InfoContext(ctx, "server state", "state", st)
	s.publish(ctx, messaging.Event{Kind: messaging.EventState, State: st.String()})
}

// Tick advances the game by one step and sends every session the message
// for the current state.
func (s *Server) Tick(ctx context.Context, dt time.Duration) error {
	switch s.State() {
	case StateMatching:
		for _, sess := range s.sessions.Snapshot() {
			payload, err := encode(wire.TagMatching, sess.id)
			if err != nil {
				return err
			}
			s.deliver(ctx, sess, payload)
		}

	case StatePreparing:
		payload, err := encode(wire.TagPreparing, s.ready.Snapshot())
		if err != nil {
			return err
		}
		s.broadcast(ctx, payload)

	case StatePlaying:
		s.engine.Update(dt.Seconds())
		snap := s.engine.Snapshot()

		tag := wire.TagGaming
		if snap.Mode == game.ModeGameOver {
			tag = wire.TagGameOver
		}
		payload, err := encode(tag, snap)
		if err != nil {
			return err
		}
		s.broadcast(ctx, payload)
	}

	return nil
}

func (s *Server) broadcast(ctx context.Context, payload []byte) {
	for _, sess := range s.sessions.Snapshot() {
		s.deliver(ctx, sess, payload)
	}
}

func (s *Server) deliver(ctx context.Context, sess *session, payload []byte) {
	if err := sess.send(payload); err != nil {
		s.drop(ctx, sess, fmt.Errorf("sending: %w", err))
	}
}

func (s *Server) acceptLoop(ctx context.Context, l listener.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			slog.WarnContext(ctx, "accepting connection", "addr", l.Addr(), "error", err)
			if sleep(ctx, s.pollInterval) != nil {
				return
			}
			continue
		}
		s.admit(ctx, conn)
	}
}

// admit registers conn under the lowest free player id, or turns it away
// when the table is full or a game is under way.
func (s *Server) admit(ctx context.Context, conn listener.Conn) {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	if s.State() != StateMatching || s.sessions.Len() >= s.players {
		slog.InfoContext(ctx, "rejecting connection", "remote", conn.RemoteAddr(), "state", s.State())
		_ = conn.Close()
		return
	}

	sess := newSession(s.freeID(), conn)

	payload, err := encode(wire.TagMatching, sess.id)
	if err == nil {
		err = sess.send(payload)
	}
	if err != nil {
		slog.WarnContext(ctx, "sending handshake", "remote", conn.RemoteAddr(), "error", err)
		sess.close()
		return
	}

	s.sessions.Append(sess)
	slog.InfoContext(ctx, "player joined", "player", sess.id, "remote", conn.RemoteAddr())
	s.publish(ctx, messaging.Event{Kind: messaging.EventJoined, Player: sess.id})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.receive(ctx, sess)
	}()
}

// freeID is the lowest player id without a session. admitMu must be held.
func (s *Server) freeID() int {
	taken := make([]bool, s.players)
	for _, sess := range s.sessions.Snapshot() {
		if sess.id < len(taken) {
			taken[sess.id] = true
		}
	}
	for id, t := range taken {
		if !t {
			return id
		}
	}
	return len(taken)
}

// receive reads client messages until the connection fails or the player
// quits.
func (s *Server) receive(ctx context.Context, sess *session) {
	for {
		env, err := wire.Receive(sess.conn)
		if err != nil {
			s.drop(ctx, sess, err)
			return
		}

		switch env.Tag {
		case wire.TagReady:
			if s.State() == StatePreparing && s.ready.Set(sess.id, true) {
				slog.DebugContext(ctx, "player ready", "player", sess.id, "ready", s.ready.Count(isReady), "of", s.players)
			}

		case wire.TagGaming:
			if s.State() != StatePlaying {
				continue
			}
			var actions []game.Action
			if err := env.Decode(&actions); err != nil {
				s.drop(ctx, sess, fmt.Errorf("decoding actions: %w", err))
				return
			}
			s.publishChat(ctx, sess.id, actions)
			if s.engine.ApplyActions(sess.id, actions) {
				s.drop(ctx, sess, nil)
				return
			}

		default:
			slog.DebugContext(ctx, "ignoring message", "player", sess.id, "tag", env.Tag)
		}
	}
}

func (s *Server) publishChat(ctx context.Context, player int, actions []game.Action) {
	for _, a := range actions {
		if a.Kind != game.ActionChat || a.Applier != player {
			continue
		}
		if text := strings.TrimSpace(a.Text); text != "" {
			s.publish(ctx, messaging.Event{Kind: messaging.EventChat, Player: player, Text: text})
		}
	}
}

// drop deregisters and closes sess. A nil cause means the player quit.
func (s *Server) drop(ctx context.Context, sess *session, cause error) {
	if !shared.Remove(s.sessions, sess) {
		return
	}
	sess.close()

	if cause != nil && ctx.Err() == nil {
		slog.InfoContext(ctx, "player disconnected", "player", sess.id, "error", cause)
	} else {
		slog.InfoContext(ctx, "player left", "player", sess.id)
	}
	s.publish(ctx, messaging.Event{Kind: messaging.EventLeft, Player: sess.id})
}

func (s *Server) publish(ctx context.Context, ev messaging.Event) {
	if s.publisher == nil {
		return
	}
	ev.Server = s.id
	ev.Game = s.gameID.Load()
	if ev.Kind != messaging.EventGameOver {
		ev.Winner = game.NoWinner
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if err := s.publisher.PublishEvent(ev); err != nil {
		slog.WarnContext(ctx, "publishing event", "kind", ev.Kind, "error", err)
	}
}

func (s *Server) pollUntil(ctx context.Context, done func() bool) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func encode(tag wire.Tag, body any) ([]byte, error) {
	env, err := wire.NewEnvelope(tag, body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", tag, err)
	}
	return env.Marshal()
}

func isReady(r bool) bool {
	return r
}
