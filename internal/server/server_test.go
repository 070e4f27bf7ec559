package server

import (
	"context"
	"math/rand/v2"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-maze/internal/driver"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/listener"
	"github.com/pixil98/go-maze/internal/messaging"
	"github.com/pixil98/go-maze/internal/wire"
	"github.com/pixil98/go-testutil"
)

const waitTimeout = 5 * time.Second

// scriptedEngine lets a test end the game on demand.
type scriptedEngine struct {
	*game.Engine
	over atomic.Bool
}

func (e *scriptedEngine) Reset() error {
	e.over.Store(false)
	return e.Engine.Reset()
}

func (e *scriptedEngine) Mode() game.Mode {
	if e.over.Load() {
		return game.ModeGameOver
	}
	return e.Engine.Mode()
}

func (e *scriptedEngine) Snapshot() game.Snapshot {
	s := e.Engine.Snapshot()
	if e.over.Load() {
		s.Mode = game.ModeGameOver
		s.Winner = 0
	}
	return s
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (p *recordingPublisher) PublishEvent(ev messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) count(kind messaging.EventKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, ev := range p.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

type testServer struct {
	srv    *Server
	engine *scriptedEngine
	pub    *recordingPublisher
	addr   string
}

func startServer(t *testing.T, players int) *testServer {
	t.Helper()

	eng, err := game.NewEngine(game.DefaultConfig(players), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	se := &scriptedEngine{Engine: eng}

	l, err := listener.ListenTCP("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}

	pub := &recordingPublisher{}
	srv, err := NewServer([]listener.Listener{l}, se,
		WithSettleDelay(20*time.Millisecond),
		WithPollInterval(5*time.Millisecond),
		WithPublisher(pub),
	)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	drv := driver.NewDriver([]driver.Manager{srv}, driver.WithTickLength(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	go func() { errs <- srv.Start(ctx) }()
	go func() { errs <- drv.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		for range 2 {
			if err := <-errs; err != nil {
				t.Errorf("worker returned error: %v", err)
			}
		}
	})

	return &testServer{srv: srv, engine: se, pub: pub, addr: l.Addr().String()}
}

// testClient reads every incoming envelope in the background. When the
// buffer is full the oldest message is dropped; the server repeats state
// every tick so nothing is lost for good.
type testClient struct {
	t     *testing.T
	conn  net.Conn
	inbox chan wire.Envelope
}

func dial(t *testing.T, addr string) *testClient {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, waitTimeout)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	c := &testClient{t: t, conn: conn, inbox: make(chan wire.Envelope, 256)}
	go c.read()
	t.Cleanup(func() { _ = conn.Close() })
	return c
}

func (c *testClient) read() {
	defer close(c.inbox)
	for {
		env, err := wire.Receive(c.conn)
		if err != nil {
			return
		}
		select {
		case c.inbox <- env:
		default:
			<-c.inbox
			c.inbox <- env
		}
	}
}

func (c *testClient) await(tag wire.Tag) wire.Envelope {
	c.t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case env, ok := <-c.inbox:
			if !ok {
				c.t.Fatalf("connection closed while waiting for %s", tag)
			}
			if env.Tag == tag {
				return env
			}
		case <-deadline:
			c.t.Fatalf("timed out waiting for %s", tag)
		}
	}
}

func (c *testClient) awaitSnapshot(match func(game.Snapshot) bool) game.Snapshot {
	c.t.Helper()

	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		env := c.await(wire.TagGaming)
		var snap game.Snapshot
		if err := env.Decode(&snap); err != nil {
			c.t.Fatalf("decoding snapshot: %v", err)
		}
		if match(snap) {
			return snap
		}
	}
	c.t.Fatal("timed out waiting for matching snapshot")
	return game.Snapshot{}
}

func (c *testClient) awaitClosed() {
	c.t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case env, ok := <-c.inbox:
			if !ok {
				return
			}
			if env.Tag == wire.TagMatching {
				c.t.Fatal("expected connection to be refused, got handshake")
			}
		case <-deadline:
			c.t.Fatal("timed out waiting for connection to close")
		}
	}
}

func (c *testClient) handshake() int {
	c.t.Helper()

	env := c.await(wire.TagMatching)
	var id int
	if err := env.Decode(&id); err != nil {
		c.t.Fatalf("decoding player id: %v", err)
	}
	return id
}

func (c *testClient) send(tag wire.Tag, body any) {
	c.t.Helper()

	if err := wire.Send(c.conn, tag, body); err != nil {
		c.t.Fatalf("sending %s: %v", tag, err)
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(waitTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewServer_Errors(t *testing.T) {
	eng, err := game.NewEngine(game.DefaultConfig(1), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	l, err := listener.ListenTCP("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer func() { _ = l.Close() }()

	tests := map[string]struct {
		listeners []listener.Listener
		engine    Engine
		expErr    string
	}{
		"no listeners": {
			engine: eng,
			expErr: "at least one listener",
		},
		"no engine": {
			listeners: []listener.Listener{l},
			expErr:    "engine is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewServer(tt.listeners, tt.engine)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestServer_Lifecycle(t *testing.T) {
	ts := startServer(t, 2)

	a := dial(t, ts.addr)
	testutil.AssertEqual(t, "first id", a.handshake(), 0)
	b := dial(t, ts.addr)
	testutil.AssertEqual(t, "second id", b.handshake(), 1)

	// The table is full.
	c := dial(t, ts.addr)
	c.awaitClosed()

	var roster []bool
	if err := a.await(wire.TagPreparing).Decode(&roster); err != nil {
		t.Fatalf("decoding roster: %v", err)
	}
	testutil.AssertEqual(t, "roster size", len(roster), 2)

	a.send(wire.TagReady, nil)
	b.send(wire.TagReady, nil)

	snap := a.awaitSnapshot(func(game.Snapshot) bool { return true })
	testutil.AssertEqual(t, "explorers", len(snap.Explorers), 2)
	testutil.AssertEqual(t, "mode", snap.Mode, game.ModeRunning)
	testutil.AssertEqual(t, "state", ts.srv.State(), StatePlaying)

	a.send(wire.TagGaming, []game.Action{game.Turn(0, game.DirRight)})
	a.awaitSnapshot(func(s game.Snapshot) bool { return s.Explorers[0].Moving[game.DirRight] })

	// Actions for another player are ignored.
	a.send(wire.TagGaming, []game.Action{game.Turn(1, game.DirLeft)})
	a.send(wire.TagGaming, []game.Action{game.Chat(0, "hello")})
	eventually(t, "chat event", func() bool { return ts.pub.count(messaging.EventChat) == 1 })
	snap = b.awaitSnapshot(func(game.Snapshot) bool { return true })
	testutil.AssertEqual(t, "other explorer moving", snap.Explorers[1].IsMoving(), false)

	ts.engine.over.Store(true)
	var over game.Snapshot
	if err := b.await(wire.TagGameOver).Decode(&over); err != nil {
		t.Fatalf("decoding game over: %v", err)
	}
	testutil.AssertEqual(t, "winner", over.Winner, 0)

	a.await(wire.TagPreparing)
	testutil.AssertEqual(t, "joined events", ts.pub.count(messaging.EventJoined), 2)
	testutil.AssertEqual(t, "gameover events", ts.pub.count(messaging.EventGameOver), 1)
}

func TestServer_ReusesLowestFreeID(t *testing.T) {
	ts := startServer(t, 3)

	a := dial(t, ts.addr)
	testutil.AssertEqual(t, "a", a.handshake(), 0)
	b := dial(t, ts.addr)
	testutil.AssertEqual(t, "b", b.handshake(), 1)

	_ = a.conn.Close()
	eventually(t, "disconnect", func() bool { return ts.srv.Connected() == 1 })

	c := dial(t, ts.addr)
	testutil.AssertEqual(t, "c", c.handshake(), 0)
	testutil.AssertEqual(t, "state", ts.srv.State(), StateMatching)
}

func TestServer_Quit(t *testing.T) {
	ts := startServer(t, 1)

	a := dial(t, ts.addr)
	id := a.handshake()
	a.await(wire.TagPreparing)
	a.send(wire.TagReady, nil)
	a.awaitSnapshot(func(game.Snapshot) bool { return true })

	a.send(wire.TagGaming, []game.Action{game.Quit(id)})
	a.awaitClosed()

	eventually(t, "return to matching", func() bool { return ts.srv.State() == StateMatching })
	eventually(t, "left event", func() bool { return ts.pub.count(messaging.EventLeft) == 1 })
}

func TestServer_MalformedActions(t *testing.T) {
	ts := startServer(t, 1)

	a := dial(t, ts.addr)
	a.handshake()
	a.await(wire.TagPreparing)
	a.send(wire.TagReady, nil)
	a.awaitSnapshot(func(game.Snapshot) bool { return true })

	a.send(wire.TagGaming, "not a list of actions")
	a.awaitClosed()
	eventually(t, "session removed", func() bool { return ts.srv.Connected() == 0 })
}

func TestServer_TickAfterChat(t *testing.T) {
	eng, err := game.NewEngine(game.DefaultConfig(2), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	l, err := listener.ListenTCP("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer func() { _ = l.Close() }()

	srv, err := NewServer([]listener.Listener{l}, eng)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	srv.state.Store(StatePlaying)

	ctx := context.Background()
	if err := srv.Tick(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("first tick: %v", err)
	}

	eng.ApplyActions(0, []game.Action{game.Chat(0, "hello")})
	if err := srv.Tick(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("tick with a chat event: %v", err)
	}
	testutil.AssertEqual(t, "chat event", len(eng.Snapshot().Events), 1)
}
