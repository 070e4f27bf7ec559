package listener

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-maze/internal/wire"
	"github.com/pixil98/go-testutil"
)

func TestProtocol_UnmarshalText(t *testing.T) {
	tests := map[string]struct {
		input  string
		exp    Protocol
		expErr bool
	}{
		"tcp":       {input: "tcp", exp: ProtocolTCP},
		"websocket": {input: "websocket", exp: ProtocolWebSocket},
		"ws alias":  {input: "ws", exp: ProtocolWebSocket},
		"telnet":    {input: "telnet", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var p Protocol
			err := p.UnmarshalText([]byte(tt.input))
			if tt.expErr {
				if !errors.Is(err, ErrUnknownProtocol) {
					t.Errorf("expected ErrUnknownProtocol, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "protocol", p, tt.exp)
		})
	}
}

func newTestListener(t *testing.T, p Protocol) Listener {
	t.Helper()

	var (
		l   Listener
		err error
	)
	switch p {
	case ProtocolTCP:
		l, err = ListenTCP("127.0.0.1:0")
	case ProtocolWebSocket:
		l, err = ListenWebSocket("127.0.0.1:0", "")
	}
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []Protocol{ProtocolTCP, ProtocolWebSocket} {
		t.Run(p.String(), func(t *testing.T) {
			l := newTestListener(t, p)
			testutil.AssertEqual(t, "protocol", l.Protocol(), p)

			accepted := make(chan Conn, 1)
			go func() {
				c, err := l.Accept()
				if err == nil {
					accepted <- c
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			client, err := Dial(ctx, p, l.Addr().String())
			if err != nil {
				t.Fatalf("dialing: %v", err)
			}
			defer client.Close()

			var server Conn
			select {
			case server = <-accepted:
			case <-ctx.Done():
				t.Fatal("timed out waiting for accept")
			}
			defer server.Close()

			for _, msg := range []string{"first", "", "third"} {
				if err := wire.WriteFrame(client, []byte(msg)); err != nil {
					t.Fatalf("writing frame: %v", err)
				}
			}
			for _, want := range []string{"first", "", "third"} {
				got, err := wire.ReadFrame(server)
				if err != nil {
					t.Fatalf("reading frame: %v", err)
				}
				testutil.AssertEqual(t, "frame", string(got), want)
			}

			if err := wire.Send(server, wire.TagMatching, 1); err != nil {
				t.Fatalf("sending: %v", err)
			}
			env, err := wire.Receive(client)
			if err != nil {
				t.Fatalf("receiving: %v", err)
			}
			testutil.AssertEqual(t, "tag", env.Tag, wire.TagMatching)

			server.Close()
			_, err = wire.ReadFrame(client)
			if err == nil {
				t.Error("expected an error after the peer closed")
			}
		})
	}
}

func TestWebSocketListener_AcceptAfterClose(t *testing.T) {
	l, err := ListenWebSocket("127.0.0.1:0", "/game")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	l.Close()

	_, err = l.Accept()
	if !errors.Is(err, net.ErrClosed) {
		t.Errorf("expected net.ErrClosed, got %v", err)
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := map[string]struct {
		addr   string
		exp    string
		expErr bool
	}{
		"host and port": {addr: "127.0.0.1:7777", exp: "ws://127.0.0.1:7777/play"},
		"full url":      {addr: "ws://maze.example:80/game", exp: "ws://maze.example:80/game"},
		"no port":       {addr: "maze.example", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := websocketURL(tt.addr)
			if tt.expErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "url", got, tt.exp)
		})
	}
}

func TestDial_Refused(t *testing.T) {
	l, err := ListenTCP("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = Dial(ctx, ProtocolTCP, addr)
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("expected dial error, got %v", err)
	}
}
