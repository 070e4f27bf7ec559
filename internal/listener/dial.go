package listener

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/gorilla/websocket"
)

// Dial connects to a game server. For websockets addr may be a full ws://
// URL or a host:port, in which case DefaultWebSocketPath is used.
func Dial(ctx context.Context, p Protocol, addr string) (Conn, error) {
	switch p {
	case ProtocolTCP:
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", addr, err)
		}
		return conn, nil

	case ProtocolWebSocket:
		u, err := websocketURL(addr)
		if err != nil {
			return nil, err
		}
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", u, err)
		}
		return newWSConn(ws), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnknownProtocol, p)
}

func websocketURL(addr string) (string, error) {
	u, err := url.Parse(addr)
	if err == nil && (u.Scheme == "ws" || u.Scheme == "wss") {
		return addr, nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("parsing websocket address %q: %w", addr, err)
	}
	return (&url.URL{Scheme: "ws", Host: addr, Path: DefaultWebSocketPath}).String(), nil
}
