package listener

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// Conn is one reliable, ordered byte stream to a peer.
type Conn interface {
	io.ReadWriteCloser
	RemoteAddr() net.Addr
}

// Listener hands out inbound connections until it is closed.
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
	Protocol() Protocol
}

var ErrUnknownProtocol = errors.New("unknown protocol")

// Protocol selects the transport a Listener or Dial uses.
type Protocol int

const (
	ProtocolTCP Protocol = iota
	ProtocolWebSocket
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolWebSocket:
		return "websocket"
	}
	return "unknown"
}

func (p *Protocol) UnmarshalText(text []byte) error {
	switch string(text) {
	case "tcp":
		*p = ProtocolTCP
	case "websocket", "ws":
		*p = ProtocolWebSocket
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProtocol, text)
	}
	return nil
}

func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TCPListener accepts plain TCP connections.
type TCPListener struct {
	ln net.Listener
}

// ListenTCP listens on addr, for example ":7777" or "127.0.0.1:0".
func ListenTCP(addr string) (*TCPListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &TCPListener{ln: ln}, nil
}

func (l *TCPListener) Accept() (Conn, error) {
	return l.ln.Accept()
}

func (l *TCPListener) Close() error {
	return l.ln.Close()
}

func (l *TCPListener) Addr() net.Addr {
	return l.ln.Addr()
}

func (l *TCPListener) Protocol() Protocol {
	return ProtocolTCP
}
