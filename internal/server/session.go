package server

import (
	"sync"

	"github.com/pixil98/go-maze/internal/listener"
	"github.com/pixil98/go-maze/internal/wire"
)

// session is one connected client. Its player id is fixed for the life of
// the connection.
type session struct {
	id   int
	conn listener.Conn

	wmu       sync.Mutex
	closeOnce sync.Once
}

func newSession(id int, conn listener.Conn) *session {
	return &session{id: id, conn: conn}
}

// send writes an encoded envelope as one frame. It blocks until the peer
// has taken the bytes, so a slow client holds up whoever is sending to it.
func (s *session) send(payload []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	return wire.WriteFrame(s.conn, payload)
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
	})
}
