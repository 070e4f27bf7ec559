package messaging

import (
	"fmt"
	"time"
)

// EventKind classifies a lifecycle event.
type EventKind string

const (
	EventState    EventKind = "state"
	EventJoined   EventKind = "joined"
	EventLeft     EventKind = "left"
	EventGameOver EventKind = "gameover"
	EventChat     EventKind = "chat"
)

// Event is a notice about a server or match, published for anything outside
// the game that wants to follow along.
type Event struct {
	Server string    `json:"server"`
	Game   string    `json:"game,omitempty"`
	Kind   EventKind `json:"kind"`
	Player int       `json:"player"`
	State  string    `json:"state,omitempty"`
	Winner int       `json:"winner"`
	Text   string    `json:"text,omitempty"`
	Time   time.Time `json:"time"`
}

// Subject is the NATS subject the event is published on.
func (e Event) Subject() string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, e.Server, e.Kind)
}

// SubjectPrefix roots every subject this package publishes.
const SubjectPrefix = "maze"

// AllEvents matches every event from server.
func AllEvents(server string) string {
	return fmt.Sprintf("%s.%s.>", SubjectPrefix, server)
}
