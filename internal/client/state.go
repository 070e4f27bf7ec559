package client

// State is the client's position in one game.
type State int

const (
	StateInitiated State = iota
	StateConnecting
	StatePreparing
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInitiated:
		return "initiated"
	case StateConnecting:
		return "connecting"
	case StatePreparing:
		return "preparing"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	}
	return "unknown"
}
