package server

// State is the server's position in the match lifecycle.
type State int

const (
	StateInitiated State = iota
	StateMatching
	StatePreparing
	StatePlaying
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitiated:
		return "initiated"
	case StateMatching:
		return "matching"
	case StatePreparing:
		return "preparing"
	case StatePlaying:
		return "playing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}
