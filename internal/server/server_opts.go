package server

import "time"

type ServerOpt func(*Server)

// WithSettleDelay sets the pause between matching, preparing and playing.
func WithSettleDelay(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.settleDelay = d
	}
}

// WithPollInterval sets how often phase conditions are rechecked.
func WithPollInterval(d time.Duration) ServerOpt {
	return func(s *Server) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithPublisher sends lifecycle events to p.
func WithPublisher(p EventPublisher) ServerOpt {
	return func(s *Server) {
		s.publisher = p
	}
}

// WithServerID overrides the generated server id.
func WithServerID(id string) ServerOpt {
	return func(s *Server) {
		if id != "" {
			s.id = id
		}
	}
}
