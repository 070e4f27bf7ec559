package client

import "time"

type ClientOpt func(*Client)

// WithReadyInterval sets how often READY is resent while preparing.
func WithReadyInterval(d time.Duration) ClientOpt {
	return func(c *Client) {
		if d > 0 {
			c.readyInterval = d
		}
	}
}

// WithOnUpdate registers a callback run by the receiver after every message.
// It must not block.
func WithOnUpdate(f func()) ClientOpt {
	return func(c *Client) {
		c.onUpdate = f
	}
}
