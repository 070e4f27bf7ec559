package messaging

import (
	"encoding/json"
	"fmt"
)

// Broker is the part of NatsServer the publisher needs.
type Broker interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher publishes lifecycle events as JSON.
type NatsPublisher struct {
	broker Broker
}

// NewNatsPublisher wraps a broker, normally a NatsServer, for event delivery.
func NewNatsPublisher(broker Broker) *NatsPublisher {
	return &NatsPublisher{broker: broker}
}

func (p *NatsPublisher) PublishEvent(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return p.broker.Publish(ev.Subject(), data)
}
