package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickRate        int              `json:"tick_rate"`
	SettleDelay     string           `json:"settle_delay"`
	PollInterval    string           `json:"poll_interval"`
	DetectDeadlocks bool             `json:"detect_deadlocks"`
	Listeners       []ListenerConfig `json:"listeners"`
	Game            GameConfig       `json:"game"`
	Nats            NatsConfig       `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickRate < 0 || c.TickRate > 1000 {
		el.Add(fmt.Errorf("tick_rate must be between 0 and 1000"))
	}

	for name, v := range map[string]string{"settle_delay": c.SettleDelay, "poll_interval": c.PollInterval} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		} else if d < 0 {
			el.Add(fmt.Errorf("%s must not be negative", name))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Game.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

// durations returns the parsed settle delay and poll interval, zero when
// unset.
func (c *Config) durations() (settle, poll time.Duration, err error) {
	if c.SettleDelay != "" {
		settle, err = time.ParseDuration(c.SettleDelay)
		if err != nil {
			return 0, 0, fmt.Errorf("parsing settle_delay: %w", err)
		}
	}
	if c.PollInterval != "" {
		poll, err = time.ParseDuration(c.PollInterval)
		if err != nil {
			return 0, 0, fmt.Errorf("parsing poll_interval: %w", err)
		}
	}
	return settle, poll, nil
}
