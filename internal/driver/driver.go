package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second / 60
)

// Manager is advanced once per tick by a Driver. dt is the fixed tick length.
type Manager interface {
	Tick(ctx context.Context, dt time.Duration) error
}

// Driver runs its managers on a fixed tick until its context ends. A tick
// that overruns delays the next one; ticks are never run concurrently.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx, d.tickLength); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) TickLength() time.Duration {
	return d.tickLength
}
