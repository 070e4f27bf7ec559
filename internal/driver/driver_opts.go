package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}

// WithTickRate sets the tick length from a frequency in hertz.
func WithTickRate(hz int) DriverOpt {
	return func(d *Driver) {
		if hz > 0 {
			d.tickLength = time.Second / time.Duration(hz)
		}
	}
}
