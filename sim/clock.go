package sim

import "fmt"

// A Clock is a monotonic tick counter with a known tick rate.
type Clock interface {
	// Now returns the current tick count.
	Now() Ticks

	// TicksPerSecond returns the number of ticks in one second of simulated
	// time.
	TicksPerSecond() Ticks
}

// A TickingClock is a Clock that only moves when it is told to. The replay
// loop and the tests drive it.
type TickingClock struct {
	freq Freq
	now  Ticks
}

// NewTickingClock creates a clock that ticks at the given frequency, starting
// at tick 0.
func NewTickingClock(freq Freq) *TickingClock {
	if freq < Hz {
		panic("clock frequency must be at least 1 Hz")
	}

	return &TickingClock{freq: freq}
}

// Now returns the current tick count.
func (c *TickingClock) Now() Ticks {
	return c.now
}

// TicksPerSecond returns the number of ticks in one second.
func (c *TickingClock) TicksPerSecond() Ticks {
	return c.freq.TicksPerSecond()
}

// Freq returns the frequency of the clock.
func (c *TickingClock) Freq() Freq {
	return c.freq
}

// CurrentTime returns the current time in seconds.
func (c *TickingClock) CurrentTime() VTimeInSec {
	return c.freq.Seconds(c.now)
}

// Advance moves the clock forward by n ticks.
func (c *TickingClock) Advance(n Ticks) {
	c.now += n
}

// AdvanceTo moves the clock to tick t. The clock never goes backward.
func (c *TickingClock) AdvanceTo(t Ticks) error {
	if t < c.now {
		return fmt.Errorf("cannot move clock back from tick %d to %d", c.now, t)
	}

	c.now = t

	return nil
}
