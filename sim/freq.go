package sim

import (
	"log"
	"math"
)

// VTimeInSec is a point in simulated time, in seconds.
type VTimeInSec float64

// Ticks counts clock ticks since the start of the simulation.
type Ticks uint64

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) Ticks {
	if math.IsNaN(float64(time)) || time < 0 {
		log.Panic("invalid time")
	}

	return Ticks(math.Round(float64(time) * float64(f)))
}

// Seconds converts a number of ticks to seconds.
func (f Freq) Seconds(t Ticks) VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(float64(t) / float64(f))
}

// TicksPerSecond returns the number of whole ticks in one second.
func (f Freq) TicksPerSecond() Ticks {
	return Ticks(math.Round(float64(f)))
}
