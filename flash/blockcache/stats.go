package blockcache

import (
	"fmt"

	"github.com/sarchlab/flashsim/sim"
)

// PeriodicStats are the counters of the current reporting interval.
type PeriodicStats struct {
	BlockTotal    uint64
	BlockHitSame  uint64
	BlockHitOther uint64
	BlockMiss     uint64

	// BlockMissCounts has one entry per block number of the flash device.
	BlockMissCounts []uint32
}

// Stats collects the cache statistics of one simulator session.
//
// Every recorded lookup bumps BlockTotal and exactly one of the hit/miss
// counters, so BlockTotal always equals their sum.
type Stats struct {
	space AddressSpace

	// Timestamp is the tick of the last emitted report.
	Timestamp sim.Ticks
	Periodic  PeriodicStats
}

// NewStats creates zeroed statistics for a device of the given capacity.
func NewStats(space AddressSpace, capacity uint64) *Stats {
	return &Stats{
		space: space,
		Periodic: PeriodicStats{
			BlockMissCounts: make([]uint32, space.NumBlocks(capacity)),
		},
	}
}

// RecordHitSame counts a lookup satisfied by the block the requester
// already held.
func (s *Stats) RecordHitSame() {
	s.Periodic.BlockTotal++
	s.Periodic.BlockHitSame++
}

// RecordHitOther counts a lookup satisfied by another cached block.
func (s *Stats) RecordHitOther() {
	s.Periodic.BlockTotal++
	s.Periodic.BlockHitOther++
}

// RecordMiss counts a lookup that had to load blockAddr from the device.
func (s *Stats) RecordMiss(blockAddr uint32) {
	blockNumber := s.space.BlockNumber(blockAddr)
	if int(blockNumber) >= len(s.Periodic.BlockMissCounts) {
		panic(fmt.Sprintf("block %d (addr 0x%06x) beyond the %d-block device",
			blockNumber, blockAddr, len(s.Periodic.BlockMissCounts)))
	}

	s.Periodic.BlockTotal++
	s.Periodic.BlockMiss++
	s.Periodic.BlockMissCounts[blockNumber]++
}

// Reset zeroes all the interval counters, including the histogram.
func (s *Stats) Reset() {
	counts := s.Periodic.BlockMissCounts
	clear(counts)

	s.Periodic = PeriodicStats{BlockMissCounts: counts}
}

// Snapshot returns a copy of the interval counters.
func (s *Stats) Snapshot() PeriodicStats {
	p := s.Periodic
	p.BlockMissCounts = append([]uint32(nil), s.Periodic.BlockMissCounts...)

	return p
}
