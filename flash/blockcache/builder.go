package blockcache

import (
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/flashsim/flash/blockcache/internal/tagging"
	"github.com/sarchlab/flashsim/sim"
)

// Builder can build block caches.
type Builder struct {
	device           Device
	stats            *Stats
	log2BlockSize    uint
	numBlocks        int
	wayAssociativity int
	verifyOnAccess   bool
}

// MakeBuilder creates a builder with the default geometry: 16 blocks of 256
// bytes, fully associative.
func MakeBuilder() Builder {
	return Builder{
		log2BlockSize:    DefaultLog2BlockSize,
		numBlocks:        16,
		wayAssociativity: 16,
	}
}

// WithDevice sets the flash device behind the cache.
func (b Builder) WithDevice(device Device) Builder {
	b.device = device
	return b
}

// WithStats makes the cache record into existing statistics. By default the
// cache creates its own.
func (b Builder) WithStats(stats *Stats) Builder {
	b.stats = stats
	return b
}

// WithLog2BlockSize sets the block size to 2^n bytes.
func (b Builder) WithLog2BlockSize(n uint) Builder {
	b.log2BlockSize = n
	return b
}

// WithNumBlocks sets how many blocks the cache holds.
func (b Builder) WithNumBlocks(n int) Builder {
	b.numBlocks = n
	return b
}

// WithWayAssociativity sets the number of ways per set.
func (b Builder) WithWayAssociativity(n int) Builder {
	b.wayAssociativity = n
	return b
}

// WithVerifyOnAccess makes the cache check every returned block against the
// device.
func (b Builder) WithVerifyOnAccess(verify bool) Builder {
	b.verifyOnAccess = verify
	return b
}

// Build creates the cache.
func (b Builder) Build() *Cache {
	b.mustBeValid()

	space := NewAddressSpace(b.log2BlockSize)
	numSets := b.numBlocks / b.wayAssociativity

	stats := b.stats
	if stats == nil {
		stats = NewStats(space, b.device.Capacity())
	}

	c := &Cache{
		space:          space,
		arena:          NewArena(space, b.numBlocks),
		device:         b.device,
		stats:          stats,
		tags:           tagging.NewTagArray(numSets, b.wayAssociativity, space.BlockSize()),
		victimFinder:   tagging.NewLRUVictimFinder(),
		blocks:         make([]Block, b.numBlocks),
		verifyOnAccess: b.verifyOnAccess,
	}

	for slot := range c.blocks {
		c.blocks[slot] = Block{
			arena: c.arena,
			setID: slot / b.wayAssociativity,
			wayID: slot % b.wayAssociativity,
			slot:  slot,
		}
	}

	return c
}

func (b Builder) mustBeValid() {
	if b.device == nil {
		panic("a block cache needs a device")
	}

	if b.numBlocks <= 0 || b.wayAssociativity <= 0 ||
		b.numBlocks%b.wayAssociativity != 0 {
		panic(fmt.Sprintf("%d blocks cannot be split into %d-way sets",
			b.numBlocks, b.wayAssociativity))
	}

	blockSize := uint64(1) << b.log2BlockSize
	if b.device.Capacity()%blockSize != 0 {
		panic(fmt.Sprintf("device capacity %d is not a multiple of %d",
			b.device.Capacity(), blockSize))
	}

	if b.stats != nil && b.stats.space.log2BlockSize != b.log2BlockSize {
		panic("statistics use a different block size than the cache")
	}
}

// ReporterBuilder can build statistics reporters.
type ReporterBuilder struct {
	stats        *Stats
	clock        sim.Clock
	enabled      StatsSwitch
	translator   AddressTranslator
	symbols      SymbolFormatter
	logger       *log.Logger
	interval     sim.Ticks
	busFreq      sim.Freq
	numHotBlocks int
	sinks        []ReportSink
}

// MakeReporterBuilder creates a builder that reports every second of
// simulated time on an 18 MHz flash bus.
func MakeReporterBuilder() ReporterBuilder {
	return ReporterBuilder{
		busFreq:      DefaultFlashBusFreq,
		numHotBlocks: DefaultNumHotBlocks,
	}
}

// WithStats sets the statistics to report.
func (b ReporterBuilder) WithStats(stats *Stats) ReporterBuilder {
	b.stats = stats
	return b
}

// WithClock sets the clock that times the reporting intervals.
func (b ReporterBuilder) WithClock(clock sim.Clock) ReporterBuilder {
	b.clock = clock
	return b
}

// WithSwitch sets the option that turns reporting on and off.
func (b ReporterBuilder) WithSwitch(s StatsSwitch) ReporterBuilder {
	b.enabled = s
	return b
}

// WithTranslator sets how flash offsets become virtual addresses.
func (b ReporterBuilder) WithTranslator(t AddressTranslator) ReporterBuilder {
	b.translator = t
	return b
}

// WithSymbols sets how virtual addresses become names.
func (b ReporterBuilder) WithSymbols(s SymbolFormatter) ReporterBuilder {
	b.symbols = s
	return b
}

// WithLogger sets where the report lines go. Defaults to stderr.
func (b ReporterBuilder) WithLogger(logger *log.Logger) ReporterBuilder {
	b.logger = logger
	return b
}

// WithInterval sets the minimum number of ticks between two reports. Zero
// means one second.
func (b ReporterBuilder) WithInterval(interval sim.Ticks) ReporterBuilder {
	b.interval = interval
	return b
}

// WithBusFreq sets the clock of the flash bus.
func (b ReporterBuilder) WithBusFreq(freq sim.Freq) ReporterBuilder {
	b.busFreq = freq
	return b
}

// WithNumHotBlocks sets how many hot blocks a report lists at most.
func (b ReporterBuilder) WithNumHotBlocks(n int) ReporterBuilder {
	b.numHotBlocks = n
	return b
}

// WithSink adds a receiver of every emitted report.
func (b ReporterBuilder) WithSink(sink ReportSink) ReporterBuilder {
	b.sinks = append(b.sinks, sink)
	return b
}

// Build creates the reporter.
func (b ReporterBuilder) Build() *Reporter {
	if b.stats == nil || b.clock == nil || b.enabled == nil {
		panic("a reporter needs statistics, a clock, and a switch")
	}

	if b.busFreq <= 0 {
		panic("flash bus frequency must be positive")
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	return &Reporter{
		stats:        b.stats,
		clock:        b.clock,
		enabled:      b.enabled,
		translator:   b.translator,
		symbols:      b.symbols,
		logger:       logger,
		interval:     b.interval,
		busFreq:      b.busFreq,
		numHotBlocks: b.numHotBlocks,
		sinks:        append([]ReportSink(nil), b.sinks...),
	}
}
