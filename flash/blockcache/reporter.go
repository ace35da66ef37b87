package blockcache

import (
	"log"

	"github.com/sarchlab/flashsim/sim"
)

// Defaults of the statistics reporter.
const (
	DefaultFlashBusFreq = 18 * sim.MHz
	DefaultNumHotBlocks = 10

	// UnknownSymbol labels addresses that have no debug symbol.
	UnknownSymbol = "(unknown)"

	// The serial bus spends 10 bit times on every byte.
	bytesToMBits = 10.0 * 1e-6
)

// A StatsSwitch tells whether periodic statistics are wanted.
type StatsSwitch interface {
	FlashStatsEnabled() bool
}

// An AddressTranslator maps flash offsets to virtual addresses of the guest.
type AddressTranslator interface {
	FlashToVirtAddr(flashOffset uint32) uint32
}

// A SymbolFormatter names a virtual address. It returns a placeholder when it
// does not know the address.
type SymbolFormatter interface {
	FormatAddress(va uint32) string
}

// A ReportSink receives every report the reporter emits.
type ReportSink interface {
	AcceptReport(report Report)
}

// HotBlockReport is one line of the hot block list.
type HotBlockReport struct {
	Number   uint32
	Misses   uint32
	Address  uint32
	VirtAddr uint32
	Symbol   string
}

// A Report summarizes one statistics interval.
type Report struct {
	Time     sim.Ticks
	Duration sim.VTimeInSec

	Accesses  uint64
	HitsSame  uint64
	HitsOther uint64
	Misses    uint64

	AccessRate     float64
	HitSameRate    float64
	HitOtherRate   float64
	MissRate       float64
	BusUtilization float64

	HotBlocks []HotBlockReport
}

// A Reporter periodically logs the cache statistics and starts a new
// interval.
type Reporter struct {
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

// AddSink registers another receiver of reports.
func (r *Reporter) AddSink(sink ReportSink) {
	r.sinks = append(r.sinks, sink)
}

// Interval returns the minimum number of ticks between two reports.
func (r *Reporter) Interval() sim.Ticks {
	if r.interval == 0 {
		return r.clock.TicksPerSecond()
	}

	return r.interval
}

// Tick emits a report if reporting is enabled and a full interval has passed
// since the last one. It returns true if a report was emitted. Otherwise it
// changes nothing.
func (r *Reporter) Tick() bool {
	if !r.enabled.FlashStatsEnabled() {
		return false
	}

	now := r.clock.Now()
	if now < r.stats.Timestamp || now-r.stats.Timestamp < r.Interval() {
		return false
	}

	report := r.buildReport(now, now-r.stats.Timestamp)
	r.log(report)

	for _, sink := range r.sinks {
		sink.AcceptReport(report)
	}

	r.stats.Reset()
	r.stats.Timestamp = now

	return true
}

func (r *Reporter) buildReport(now, elapsed sim.Ticks) Report {
	p := &r.stats.Periodic
	dt := float64(elapsed) / float64(r.clock.TicksPerSecond())

	totalBytes := float64(p.BlockMiss) * float64(r.stats.space.BlockSize())
	effectiveMHz := totalBytes / dt * bytesToMBits
	busMHz := float64(r.busFreq / sim.MHz)

	report := Report{
		Time:           now,
		Duration:       sim.VTimeInSec(dt),
		Accesses:       p.BlockTotal,
		HitsSame:       p.BlockHitSame,
		HitsOther:      p.BlockHitOther,
		Misses:         p.BlockMiss,
		AccessRate:     float64(p.BlockTotal) / dt,
		HitSameRate:    float64(p.BlockHitSame) / dt,
		HitOtherRate:   float64(p.BlockHitOther) / dt,
		MissRate:       float64(p.BlockMiss) / dt,
		BusUtilization: effectiveMHz / busMHz * 100.0,
	}

	for _, hot := range RankHotBlocks(p.BlockMissCounts, r.numHotBlocks) {
		addr := hot.Number * r.stats.space.BlockSize()
		va := r.virtAddr(addr)

		report.HotBlocks = append(report.HotBlocks, HotBlockReport{
			Number:   hot.Number,
			Misses:   hot.Misses,
			Address:  addr,
			VirtAddr: va,
			Symbol:   r.symbolName(va),
		})
	}

	return report
}

func (r *Reporter) virtAddr(flashAddr uint32) uint32 {
	if r.translator == nil {
		return 0
	}

	return r.translator.FlashToVirtAddr(flashAddr)
}

func (r *Reporter) symbolName(va uint32) string {
	if r.symbols == nil {
		return UnknownSymbol
	}

	name := r.symbols.FormatAddress(va)
	if name == "" {
		return UnknownSymbol
	}

	return name
}

func (r *Reporter) log(report Report) {
	r.logger.Printf("\nFLASH: %9.1f acc/s, %8.1f same/s, "+
		"%8.1f cached/s, %8.1f miss/s, "+
		"%8.2f%% bus utilization\n",
		report.AccessRate,
		report.HitSameRate,
		report.HitOtherRate,
		report.MissRate,
		report.BusUtilization)

	for _, hot := range report.HotBlocks {
		r.logger.Printf("FLASH: [%5d miss] @ addr=0x%06x va=%08x  %s\n",
			hot.Misses, hot.Address, hot.VirtAddr, hot.Symbol)
	}
}
