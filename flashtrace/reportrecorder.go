package flashtrace

import (
	"github.com/sarchlab/flashsim/datarecording"
	"github.com/sarchlab/flashsim/flash/blockcache"
)

// Tables written by the ReportRecorder.
const (
	StatsTableName     = "flash_stats"
	HotBlocksTableName = "flash_hot_blocks"
)

type statsEntry struct {
	Interval       int
	Tick           uint64
	Duration       float64
	Accesses       uint64
	HitsSame       uint64
	HitsOther      uint64
	Misses         uint64
	AccessRate     float64
	HitSameRate    float64
	HitOtherRate   float64
	MissRate       float64
	BusUtilization float64
}

type hotBlockEntry struct {
	Interval int
	Rank     int
	Block    uint32
	Misses   uint32
	Address  uint32
	VirtAddr uint32
	Symbol   string
}

// ReportRecorder is a report sink that stores every statistics interval.
type ReportRecorder struct {
	backend  datarecording.DataRecorder
	interval int
}

// NewReportRecorder creates a ReportRecorder and its tables.
func NewReportRecorder(recorder datarecording.DataRecorder) *ReportRecorder {
	recorder.CreateTable(StatsTableName, statsEntry{})
	recorder.CreateTable(HotBlocksTableName, hotBlockEntry{})

	return &ReportRecorder{backend: recorder}
}

// NumReports returns how many reports were accepted.
func (r *ReportRecorder) NumReports() int {
	return r.interval
}

// AcceptReport stores one report.
func (r *ReportRecorder) AcceptReport(report blockcache.Report) {
	r.backend.InsertData(StatsTableName, statsEntry{
		Interval:       r.interval,
		Tick:           uint64(report.Time),
		Duration:       float64(report.Duration),
		Accesses:       report.Accesses,
		HitsSame:       report.HitsSame,
		HitsOther:      report.HitsOther,
		Misses:         report.Misses,
		AccessRate:     report.AccessRate,
		HitSameRate:    report.HitSameRate,
		HitOtherRate:   report.HitOtherRate,
		MissRate:       report.MissRate,
		BusUtilization: report.BusUtilization,
	})

	for rank, hot := range report.HotBlocks {
		r.backend.InsertData(HotBlocksTableName, hotBlockEntry{
			Interval: r.interval,
			Rank:     rank,
			Block:    hot.Number,
			Misses:   hot.Misses,
			Address:  hot.Address,
			VirtAddr: hot.VirtAddr,
			Symbol:   hot.Symbol,
		})
	}

	r.interval++
}
