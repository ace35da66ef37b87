// Package flashtrace records flash cache activity into a DataRecorder.
package flashtrace

import (
	"sync"

	"github.com/sarchlab/flashsim/datarecording"
	"github.com/sarchlab/flashsim/flash/blockcache"
	"github.com/sarchlab/flashsim/sim"
)

// AccessTableName is the table that holds one row per block lookup.
const AccessTableName = "flash_accesses"

type accessEntry struct {
	Tick    uint64
	Kind    string
	Address uint32
	Block   uint32
	Slot    int
}

// AccessTracer is a cache hook that stores every lookup in a table.
type AccessTracer struct {
	mu      sync.Mutex
	clock   sim.Clock
	backend datarecording.DataRecorder

	startTick, endTick sim.Ticks
	count              uint64
}

// NewAccessTracer creates an AccessTracer and its table.
func NewAccessTracer(
	clock sim.Clock,
	recorder datarecording.DataRecorder,
) *AccessTracer {
	recorder.CreateTable(AccessTableName, accessEntry{})

	return &AccessTracer{
		clock:   clock,
		backend: recorder,
	}
}

// SetWindow restricts recording to lookups at ticks in [start, end]. An end
// of 0 means no upper bound.
func (t *AccessTracer) SetWindow(start, end sim.Ticks) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTick = start
	t.endTick = end
}

// NumRecorded returns how many lookups were stored.
func (t *AccessTracer) NumRecorded() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.count
}

// Func records the lookup described by ctx.
func (t *AccessTracer) Func(ctx blockcache.HookCtx) {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if now < t.startTick || (t.endTick > 0 && now > t.endTick) {
		return
	}

	t.backend.InsertData(AccessTableName, accessEntry{
		Tick:    uint64(now),
		Kind:    ctx.Pos.Name,
		Address: ctx.Address,
		Block:   ctx.Block.Number,
		Slot:    ctx.Block.Slot(),
	})
	t.count++
}

// Terminate flushes the pending rows.
func (t *AccessTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
