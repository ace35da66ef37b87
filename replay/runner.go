package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarchlab/flashsim/flash/blockcache"
	"github.com/sarchlab/flashsim/sim"
)

// ErrOutOfRange is returned for reads past the end of the flash.
var ErrOutOfRange = errors.New("access is outside the flash")

// A ProgressTracker is told when each record starts and when it is done. A
// record that stops the replay stays in progress.
type ProgressTracker interface {
	IncrementInProgress(amount uint64)
	MoveInProgressToFinished(amount uint64)
}

// Result counts what a replay did.
type Result struct {
	Reads         uint64
	Invalidations uint64
	Bytes         uint64
	Reports       int
}

// A Runner feeds trace records to a cache, one requester per Ref, and gives
// the reporter a chance to run after every record.
type Runner struct {
	cache    *blockcache.Cache
	clock    *sim.TickingClock
	reporter *blockcache.Reporter
	progress ProgressTracker

	refs map[string]*blockcache.Ref
	buf  []byte
}

// NewRunner creates a Runner that moves clock to the tick of each record.
func NewRunner(cache *blockcache.Cache, clock *sim.TickingClock) *Runner {
	return &Runner{
		cache: cache,
		clock: clock,
		refs:  make(map[string]*blockcache.Ref),
	}
}

// WithReporter sets the reporter ticked after each record.
func (r *Runner) WithReporter(reporter *blockcache.Reporter) *Runner {
	r.reporter = reporter
	return r
}

// WithProgress sets where progress is reported.
func (r *Runner) WithProgress(progress ProgressTracker) *Runner {
	r.progress = progress
	return r
}

// Run replays accesses in order. It stops at the first record that cannot be
// replayed or when ctx is done. The refs of all requesters are released on
// return.
func (r *Runner) Run(ctx context.Context, accesses []Access) (Result, error) {
	var res Result

	defer r.releaseAll()

	for i, a := range accesses {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if r.progress != nil {
			r.progress.IncrementInProgress(1)
		}

		if err := r.clock.AdvanceTo(a.Tick); err != nil {
			return res, fmt.Errorf("record %d: %w", i, err)
		}

		switch a.Kind {
		case KindInvalidate:
			r.cache.Invalidate(a.Address, a.End)
			res.Invalidations++
		case KindRead:
			if err := r.read(a); err != nil {
				return res, fmt.Errorf("record %d: %w", i, err)
			}

			res.Reads++
			res.Bytes += uint64(a.Length)
		default:
			return res, fmt.Errorf("record %d: unknown kind %d", i, a.Kind)
		}

		if r.reporter != nil && r.reporter.Tick() {
			res.Reports++
		}

		if r.progress != nil {
			r.progress.MoveInProgressToFinished(1)
		}
	}

	return res, nil
}

func (r *Runner) read(a Access) error {
	if uint64(a.Address)+uint64(a.Length) > r.cache.Capacity() {
		return fmt.Errorf("%w: 0x%06x+%d", ErrOutOfRange, a.Address, a.Length)
	}

	if cap(r.buf) < int(a.Length) {
		r.buf = make([]byte, a.Length)
	}

	r.cache.Read(r.refFor(a.Requester), a.Address, r.buf[:a.Length])

	return nil
}

func (r *Runner) refFor(requester string) *blockcache.Ref {
	ref, found := r.refs[requester]
	if !found {
		ref = new(blockcache.Ref)
		r.refs[requester] = ref
	}

	return ref
}

func (r *Runner) releaseAll() {
	for _, ref := range r.refs {
		ref.Release()
	}
}
