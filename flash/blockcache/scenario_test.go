package blockcache

import (
	"bytes"
	"log"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flashsim/sim"
)

type alwaysOn struct{}

func (alwaysOn) FlashStatsEnabled() bool { return true }

var _ = ginkgo.Describe("Four block cache", func() {
	var (
		clock    *sim.TickingClock
		cache    *Cache
		reporter *Reporter
		out      *bytes.Buffer
	)

	ginkgo.BeforeEach(func() {
		img := patternImage(256 * datasize.B)
		clock = sim.NewTickingClock(1 * sim.MHz)
		out = new(bytes.Buffer)

		cache = MakeBuilder().
			WithDevice(img).
			WithLog2BlockSize(6).
			WithNumBlocks(4).
			WithWayAssociativity(4).
			Build()

		reporter = MakeReporterBuilder().
			WithStats(cache.Stats()).
			WithClock(clock).
			WithSwitch(alwaysOn{}).
			WithLogger(log.New(out, "", 0)).
			Build()
	})

	ginkgo.It("should rank the blocks that missed most", func() {
		var a, b Ref

		cache.Get(&a, 0x80)
		cache.Get(&a, 0x81)
		cache.Get(&b, 0x82)
		cache.Get(&a, 0x00)
		cache.Get(&b, 0x83)
		cache.Invalidate(0, 0x100)
		cache.Get(&a, 0x80)
		cache.Get(&a, 0x00)
		cache.Get(&b, 0x01)
		cache.Get(&a, 0x02)
		cache.Invalidate(0, 0x100)
		cache.Get(&a, 0x84)

		p := cache.Stats().Snapshot()
		Expect(p.BlockTotal).To(Equal(uint64(10)))
		Expect(p.BlockMiss).To(Equal(uint64(5)))
		Expect(p.BlockHitSame + p.BlockHitOther).To(Equal(uint64(5)))
		Expect(p.BlockMissCounts).To(Equal([]uint32{2, 0, 3, 0}))

		Expect(reporter.Tick()).To(BeFalse())

		clock.Advance(clock.TicksPerSecond())
		Expect(reporter.Tick()).To(BeTrue())
		Expect(reporter.Tick()).To(BeFalse())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(HavePrefix("FLASH:      10.0 acc/s"))
		Expect(lines[1]).To(ContainSubstring("[    3 miss] @ addr=0x000080"))
		Expect(lines[2]).To(ContainSubstring("[    2 miss] @ addr=0x000000"))
		Expect(out.String()).NotTo(ContainSubstring("addr=0x000040"))
		Expect(out.String()).NotTo(ContainSubstring("addr=0x0000c0"))
	})
})
