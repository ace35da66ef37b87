package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func setenv(env map[string]string) {
	for k, v := range env {
		GinkgoT().Setenv(k, v)
	}
}

var _ = Describe("Options", func() {
	It("should default to the device configuration", func() {
		o, err := FromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(o).To(Equal(Defaults()))
		Expect(o.FlashStatsEnabled()).To(BeFalse())
		Expect(o.Validate()).To(Succeed())
	})

	It("should read the environment", func() {
		setenv(map[string]string{
			"FLASHSIM_FLASH_STATS":     "true",
			"FLASHSIM_STATS_INTERVAL":  "500ms",
			"FLASHSIM_BUS_MHZ":         "24.5",
			"FLASHSIM_CLOCK_MHZ":       "32",
			"FLASHSIM_LOG2_BLOCK_SIZE": "6",
			"FLASHSIM_NUM_BLOCKS":      "8",
			"FLASHSIM_WAYS":            "2",
			"FLASHSIM_FLASH_SIZE":      "512KB",
			"FLASHSIM_VERIFY":          "1",
			"FLASHSIM_NUM_HOT_BLOCKS":  "3",
			"FLASHSIM_MONITOR_PORT":    "8080",
			"FLASHSIM_RECORD":          "out",
		})

		o, err := FromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(o.FlashStatsEnabled()).To(BeTrue())
		Expect(o.StatsInterval).To(Equal(500 * time.Millisecond))
		Expect(o.BusMHz).To(Equal(24.5))
		Expect(o.ClockMHz).To(Equal(32.0))
		Expect(o.Log2BlockSize).To(Equal(uint(6)))
		Expect(o.NumBlocks).To(Equal(8))
		Expect(o.Ways).To(Equal(2))
		Expect(o.FlashSize).To(Equal(512 * datasize.KB))
		Expect(o.Verify).To(BeTrue())
		Expect(o.NumHotBlocks).To(Equal(3))
		Expect(o.MonitorPort).To(Equal(8080))
		Expect(o.RecordPath).To(Equal("out"))
	})

	It("should name the variable that does not parse", func() {
		setenv(map[string]string{
			"FLASHSIM_NUM_BLOCKS": "many",
			"FLASHSIM_WAYS":       "few",
		})

		_, err := FromEnv()

		Expect(err).To(MatchError(ContainSubstring("FLASHSIM_NUM_BLOCKS")))
	})

	DescribeTable("validation",
		func(modify func(o *Options)) {
			o := Defaults()
			modify(&o)

			Expect(o.Validate()).NotTo(Succeed())
		},
		Entry("no blocks", func(o *Options) { o.NumBlocks = 0 }),
		Entry("uneven ways", func(o *Options) { o.Ways = 3 }),
		Entry("huge blocks", func(o *Options) { o.Log2BlockSize = 21 }),
		Entry("odd flash size", func(o *Options) { o.FlashSize = 1000 }),
		Entry("no bus", func(o *Options) { o.BusMHz = 0 }),
		Entry("negative interval", func(o *Options) { o.StatsInterval = -1 }),
		Entry("interval below one tick", func(o *Options) {
			o.StatsInterval = 10 * time.Nanosecond
		}),
	)

	It("should accept an interval of one tick", func() {
		o := Defaults()
		o.ClockMHz = 1
		o.StatsInterval = time.Microsecond

		Expect(o.Validate()).To(Succeed())
	})

	Context("with an env file", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should load variables from the file", func() {
			path := filepath.Join(dir, "flashsim.env")
			Expect(os.WriteFile(path,
				[]byte("FLASHSIM_NUM_HOT_BLOCKS=4\n"), 0o644)).To(Succeed())
			DeferCleanup(os.Unsetenv, "FLASHSIM_NUM_HOT_BLOCKS")

			o, err := Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(o.NumHotBlocks).To(Equal(4))
		})

		It("should let the environment win over the file", func() {
			path := filepath.Join(dir, "flashsim.env")
			Expect(os.WriteFile(path,
				[]byte("FLASHSIM_CLOCK_MHZ=4\n"), 0o644)).To(Succeed())
			GinkgoT().Setenv("FLASHSIM_CLOCK_MHZ", "8")

			o, err := Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(o.ClockMHz).To(Equal(8.0))
		})

		It("should ignore a missing file", func() {
			_, err := Load(filepath.Join(dir, "missing.env"))

			Expect(err).NotTo(HaveOccurred())
		})
	})
})
