package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"

	"github.com/sarchlab/flashsim/config"
	"github.com/sarchlab/flashsim/datarecording"
	"github.com/sarchlab/flashsim/flash"
	"github.com/sarchlab/flashsim/flash/blockcache"
	"github.com/sarchlab/flashsim/flashtrace"
	"github.com/sarchlab/flashsim/monitoring"
	"github.com/sarchlab/flashsim/replay"
	"github.com/sarchlab/flashsim/sim"
	"github.com/sarchlab/flashsim/svm"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a flash access trace through the block cache.",
	Long: "`replay --image game.bin --trace game.trace --stats` reads every " +
		"traced address through the cache and prints FLASH statistics once " +
		"per simulated interval.",
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	f := replayCmd.Flags()
	f.String("image", "", "Flash image file")
	f.String("trace", "", "Access trace file")
	f.String("symbols", "", "Symbol listing (nm format) of the guest program")
	f.StringSlice("segment", nil,
		"Flash segment mapping as flash:va:size, repeatable")
	f.Bool("stats", false, "Print periodic FLASH statistics")
	f.Duration("interval", 0, "Simulated time between two statistics reports")
	f.Float64("bus-mhz", 0, "Flash bus frequency in MHz")
	f.Float64("clock-mhz", 0, "Frequency of the trace ticks in MHz")
	f.Int("blocks", 0, "Number of cache blocks")
	f.Int("ways", 0, "Cache associativity")
	f.Uint("log2-block-size", 0, "Log2 of the block size in bytes")
	f.String("flash-size", "", "Flash capacity, e.g. 16MB")
	f.Int("hot-blocks", 0, "Number of hot blocks listed per report")
	f.Bool("verify", false, "Check every block handed out against the image")
	f.String("record", "", "SQLite file to record reports into")
	f.Bool("record-accesses", false, "Also record every block lookup")
	f.Bool("monitor", false, "Serve the statistics over HTTP")
	f.Int("port", 0, "Port of the monitoring server")
	f.Bool("open-browser", false, "Open the monitoring page in a browser")

	_ = replayCmd.MarkFlagRequired("image")
	_ = replayCmd.MarkFlagRequired("trace")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env")

	opts, err := config.Load(envFile)
	if err != nil {
		return err
	}

	err = applyFlags(cmd, &opts)
	if err != nil {
		return err
	}

	err = opts.Validate()
	if err != nil {
		return err
	}

	s, err := buildSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.close()

	tracePath, _ := cmd.Flags().GetString("trace")

	accesses, err := replay.LoadTrace(tracePath)
	if err != nil {
		return err
	}

	runner := replay.NewRunner(s.cache, s.clock).WithReporter(s.reporter)

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar("replay", uint64(len(accesses)))
		defer s.monitor.CompleteProgressBar(bar)

		runner.WithProgress(bar)
	}

	res, err := runner.Run(cmd.Context(), accesses)

	fmt.Fprintf(os.Stderr,
		"Replayed %d reads (%s) and %d invalidations in %.6f s, %d reports\n",
		res.Reads, datasize.ByteSize(res.Bytes).HumanReadable(),
		res.Invalidations, float64(s.clock.CurrentTime()), res.Reports)

	return err
}

func applyFlags(cmd *cobra.Command, opts *config.Options) error {
	f := cmd.Flags()

	if f.Changed("stats") {
		opts.FlashStats, _ = f.GetBool("stats")
	}

	if f.Changed("interval") {
		opts.StatsInterval, _ = f.GetDuration("interval")
	}

	if f.Changed("bus-mhz") {
		opts.BusMHz, _ = f.GetFloat64("bus-mhz")
	}

	if f.Changed("clock-mhz") {
		opts.ClockMHz, _ = f.GetFloat64("clock-mhz")
	}

	if f.Changed("blocks") {
		opts.NumBlocks, _ = f.GetInt("blocks")
	}

	if f.Changed("ways") {
		opts.Ways, _ = f.GetInt("ways")
	}

	if f.Changed("log2-block-size") {
		opts.Log2BlockSize, _ = f.GetUint("log2-block-size")
	}

	if f.Changed("hot-blocks") {
		opts.NumHotBlocks, _ = f.GetInt("hot-blocks")
	}

	if f.Changed("verify") {
		opts.Verify, _ = f.GetBool("verify")
	}

	if f.Changed("record") {
		opts.RecordPath, _ = f.GetString("record")
	}

	if f.Changed("port") {
		opts.MonitorPort, _ = f.GetInt("port")
	}

	if f.Changed("flash-size") {
		s, _ := f.GetString("flash-size")

		err := opts.FlashSize.UnmarshalText([]byte(s))
		if err != nil {
			return fmt.Errorf("--flash-size %q: %w", s, err)
		}
	}

	return nil
}

// session holds everything wired together for one replay.
type session struct {
	clock    *sim.TickingClock
	cache    *blockcache.Cache
	reporter *blockcache.Reporter
	recorder datarecording.DataRecorder
	tracer   *flashtrace.AccessTracer
	monitor  *monitoring.Monitor
}

func buildSession(cmd *cobra.Command, opts config.Options) (*session, error) {
	f := cmd.Flags()
	s := &session{}

	imagePath, _ := f.GetString("image")

	image, err := flash.LoadImage(imagePath, opts.FlashSize)
	if err != nil {
		return nil, err
	}

	mapper, err := buildMapper(cmd, opts)
	if err != nil {
		return nil, err
	}

	s.clock = sim.NewTickingClock(sim.Freq(opts.ClockMHz) * sim.MHz)

	s.cache = blockcache.MakeBuilder().
		WithDevice(image).
		WithLog2BlockSize(opts.Log2BlockSize).
		WithNumBlocks(opts.NumBlocks).
		WithWayAssociativity(opts.Ways).
		WithVerifyOnAccess(opts.Verify).
		Build()

	rb := blockcache.MakeReporterBuilder().
		WithStats(s.cache.Stats()).
		WithClock(s.clock).
		WithSwitch(opts).
		WithTranslator(mapper).
		WithLogger(log.New(os.Stderr, "", 0)).
		WithInterval(s.clock.Freq().Cycle(
			sim.VTimeInSec(opts.StatsInterval.Seconds()))).
		WithBusFreq(sim.Freq(opts.BusMHz) * sim.MHz).
		WithNumHotBlocks(opts.NumHotBlocks)

	symbolsPath, _ := f.GetString("symbols")
	if symbolsPath != "" {
		symbols, err := svm.LoadSymbols(symbolsPath)
		if err != nil {
			return nil, err
		}

		rb = rb.WithSymbols(symbols)
	}

	s.reporter = rb.Build()

	if opts.RecordPath != "" {
		err = s.attachRecorder(cmd, opts.RecordPath)
		if err != nil {
			return nil, err
		}
	}

	if monitor, _ := f.GetBool("monitor"); monitor {
		openBrowser, _ := f.GetBool("open-browser")

		s.monitor = monitoring.NewMonitor().
			WithPortNumber(opts.MonitorPort).
			WithBrowser(openBrowser)
		s.monitor.StartServer()
		s.reporter.AddSink(s.monitor)
	}

	return s, nil
}

func buildMapper(cmd *cobra.Command, opts config.Options) (*svm.Mapper, error) {
	mapper := svm.NewMapper(opts.Log2BlockSize)

	segments, _ := cmd.Flags().GetStringSlice("segment")
	if len(segments) == 0 {
		err := mapper.Map(svm.Segment{
			FlashAddr: 0,
			VirtAddr:  svm.FlashSegmentBase,
			Size:      uint32(opts.FlashSize.Bytes()),
		})

		return mapper, err
	}

	for _, text := range segments {
		seg, err := svm.ParseSegment(text)
		if err != nil {
			return nil, err
		}

		err = mapper.Map(seg)
		if err != nil {
			return nil, err
		}
	}

	return mapper, nil
}

func (s *session) attachRecorder(cmd *cobra.Command, path string) error {
	filename := datarecording.FileName(path)

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("recording %s already exists", filename)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("recording %s: %w", filename, err)
	}

	s.recorder = datarecording.New(filename)
	s.reporter.AddSink(flashtrace.NewReportRecorder(s.recorder))

	if accesses, _ := cmd.Flags().GetBool("record-accesses"); accesses {
		s.tracer = flashtrace.NewAccessTracer(s.clock, s.recorder)
		s.cache.AcceptHook(s.tracer)
	}

	return nil
}

func (s *session) close() {
	if s.recorder == nil {
		return
	}

	if s.tracer != nil {
		s.tracer.Terminate()
	}

	if err := s.recorder.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Closing recording: %v\n", err)
	}
}
