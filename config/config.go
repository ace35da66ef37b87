// Package config collects the options of a flash simulation from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix starts the name of every environment variable read by Load,
// followed by an underscore.
const EnvPrefix = "FLASHSIM"

// Options configures a simulation run.
type Options struct {
	// FlashStats turns the periodic FLASH statistics lines on.
	FlashStats bool `split_words:"true"`

	// StatsInterval is the simulated time between two reports.
	StatsInterval time.Duration `split_words:"true"`

	BusMHz        float64           `envconfig:"BUS_MHZ"`
	ClockMHz      float64           `envconfig:"CLOCK_MHZ"`
	Log2BlockSize uint              `split_words:"true"`
	NumBlocks     int               `split_words:"true"`
	Ways          int               `split_words:"true"`
	FlashSize     datasize.ByteSize `split_words:"true"`
	Verify        bool              `split_words:"true"`
	NumHotBlocks  int               `split_words:"true"`

	MonitorPort int    `split_words:"true"`
	RecordPath  string `envconfig:"RECORD"`
}

// Defaults returns the options of the device: a 16 MB flash behind a 16 block
// cache of 256 byte blocks on an 18 MHz bus.
func Defaults() Options {
	return Options{
		StatsInterval: time.Second,
		BusMHz:        18,
		ClockMHz:      16,
		Log2BlockSize: 8,
		NumBlocks:     16,
		Ways:          16,
		FlashSize:     16 * datasize.MB,
		NumHotBlocks:  10,
	}
}

// FlashStatsEnabled tells the reporter whether to run.
func (o Options) FlashStatsEnabled() bool {
	return o.FlashStats
}

// Validate checks that the options describe a buildable cache.
func (o Options) Validate() error {
	switch {
	case o.NumBlocks <= 0:
		return errors.New("number of blocks must be positive")
	case o.Ways <= 0 || o.NumBlocks%o.Ways != 0:
		return fmt.Errorf("%d blocks cannot be split into %d ways",
			o.NumBlocks, o.Ways)
	case o.Log2BlockSize == 0 || o.Log2BlockSize > 20:
		return fmt.Errorf("block size 2^%d is not supported", o.Log2BlockSize)
	case o.FlashSize == 0 || o.FlashSize.Bytes() > math.MaxUint32:
		return fmt.Errorf("flash size %s does not fit a 32-bit address space",
			o.FlashSize.HumanReadable())
	case o.FlashSize.Bytes()%(1<<o.Log2BlockSize) != 0:
		return fmt.Errorf("flash size %s is not a multiple of the block size",
			o.FlashSize.HumanReadable())
	case o.BusMHz <= 0 || o.ClockMHz <= 0:
		return errors.New("frequencies must be positive")
	case o.StatsInterval < 0:
		return errors.New("stats interval must not be negative")
	case o.StatsInterval > 0 && o.intervalTicks() == 0:
		return fmt.Errorf("stats interval %s is shorter than a tick at %g MHz",
			o.StatsInterval, o.ClockMHz)
	}

	return nil
}

// intervalTicks rounds StatsInterval to clock ticks the way sim.Freq.Cycle
// does.
func (o Options) intervalTicks() float64 {
	return math.Round(o.StatsInterval.Seconds() * o.ClockMHz * 1e6)
}

// Load reads envFile, if it exists, into the environment and then builds
// Options from the FLASHSIM_* variables on top of Defaults. Variables that are
// already set win over the file. An empty envFile means ".env".
func Load(envFile string) (Options, error) {
	if envFile == "" {
		envFile = ".env"
	}

	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Options{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	return FromEnv()
}

// FromEnv builds Options from the FLASHSIM_* variables of the process
// environment on top of Defaults. Unset variables keep their defaults.
func FromEnv() (Options, error) {
	o := Defaults()

	err := envconfig.Process(EnvPrefix, &o)
	if err != nil {
		return Options{}, err
	}

	return o, nil
}
