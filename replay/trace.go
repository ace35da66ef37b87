// Package replay drives a flash block cache with a recorded access trace.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/flashsim/sim"
)

// DefaultRequester owns the accesses that do not name a requester.
const DefaultRequester = "cpu"

// Kind tells reads from invalidations.
type Kind int

// Kinds of trace records.
const (
	KindRead Kind = iota
	KindInvalidate
)

// An Access is one record of a trace.
//
// Reads are written as
//
//	<tick> <hex address> [<length>] [<requester>]
//
// and invalidations, which the loader issues after erasing flash, as
//
//	<tick> invalidate <hex start> <hex end>
//
// Ticks must not decrease.
type Access struct {
	Tick      sim.Ticks
	Kind      Kind
	Address   uint32
	Length    uint32
	End       uint32
	Requester string
}

// A ParseError points at a malformed trace line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrTickDecreases is wrapped by a ParseError when a record is older than the
// one before it.
var ErrTickDecreases = errors.New("tick is smaller than the previous one")

// ParseTrace reads a whole trace. Blank lines and '#' comments are skipped.
func ParseTrace(r io.Reader) ([]Access, error) {
	var (
		accesses []Access
		lastTick sim.Ticks
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		access, err := parseLine(line)
		if err == nil && access.Tick < lastTick {
			err = ErrTickDecreases
		}

		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}

		lastTick = access.Tick
		accesses = append(accesses, access)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return accesses, nil
}

// LoadTrace reads a trace file.
func LoadTrace(path string) ([]Access, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading trace: %w", err)
	}
	defer f.Close()

	return ParseTrace(f)
}

func parseLine(line string) (Access, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Access{}, errors.New("want at least a tick and an address")
	}

	tick, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Access{}, fmt.Errorf("tick: %w", err)
	}

	if fields[1] == "invalidate" {
		return parseInvalidate(sim.Ticks(tick), fields[2:])
	}

	return parseRead(sim.Ticks(tick), fields[1:])
}

func parseRead(tick sim.Ticks, fields []string) (Access, error) {
	if len(fields) > 3 {
		return Access{}, errors.New("too many fields")
	}

	access := Access{
		Tick:      tick,
		Kind:      KindRead,
		Length:    1,
		Requester: DefaultRequester,
	}

	addr, err := parseHex(fields[0])
	if err != nil {
		return Access{}, fmt.Errorf("address: %w", err)
	}

	access.Address = addr

	if len(fields) >= 2 {
		n, err := strconv.ParseUint(fields[1], 0, 32)
		if err != nil {
			return Access{}, fmt.Errorf("length: %w", err)
		}

		if n == 0 {
			return Access{}, errors.New("length must be positive")
		}

		access.Length = uint32(n)
	}

	if len(fields) == 3 {
		access.Requester = fields[2]
	}

	return access, nil
}

func parseInvalidate(tick sim.Ticks, fields []string) (Access, error) {
	if len(fields) != 2 {
		return Access{}, errors.New("invalidate wants a start and an end")
	}

	start, err := parseHex(fields[0])
	if err != nil {
		return Access{}, fmt.Errorf("start: %w", err)
	}

	end, err := parseHex(fields[1])
	if err != nil {
		return Access{}, fmt.Errorf("end: %w", err)
	}

	if end < start {
		return Access{}, errors.New("end is before start")
	}

	return Access{
		Tick:    tick,
		Kind:    KindInvalidate,
		Address: start,
		End:     end,
	}, nil
}

func parseHex(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, err
	}

	return uint32(v), nil
}
