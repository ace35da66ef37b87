// Package svm provides the virtual machine's view of flash: where flash
// pages appear in the guest's virtual address space and what the debug
// symbols at those addresses are called.
package svm

import (
	"fmt"
	"sync"
)

// FlashSegmentBase is where the loader maps the first flash segment.
const FlashSegmentBase uint32 = 0x80000000

const addressSpaceSize = uint64(1) << 32

// A Segment maps a contiguous flash range into the virtual address space.
type Segment struct {
	FlashAddr uint32
	VirtAddr  uint32
	Size      uint32
}

// A Mapper translates flash offsets to virtual addresses page by page.
type Mapper struct {
	sync.Mutex
	log2PageSize uint
	pages        map[uint32]uint32
}

// NewMapper creates a mapper with 2^log2PageSize-byte pages.
func NewMapper(log2PageSize uint) *Mapper {
	return &Mapper{
		log2PageSize: log2PageSize,
		pages:        make(map[uint32]uint32),
	}
}

func (m *Mapper) pageSize() uint32 {
	return 1 << m.log2PageSize
}

func (m *Mapper) alignToPage(addr uint32) uint32 {
	return (addr >> m.log2PageSize) << m.log2PageSize
}

// Map installs a segment. Both addresses must be page aligned, and the
// segment must end within the 32-bit flash and virtual address spaces.
func (m *Mapper) Map(seg Segment) error {
	if m.alignToPage(seg.FlashAddr) != seg.FlashAddr ||
		m.alignToPage(seg.VirtAddr) != seg.VirtAddr {
		return fmt.Errorf("segment 0x%06x->0x%08x is not %d-byte aligned",
			seg.FlashAddr, seg.VirtAddr, m.pageSize())
	}

	if uint64(seg.FlashAddr)+uint64(seg.Size) > addressSpaceSize ||
		uint64(seg.VirtAddr)+uint64(seg.Size) > addressSpaceSize {
		return fmt.Errorf("segment 0x%06x->0x%08x of %d bytes "+
			"overflows the address space", seg.FlashAddr, seg.VirtAddr, seg.Size)
	}

	m.Lock()
	defer m.Unlock()

	for off := uint64(0); off < uint64(seg.Size); off += uint64(m.pageSize()) {
		m.pages[seg.FlashAddr+uint32(off)] = seg.VirtAddr + uint32(off)
	}

	return nil
}

// Unmap removes the pages of a segment.
func (m *Mapper) Unmap(seg Segment) {
	m.Lock()
	defer m.Unlock()

	for off := uint64(0); off < uint64(seg.Size); off += uint64(m.pageSize()) {
		delete(m.pages, m.alignToPage(seg.FlashAddr+uint32(off)))
	}
}

// FlashToVirtAddr returns the virtual address of a flash offset, or 0 if no
// segment maps it.
func (m *Mapper) FlashToVirtAddr(flashOffset uint32) uint32 {
	m.Lock()
	defer m.Unlock()

	base := m.alignToPage(flashOffset)

	va, found := m.pages[base]
	if !found {
		return 0
	}

	return va + (flashOffset - base)
}

// ParseSegment parses "flash:va:size" with hexadecimal or decimal numbers,
// e.g. "0x1000:0x80000000:0x4000".
func ParseSegment(s string) (Segment, error) {
	var seg Segment

	n, err := fmt.Sscanf(s, "%v:%v:%v", &seg.FlashAddr, &seg.VirtAddr, &seg.Size)
	if err != nil || n != 3 {
		return Segment{}, fmt.Errorf("invalid segment %q, want flash:va:size", s)
	}

	return seg, nil
}
