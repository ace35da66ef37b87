package blockcache

import "fmt"

// DefaultLog2BlockSize gives 256-byte blocks, the page size of the serial
// flash part.
const DefaultLog2BlockSize = 8

// An AddressSpace splits flash byte addresses into fixed-size blocks.
type AddressSpace struct {
	log2BlockSize uint
}

// NewAddressSpace creates an address space with 2^log2BlockSize-byte blocks.
func NewAddressSpace(log2BlockSize uint) AddressSpace {
	if log2BlockSize == 0 || log2BlockSize > 20 {
		panic(fmt.Sprintf("unsupported block size 2^%d", log2BlockSize))
	}

	return AddressSpace{log2BlockSize: log2BlockSize}
}

// BlockSize returns the number of bytes in a block.
func (s AddressSpace) BlockSize() uint32 {
	return 1 << s.log2BlockSize
}

// BlockNumber returns the number of the block containing addr.
func (s AddressSpace) BlockNumber(addr uint32) uint32 {
	return addr >> s.log2BlockSize
}

// BlockAddress returns the block-aligned base of addr.
func (s AddressSpace) BlockAddress(addr uint32) uint32 {
	return addr &^ (s.BlockSize() - 1)
}

// BlockOffset returns the position of addr inside its block.
func (s AddressSpace) BlockOffset(addr uint32) uint32 {
	return addr & (s.BlockSize() - 1)
}

// NumBlocks returns how many blocks cover a device of the given capacity.
func (s AddressSpace) NumBlocks(capacity uint64) int {
	size := uint64(s.BlockSize())
	return int((capacity + size - 1) / size)
}

// An Arena is the single buffer that holds the data of every cache slot.
// Anything outside the cache refers to a slot by index or by byte offset into
// the arena.
type Arena struct {
	blockSize int
	mem       []byte
}

// NewArena allocates room for numSlots blocks.
func NewArena(space AddressSpace, numSlots int) *Arena {
	if numSlots <= 0 {
		panic("an arena needs at least one slot")
	}

	blockSize := int(space.BlockSize())

	return &Arena{
		blockSize: blockSize,
		mem:       make([]byte, blockSize*numSlots),
	}
}

// Size returns the number of bytes in the arena.
func (a *Arena) Size() int64 {
	return int64(len(a.mem))
}

// NumSlots returns the number of blocks the arena holds.
func (a *Arena) NumSlots() int {
	return len(a.mem) / a.blockSize
}

// IsValid tells if offset points into the arena. It never panics.
func (a *Arena) IsValid(offset int64) bool {
	return offset >= 0 && offset < int64(len(a.mem))
}

// SlotOffset returns the arena offset where a slot starts.
func (a *Arena) SlotOffset(slot int) int64 {
	return int64(slot) * int64(a.blockSize)
}

// Slot returns the data of one slot. The returned slice cannot grow into the
// next slot.
func (a *Arena) Slot(slot int) []byte {
	start := a.SlotOffset(slot)
	if slot < 0 || !a.IsValid(start) {
		panic(fmt.Sprintf("slot %d outside of arena with %d slots",
			slot, a.NumSlots()))
	}

	end := start + int64(a.blockSize)

	return a.mem[start:end:end]
}
