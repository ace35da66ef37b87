// Package blockcache caches fixed-size blocks of a simulated serial flash
// device so that the virtual machine can read flash at RAM speed, and counts
// how well it does so.
package blockcache

import (
	"fmt"

	"github.com/sarchlab/flashsim/flash/blockcache/internal/tagging"
)

// A Device is the flash part behind the cache. It owns the authoritative
// contents.
type Device interface {
	Capacity() uint64
	Read(address uint32, buf []byte) error
	Verify(address uint32, data []byte) error
}

// A Block is a cached copy of one flash block.
type Block struct {
	arena *Arena
	setID int
	wayID int
	slot  int

	Number  uint32
	Address uint32
}

// Data returns the cached bytes of the block. The slice aliases the arena
// and must be treated as read-only.
func (b *Block) Data() []byte {
	return b.arena.Slot(b.slot)
}

// Slot returns the index of the arena slot that holds the block.
func (b *Block) Slot() int {
	return b.slot
}

// Offset returns the arena offset of the block data.
func (b *Block) Offset() int64 {
	return b.arena.SlotOffset(b.slot)
}

// A Ref is a requester's handle on the block it accessed last. A held block
// is pinned and is evicted only when every way of its set is held. The zero
// value holds nothing.
type Ref struct {
	cache *Cache
	block *Block
}

// Block returns the held block, or nil.
func (r *Ref) Block() *Block {
	return r.block
}

// Release drops the held block, if any.
func (r *Ref) Release() {
	if r.block == nil {
		return
	}

	r.cache.tags.Unpin(r.block.setID, r.block.wayID)
	r.block = nil
	r.cache = nil
}

// Cache is a set-associative, LRU-replaced cache of flash blocks.
type Cache struct {
	hookable

	space        AddressSpace
	arena        *Arena
	device       Device
	stats        *Stats
	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
	blocks       []Block

	verifyOnAccess bool
}

// AddressSpace returns the block geometry of the cache.
func (c *Cache) AddressSpace() AddressSpace {
	return c.space
}

// Arena returns the memory that holds the cached blocks.
func (c *Cache) Arena() *Arena {
	return c.arena
}

// Capacity returns the number of bytes of the device behind the cache.
func (c *Cache) Capacity() uint64 {
	return c.device.Capacity()
}

// Stats returns the statistics the cache records into.
func (c *Cache) Stats() *Stats {
	return c.stats
}

// Get returns the cached block that covers address, loading it from the
// device on a miss. The block is held by ref until ref is released or used
// for a lookup of another block.
func (c *Cache) Get(ref *Ref, address uint32) *Block {
	blockAddr := c.space.BlockAddress(address)

	if c.holds(ref, blockAddr) {
		c.stats.RecordHitSame()
		c.tags.Visit(c.tagOf(ref.block))
		c.invokeHook(HookPosBlockHitSame, ref.block, address)

		return c.checked(ref.block)
	}

	ref.Release()

	pos := HookPosBlockHitOther

	tag, found := c.tags.Lookup(blockAddr)
	if found {
		c.stats.RecordHitOther()
	} else {
		c.stats.RecordMiss(blockAddr)
		tag = c.fill(blockAddr)
		pos = HookPosBlockMiss
	}

	c.tags.Visit(tag)
	block := c.hold(ref, tag)
	c.invokeHook(pos, block, address)

	return c.checked(block)
}

// Read copies len(buf) bytes starting at address into buf. Every block the
// range touches counts as one lookup.
func (c *Cache) Read(ref *Ref, address uint32, buf []byte) {
	for len(buf) > 0 {
		block := c.Get(ref, address)
		n := copy(buf, block.Data()[c.space.BlockOffset(address):])

		buf = buf[n:]
		address += uint32(n)
	}
}

// Invalidate drops every cached block that overlaps [start, end). Refs that
// hold such a block keep it pinned, but their next lookup misses.
func (c *Cache) Invalidate(start, end uint32) {
	blockSize := uint64(c.space.BlockSize())

	for i := range c.blocks {
		b := &c.blocks[i]
		tag := c.tags.Get(b.setID, b.wayID)

		if !tag.IsValid {
			continue
		}

		if uint64(tag.Tag)+blockSize <= uint64(start) || tag.Tag >= end {
			continue
		}

		tag.IsValid = false
		c.tags.Update(tag)
	}
}

// Verify compares the block with the device contents at its address.
func (c *Cache) Verify(block *Block) error {
	return c.device.Verify(block.Address, block.Data())
}

// MustVerify panics if the block does not match the device. A mismatch means
// the cache itself is broken.
func (c *Cache) MustVerify(block *Block) {
	if err := c.Verify(block); err != nil {
		panic(fmt.Sprintf("flash block cache is incoherent: %v", err))
	}
}

func (c *Cache) holds(ref *Ref, blockAddr uint32) bool {
	if ref.block == nil {
		return false
	}

	if ref.cache != c {
		panic("ref is held by another cache")
	}

	tag := c.tagOf(ref.block)

	return tag.IsValid && tag.Tag == blockAddr
}

func (c *Cache) tagOf(b *Block) tagging.Block {
	return c.tags.Get(b.setID, b.wayID)
}

func (c *Cache) hold(ref *Ref, tag tagging.Block) *Block {
	c.tags.Pin(tag.SetID, tag.WayID)
	ref.cache = c
	ref.block = &c.blocks[tag.Slot]

	return ref.block
}

func (c *Cache) fill(blockAddr uint32) tagging.Block {
	victim := c.victimFinder.FindVictim(c.tags, blockAddr)
	block := &c.blocks[victim.Slot]

	err := c.device.Read(blockAddr, block.Data())
	if err != nil {
		panic(fmt.Sprintf("loading flash block 0x%06x: %v", blockAddr, err))
	}

	block.Number = c.space.BlockNumber(blockAddr)
	block.Address = blockAddr

	victim.Tag = blockAddr
	victim.IsValid = true
	c.tags.Update(victim)

	return c.tags.Get(victim.SetID, victim.WayID)
}

func (c *Cache) checked(block *Block) *Block {
	if !c.verifyOnAccess {
		return block
	}

	if !c.arena.IsValid(block.Offset()) {
		panic(fmt.Sprintf("block at arena offset %d is outside the arena",
			block.Offset()))
	}

	c.MustVerify(block)

	return block
}
