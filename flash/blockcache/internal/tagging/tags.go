// Package tagging keeps track of which flash block each cache slot holds.
package tagging

import "fmt"

// TagArray maps block-aligned flash addresses to cache slots.
type TagArray interface {
	Lookup(blockAddr uint32) (Block, bool)
	Update(block Block)
	Visit(block Block)
	GetSet(blockAddr uint32) (set *Set, setID int)
	Get(setID, wayID int) Block
	Pin(setID, wayID int)
	Unpin(setID, wayID int)
	Reset()
}

// NewTagArray creates a tag array with numSets sets of numWays ways each.
// Slot numbers are assigned set by set, so slot = setID*numWays + wayID.
func NewTagArray(
	numSets int,
	numWays int,
	blockSize uint32,
) TagArray {
	if numSets <= 0 || numWays <= 0 {
		panic(fmt.Sprintf("invalid cache geometry %d x %d", numSets, numWays))
	}

	t := &tagArrayImpl{
		NumSets:   numSets,
		NumWays:   numWays,
		BlockSize: blockSize,
	}

	t.Reset()

	return t
}

// A Block is the bookkeeping for one cache slot.
type Block struct {
	Tag      uint32
	SetID    int
	WayID    int
	Slot     int
	IsValid  bool
	RefCount int
}

// A Set is a list of blocks where a certain flash block can be stored.
// LRUQueue lists way IDs from least to most recently used.
type Set struct {
	Blocks   []Block
	LRUQueue []int
}

type tagArrayImpl struct {
	NumSets   int
	NumWays   int
	BlockSize uint32
	Sets      []Set
}

// GetSet returns the set that a block address maps to.
func (t *tagArrayImpl) GetSet(blockAddr uint32) (set *Set, setID int) {
	setID = int(blockAddr / t.BlockSize % uint32(t.NumSets))
	set = &t.Sets[setID]

	return
}

// Lookup finds the valid block holding blockAddr.
func (t *tagArrayImpl) Lookup(blockAddr uint32) (Block, bool) {
	set, _ := t.GetSet(blockAddr)
	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == blockAddr {
			return block, true
		}
	}

	return Block{}, false
}

// Get returns the bookkeeping of one way.
func (t *tagArrayImpl) Get(setID, wayID int) Block {
	return t.Sets[setID].Blocks[wayID]
}

// Update overwrites the bookkeeping of the way named by block. The reference
// count of the slot is kept, since it belongs to the holders, not the filler.
func (t *tagArrayImpl) Update(block Block) {
	slot := &t.Sets[block.SetID].Blocks[block.WayID]
	block.RefCount = slot.RefCount
	*slot = block
}

// Visit moves the block to the end of the LRU queue.
func (t *tagArrayImpl) Visit(block Block) {
	set := &t.Sets[block.SetID]
	queue := set.LRUQueue[:0]

	for _, w := range set.LRUQueue {
		if w != block.WayID {
			queue = append(queue, w)
		}
	}

	set.LRUQueue = append(queue, block.WayID)
}

// Pin marks one more holder of the slot.
func (t *tagArrayImpl) Pin(setID, wayID int) {
	t.Sets[setID].Blocks[wayID].RefCount++
}

// Unpin drops a holder of the slot.
func (t *tagArrayImpl) Unpin(setID, wayID int) {
	b := &t.Sets[setID].Blocks[wayID]
	if b.RefCount == 0 {
		panic(fmt.Sprintf("unpinning slot %d that is not pinned", b.Slot))
	}

	b.RefCount--
}

// Reset marks all the blocks invalid and drops every pin.
func (t *tagArrayImpl) Reset() {
	t.Sets = make([]Set, t.NumSets)
	for i := 0; i < t.NumSets; i++ {
		t.Sets[i].Blocks = make([]Block, 0, t.NumWays)
		t.Sets[i].LRUQueue = make([]int, 0, t.NumWays)

		for j := 0; j < t.NumWays; j++ {
			t.Sets[i].Blocks = append(t.Sets[i].Blocks, Block{
				SetID: i,
				WayID: j,
				Slot:  i*t.NumWays + j,
			})
			t.Sets[i].LRUQueue = append(t.Sets[i].LRUQueue, j)
		}
	}
}
