package tagging

// A VictimFinder decides which slot receives a block that missed.
type VictimFinder interface {
	FindVictim(tags TagArray, blockAddr uint32) Block
}

// LRUVictimFinder picks the least recently used slot, sparing the slots that
// somebody holds for as long as it can.
type LRUVictimFinder struct{}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// FindVictim returns the least recently used unpinned block in the set,
// preferring empty slots. When every way is pinned, the least recently used
// way is taken anyway. Its holders keep their pins, and their next lookup
// misses because the tag has changed.
func (e *LRUVictimFinder) FindVictim(
	tags TagArray,
	blockAddr uint32,
) Block {
	set, _ := tags.GetSet(blockAddr)

	for _, wayID := range set.LRUQueue {
		block := set.Blocks[wayID]
		if !block.IsValid && block.RefCount == 0 {
			return block
		}
	}

	for _, wayID := range set.LRUQueue {
		block := set.Blocks[wayID]
		if block.RefCount == 0 {
			return block
		}
	}

	return set.Blocks[set.LRUQueue[0]]
}
