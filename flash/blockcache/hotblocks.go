package blockcache

import "sort"

// A HotBlock is a block that missed repeatedly in the current interval.
type HotBlock struct {
	Number uint32
	Misses uint32
}

// RankHotBlocks returns at most n blocks ordered by descending miss count.
// Blocks with equal counts keep ascending block-number order. Blocks that
// never missed are left out, so the result can be shorter than n.
func RankHotBlocks(missCounts []uint32, n int) []HotBlock {
	if n <= 0 {
		return nil
	}

	top := make([]HotBlock, 0, n)

	for number, misses := range missCounts {
		if misses == 0 {
			continue
		}

		if len(top) == n && misses <= top[n-1].Misses {
			continue
		}

		pos := sort.Search(len(top), func(i int) bool {
			return top[i].Misses < misses
		})

		if len(top) < n {
			top = append(top, HotBlock{})
		}

		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = HotBlock{Number: uint32(number), Misses: misses}
	}

	return top
}
