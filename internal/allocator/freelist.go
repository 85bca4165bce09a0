package allocator

import (
	"sync"
	"sync/atomic"
)

// freeList is the process-wide, ordered sequence of reusable blocks,
// guarded by a single mutex. It is an unbounded LIFO: the most recently
// freed blocks are hottest in cache and are served first.
//
// Acquisition of the lock is unconditional once the list has been
// activated; before that (single-threaded process bootstrap, i.e.
// before AllocInit has finished constructing the root pool) the lock is
// skipped entirely. activated starts false on every freeList, including
// freshly constructed isolated handles obtained via NewHandle, and is
// flipped exactly once.
type freeList struct {
	mu        sync.Mutex
	head      *Block
	activated atomic.Bool

	sysAllocCount uint64 // census counter for tests: how many times the system allocator was invoked
}

func (f *freeList) withLock(fn func()) {
	if f.activated.Load() {
		f.mu.Lock()
		defer f.mu.Unlock()
	}

	fn()
}

// acquire returns a block with residual capacity >= requested +
// BlockMinFree, first-fit scanning the free-list, or obtains a fresh
// block from the system allocator sized max(requested+BlockMinFree,
// BlockMinAlloc) if none fits.
func (f *freeList) acquire(requested uintptr) *Block {
	var found *Block

	f.withLock(func() {
		var prev *Block

		cur := f.head
		for cur != nil {
			if cur.residual() >= requested+BlockMinFree {
				if prev == nil {
					f.head = cur.next
				} else {
					prev.next = cur.next
				}

				cur.next = nil
				found = cur

				return
			}

			prev = cur
			cur = cur.next
		}
	})

	if found != nil {
		return found
	}

	size := requested + BlockMinFree
	if size < BlockMinAlloc {
		size = BlockMinAlloc
	}

	atomic.AddUint64(&f.sysAllocCount, 1)

	return newSystemBlock(size)
}

// release prepends the chain headed by chain to the free-list in O(chain
// length), resetting each block's bump pointer first so its residual
// capacity is its full usable length again.
func (f *freeList) release(chain *Block) {
	if chain == nil {
		return
	}

	tail := chain
	for b := chain; b != nil; b = b.next {
		b.reset()
		tail = b
	}

	f.withLock(func() {
		tail.next = f.head
		f.head = chain
	})
}

// census reports how many blocks currently sit on the free-list. Used by
// tests that observe block reuse without reaching into private state via
// anything other than this package.
func (f *freeList) census() int {
	n := 0

	f.withLock(func() {
		for b := f.head; b != nil; b = b.next {
			n++
		}
	})

	return n
}

func (f *freeList) systemAllocations() uint64 {
	return atomic.LoadUint64(&f.sysAllocCount)
}
