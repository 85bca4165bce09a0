package allocator

import "sync"

// BlockObserver is a pluggable hook into the block lifecycle. Allocation
// statistics, a compile-time debug switch in the original allocator, are
// modeled here as an observer rather than a build tag, so it can be
// swapped at runtime per Config. Fill-on-free poisoning is not an
// observer: it is the Config.FillOnFree flag, applied by the pool itself
// (see poisonChain). There is no mmap-per-allocation debug mode.
type BlockObserver interface {
	// OnAllocate is called after a bump allocation succeeds within a block.
	OnAllocate(poolName string, size uintptr)
	// OnFree is called once per block returned to the free-list.
	OnFree(poolName string, size uintptr)
}

type noopObserver struct{}

func (noopObserver) OnAllocate(string, uintptr) {}
func (noopObserver) OnFree(string, uintptr)     {}

// StatsSnapshot is a point-in-time copy of a StatsObserver's counters.
type StatsSnapshot struct {
	AllocationCount uint64
	FreeCount       uint64
	BytesAllocated  uintptr
	BytesFreed      uintptr
}

// StatsObserver accumulates allocation/free counts and bytes across all
// pools sharing it, for debug builds that want a running census without
// walking the free-list.
type StatsObserver struct {
	mu              sync.Mutex
	allocationCount uint64
	freeCount       uint64
	bytesAllocated  uintptr
	bytesFreed      uintptr
}

// NewStatsObserver creates a StatsObserver ready for concurrent use from
// multiple pools (pools are thread-confined individually, but several
// pools on several threads may share one observer).
func NewStatsObserver() *StatsObserver {
	return &StatsObserver{}
}

// OnAllocate implements BlockObserver.
func (s *StatsObserver) OnAllocate(_ string, size uintptr) {
	s.mu.Lock()
	s.allocationCount++
	s.bytesAllocated += size
	s.mu.Unlock()
}

// OnFree implements BlockObserver.
func (s *StatsObserver) OnFree(_ string, size uintptr) {
	s.mu.Lock()
	s.freeCount++
	s.bytesFreed += size
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of the accumulated counters.
func (s *StatsObserver) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsSnapshot{
		AllocationCount: s.allocationCount,
		FreeCount:       s.freeCount,
		BytesAllocated:  s.bytesAllocated,
		BytesFreed:      s.bytesFreed,
	}
}
