// Package allocator implements the hierarchical region-based memory
// allocator at the heart of the runtime-services library: pool-scoped
// lifetimes, cleanup handlers, and subprocess lifecycle hooks so that
// destroying a single region deterministically releases everything it
// owns, memory or not.
package allocator

import "time"

// CLICK is the allocator's universal alignment quantum. Every allocation
// and the block header itself are rounded up to a multiple of CLICK.
const CLICK = 8

// BlockMinAlloc is the minimum usable size of a freshly acquired block.
const BlockMinAlloc = 8192

// BlockMinFree is the residual capacity a free-list block must have,
// beyond the requested size, to be considered a fit during acquisition.
const BlockMinFree = 4096

// SubprocessGraceInterval is the single, batched sleep between sending
// graceful-termination signals and escalating to a hard kill.
const SubprocessGraceInterval = 3 * time.Second

// Config carries the runtime-tunable debug toggles for a root pool.
// The structural tunables (CLICK, BlockMinAlloc, BlockMinFree, the grace
// interval) are compile-time constants per the allocator's contract;
// Config only ever affects observability, never allocation semantics.
type Config struct {
	// FillOnFree overwrites a block's usable bytes with a poison pattern
	// when it is returned to the free-list, to make use-after-free of a
	// cleared pool's memory easier to spot under a debugger.
	FillOnFree bool

	// TrackAllocations enables the block-level observer hooks that feed
	// per-pool allocation statistics. Disabled by default: the hooks are
	// on the hot allocation path.
	TrackAllocations bool

	// Observer receives OnAllocate/OnFree notifications when
	// TrackAllocations is enabled. Defaults to a no-op.
	Observer BlockObserver
}

// Option configures a Config.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		FillOnFree:       false,
		TrackAllocations: false,
		Observer:         noopObserver{},
	}
}

// WithFillOnFree toggles free-pattern poisoning of reclaimed blocks.
func WithFillOnFree(enabled bool) Option {
	return func(c *Config) { c.FillOnFree = enabled }
}

// WithTrackAllocations toggles the allocation-stats observer hooks.
func WithTrackAllocations(enabled bool) Option {
	return func(c *Config) { c.TrackAllocations = enabled }
}

// WithObserver installs a custom BlockObserver. Passing nil restores the
// no-op observer.
func WithObserver(o BlockObserver) Option {
	return func(c *Config) {
		if o == nil {
			o = noopObserver{}
		}

		c.Observer = o
	}
}

func alignUp(size uintptr) uintptr {
	const a = CLICK

	return (size + a - 1) &^ (a - 1)
}
