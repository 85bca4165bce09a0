package allocator

import (
	"fmt"
	"log"

	errs "github.com/kestrelrt/region/internal/errors"
)

// Status is the error type passed to an AbortFunc.
type Status = error

// AbortFunc is invoked when the system allocator cannot satisfy a block
// request. Returning true tells the caller "I've handled it, resume by
// observing a nil allocation result"; the callback may instead terminate
// the process itself (os.Exit, panic) and never return at all.
type AbortFunc func(status Status) (resume bool)

// CleanupFn is a cleanup callback. A non-nil error is logged but never
// aborts pool teardown — destruction is infallible.
type CleanupFn func(data interface{}) error

type cleanupRecord struct {
	data  interface{}
	plain CleanupFn
	child CleanupFn
	next  *cleanupRecord
}

// Pool is a lifetime-scoped allocator: every allocation made against it,
// every cleanup and subprocess registered on it, and every descendant
// pool created under it are released together when the pool is cleared
// or destroyed.
//
// Pool is thread-confined by contract: allocations and registrations on
// a given pool must be serialized by the caller. The
// parent/child links form a tree with both directions, but only the
// parent→child direction is an owning reference; the child's parent
// pointer and sibling pointers exist solely so a pool can detach itself
// from its parent's child list in O(1) — modeled here as plain pointers
// rather than symmetric strong references because Go's garbage collector
// (not manual refcounting) is what actually reclaims a *Pool's own
// memory once Destroy has severed these links.
type Pool struct {
	handle *Handle

	parent      *Pool
	firstChild  *Pool
	nextSibling *Pool
	prevSibling *Pool

	first *Block
	last  *Block

	freeFirstAvail int

	cleanups *cleanupRecord
	subprocs []*subprocessRecord
	userdata map[string]interface{}

	abortFn AbortFunc
	logger  *log.Logger
	config  *Config
}

// newPool acquires a header block and wires parent/child links. parent
// may be nil only for the permanent root pool created by AllocInit.
func newPool(parent *Pool, handle *Handle) (*Pool, error) {
	blk := handle.fl.acquire(poolHeaderReserve)
	if blk == nil {
		return nil, errs.OutOfMemory(poolHeaderReserve)
	}

	blk.alloc(poolHeaderReserve)

	p := &Pool{
		handle:         handle,
		first:          blk,
		last:           blk,
		freeFirstAvail: blk.firstAvail,
		config:         defaultConfig(),
	}

	if parent != nil {
		p.parent = parent
		p.abortFn = parent.abortFn
		p.logger = parent.logger
		p.config = parent.config
		parent.addChild(p)
	}

	return p, nil
}

// PoolCreate creates a new child pool. A nil parent uses the permanent
// root pool bootstrapped by AllocInit; if none exists, NoPool is
// returned. The child inherits its parent's Config until one of opts
// overrides it; a child never mutates its parent's Config in place.
func PoolCreate(parent *Pool, opts ...Option) (*Pool, error) {
	if parent == nil {
		if globalRoot == nil {
			return nil, errs.NoPool()
		}

		parent = globalRoot
	}

	p, err := newPool(parent, parent.handle)
	if err != nil {
		return nil, err
	}

	if len(opts) > 0 {
		p.Configure(opts...)
	}

	return p, nil
}

// Configure applies opts to a private copy of p's Config, so sibling and
// parent pools sharing the previous Config are unaffected.
func (p *Pool) Configure(opts ...Option) {
	cfg := *p.config
	for _, opt := range opts {
		opt(&cfg)
	}

	p.config = &cfg
}

func (p *Pool) addChild(c *Pool) {
	c.nextSibling = p.firstChild
	c.prevSibling = nil

	if p.firstChild != nil {
		p.firstChild.prevSibling = c
	}

	p.firstChild = c
}

// detachSelf removes p from its parent's child list in O(1) using the
// doubly linked sibling list.
func (p *Pool) detachSelf() {
	if p.parent == nil {
		return
	}

	if p.prevSibling != nil {
		p.prevSibling.nextSibling = p.nextSibling
	} else {
		p.parent.firstChild = p.nextSibling
	}

	if p.nextSibling != nil {
		p.nextSibling.prevSibling = p.prevSibling
	}

	p.nextSibling = nil
	p.prevSibling = nil
}

// Clear destroys every child pool, fires cleanups in registration-LIFO
// order, reaps subprocesses, and returns every block but the first to
// the free-list, in that order. Calling Clear on an empty pool, or twice
// in a row, is a safe no-op.
func (p *Pool) Clear() {
	for p.firstChild != nil {
		p.firstChild.Destroy()
	}

	p.runCleanups()
	p.reapSubprocesses()

	if p.first != nil && p.first.next != nil {
		p.poisonChain(p.first.next)
		p.notifyChainFreed(p.first.next)
		p.handle.fl.release(p.first.next)
		p.first.next = nil
	}

	if p.first != nil {
		p.first.firstAvail = p.freeFirstAvail
	}

	p.last = p.first
	p.userdata = nil
}

// Destroy clears the pool, detaches it from its parent, and returns its
// first block to the free-list. After Destroy, p.first is nil, so any
// further allocation against p panics deterministically rather than
// corrupting freed memory.
func (p *Pool) Destroy() {
	p.Clear()
	p.detachSelf()

	if p.first != nil {
		p.poisonChain(p.first)
		p.notifyChainFreed(p.first)
		p.handle.fl.release(p.first)
	}

	p.first = nil
	p.last = nil
	p.parent = nil
}

func (p *Pool) notifyChainFreed(chain *Block) {
	if p.config == nil || !p.config.TrackAllocations || p.config.Observer == nil {
		return
	}

	for b := chain; b != nil; b = b.next {
		p.config.Observer.OnFree(p.label(), uintptr(len(b.buf)))
	}
}

// freePoisonByte fills a block's usable bytes on release so a use-after-free
// through a stale pointer reads a recognizable pattern instead of silently
// working. Mirrors apr's debug FILL_BYTE, gated behind Config.FillOnFree
// since it costs a full memset per released block.
const freePoisonByte = 0xDF

// poisonChain overwrites every block's entire buffer with freePoisonByte
// when FillOnFree is enabled. Must run before the chain is handed back to
// the free-list, since acquire() can reuse the backing array verbatim.
func (p *Pool) poisonChain(chain *Block) {
	if p.config == nil || !p.config.FillOnFree {
		return
	}

	for b := chain; b != nil; b = b.next {
		for i := range b.buf {
			b.buf[i] = freePoisonByte
		}
	}
}

// IsAncestor reports whether a is nil (the implicit root of everything)
// or appears on b's parent chain, including a == b itself.
func IsAncestor(a, b *Pool) bool {
	if a == nil {
		return true
	}

	for cur := b; cur != nil; cur = cur.parent {
		if cur == a {
			return true
		}
	}

	return false
}

// SetAbort installs the allocation-failure callback, inherited by pools
// created under p from this point forward.
func (p *Pool) SetAbort(fn AbortFunc) { p.abortFn = fn }

// GetAbort returns the currently installed abort callback, or nil.
func (p *Pool) GetAbort() AbortFunc { return p.abortFn }

// SetLogger installs the logger used for cleanup-failure and subprocess
// diagnostics on this pool and its future descendants. A nil logger
// silences logging.
func (p *Pool) SetLogger(l *log.Logger) { p.logger = l }

func (p *Pool) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// label returns a cheap, stable-enough identifier for observer callbacks.
func (p *Pool) label() string {
	return fmt.Sprintf("pool-%p", p)
}

func (p *Pool) handleOOM(size uintptr) Status {
	err := errs.OutOfMemory(size)
	if p.abortFn != nil {
		p.abortFn(err)
	}

	return err
}
