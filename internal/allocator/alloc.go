package allocator

import (
	"fmt"
	"unsafe"
)

// Palloc bump-allocates size bytes, CLICK-aligned and uninitialized, from
// pool. A size of 0 returns nil without raising an error.
func (p *Pool) Palloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	aligned := alignUp(size)

	if ptr := p.last.alloc(aligned); ptr != nil {
		p.notifyAlloc(aligned)
		return ptr
	}

	blk := p.handle.fl.acquire(aligned)
	if blk == nil {
		p.handleOOM(aligned)
		return nil
	}

	p.last.next = blk
	p.last = blk

	ptr := blk.alloc(aligned)
	p.notifyAlloc(aligned)

	return ptr
}

// Pcalloc is Palloc followed by a zero-fill of the aligned region.
func (p *Pool) Pcalloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	ptr := p.Palloc(size)
	if ptr == nil {
		return nil
	}

	aligned := alignUp(size)
	data := unsafe.Slice((*byte)(ptr), aligned)

	for i := range data {
		data[i] = 0
	}

	return ptr
}

// Pstrdup copies s into pool memory, appending a null terminator, and
// returns a pointer to the first byte.
func (p *Pool) Pstrdup(s string) unsafe.Pointer {
	n := uintptr(len(s))

	ptr := p.Palloc(n + 1)
	if ptr == nil {
		return nil
	}

	dst := unsafe.Slice((*byte)(ptr), n+1)
	copy(dst, s)
	dst[n] = 0

	return ptr
}

// notifyAlloc reports a successful bump allocation to the pool's debug
// observer, if allocation tracking is enabled.
func (p *Pool) notifyAlloc(size uintptr) {
	if p.config == nil || !p.config.TrackAllocations || p.config.Observer == nil {
		return
	}

	p.config.Observer.OnAllocate(p.label(), size)
}

// Pvsprintf formats according to format and args and writes the result
// directly into pool memory, CLICK-aligned and null-terminated, returning
// a pointer to the start of the string.
//
// The in-progress scratch block used when the current tail block cannot
// hold the output is never linked into the pool's chain until formatting
// has fully succeeded: an aborted or overflowing print leaves no garbage
// reachable from the pool. Every overflow after the first returns the
// previous guess's block to the free-list unlinked, and each successive
// guess doubles.
func (p *Pool) Pvsprintf(format string, args ...interface{}) unsafe.Pointer {
	return p.writeString(fmt.Sprintf(format, args...))
}

func (p *Pool) writeString(s string) unsafe.Pointer {
	need := uintptr(len(s) + 1)
	aligned := alignUp(need)

	if last := p.last; last != nil && last.residual() >= aligned {
		ptr := last.alloc(aligned)
		dst := unsafe.Slice((*byte)(ptr), need)
		copy(dst, s)
		dst[len(s)] = 0
		p.notifyAlloc(aligned)

		return ptr
	}

	guess := uintptr(BlockMinAlloc)
	if p.last != nil {
		if g := uintptr(p.last.firstAvail) * 2; g > guess {
			guess = g
		}
	}

	var scratch *Block

	for {
		blk := p.handle.fl.acquire(guess)
		if blk == nil {
			p.handleOOM(need)
			return nil
		}

		if uintptr(len(blk.buf)) >= aligned {
			scratch = blk
			break
		}

		p.handle.fl.release(blk)
		guess *= 2
	}

	copy(scratch.buf, s)
	scratch.buf[len(s)] = 0
	scratch.firstAvail = int(aligned)

	p.last.next = scratch
	p.last = scratch
	p.notifyAlloc(aligned)

	return unsafe.Pointer(&scratch.buf[0])
}
