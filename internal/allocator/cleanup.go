package allocator

import "reflect"

// funcPtr returns a comparable identity for a CleanupFn, since Go
// function values cannot be compared with == except against nil. This
// mirrors the original API's pointer-equality semantics for
// cleanup_kill: pass the same named function you registered with, not a
// freshly built closure, and identity compares correctly.
func funcPtr(fn CleanupFn) uintptr {
	if fn == nil {
		return 0
	}

	return reflect.ValueOf(fn).Pointer()
}

// CleanupRegister prepends a cleanup record. The same (data, plainFn)
// pair may be registered more than once; each registration fires
// separately. O(1).
func (p *Pool) CleanupRegister(data interface{}, plainFn, childFn CleanupFn) {
	p.cleanups = &cleanupRecord{
		data:  data,
		plain: plainFn,
		child: childFn,
		next:  p.cleanups,
	}
}

// CleanupKill removes the first record matching (data, plainFn) and
// reports whether one was found. O(n).
func (p *Pool) CleanupKill(data interface{}, plainFn CleanupFn) bool {
	target := funcPtr(plainFn)

	var prev *cleanupRecord

	for cur := p.cleanups; cur != nil; cur = cur.next {
		if cur.data == data && funcPtr(cur.plain) == target {
			if prev == nil {
				p.cleanups = cur.next
			} else {
				prev.next = cur.next
			}

			return true
		}

		prev = cur
	}

	return false
}

// CleanupRun kills the matching registration, if any, then invokes fn
// immediately — used by resources that want to clean themselves up
// before the pool that would otherwise do it for them is torn down.
func (p *Pool) CleanupRun(data interface{}, fn CleanupFn) error {
	p.CleanupKill(data, fn)

	if fn == nil {
		return nil
	}

	return fn(data)
}

// runCleanups fires every registered plain cleanup in registration-LIFO
// order. A cleanup must not register further cleanups on the same pool:
// the list is detached before firing starts, so such a registration
// lands on a fresh list and is not fired by this pass. Errors and panics
// are logged, never propagated — pool teardown is infallible.
func (p *Pool) runCleanups() {
	cur := p.cleanups
	p.cleanups = nil

	for cur != nil {
		p.safeInvoke(cur.plain, cur.data)
		cur = cur.next
	}
}

func (p *Pool) safeInvoke(fn CleanupFn, data interface{}) {
	if fn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			p.logf("region: cleanup panicked: %v", r)
		}
	}()

	if err := fn(data); err != nil {
		p.logf("region: cleanup returned error: %v", err)
	}
}

// PrepareForExec recursively walks the permanent root pool's tree and
// invokes every registered child cleanup (never plain cleanups), then
// discards each pool's cleanup list. It is meant to run just before
// exec() so inheritable resources — open file descriptors chief among
// them — can be released without disturbing the parent process's own
// state. On platforms that spawn a fresh process image instead of
// exec'ing, callers simply never call this; it is a pure function of the
// tree and has no platform-specific behavior itself.
func PrepareForExec() {
	if globalRoot == nil {
		return
	}

	prepareForExecWalk(globalRoot)
}

func prepareForExecWalk(p *Pool) {
	for c := p.firstChild; c != nil; c = c.nextSibling {
		prepareForExecWalk(c)
	}

	cur := p.cleanups
	p.cleanups = nil

	for cur != nil {
		p.safeInvoke(cur.child, cur.data)
		cur = cur.next
	}
}
