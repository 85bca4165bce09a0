package allocator

// UserdataSet stores data under key, lazily allocating the pool's
// key→value map on first use, and registers cleanup as both the plain
// and the child cleanup for data. Overwriting an existing key reuses the
// map's existing key storage — in the C original this mattered because
// the key had to be duplicated into pool memory; in Go the key is
// already an independent, garbage-collected string, so there is no
// separate allocation to reuse or duplicate.
func (p *Pool) UserdataSet(key string, data interface{}, cleanup CleanupFn) {
	if p.userdata == nil {
		p.userdata = make(map[string]interface{})
	}

	p.userdata[key] = data

	if cleanup != nil {
		p.CleanupRegister(data, cleanup, cleanup)
	}
}

// UserdataGet returns the value stored under key and whether it was
// found.
func (p *Pool) UserdataGet(key string) (interface{}, bool) {
	if p.userdata == nil {
		return nil, false
	}

	v, ok := p.userdata[key]

	return v, ok
}
