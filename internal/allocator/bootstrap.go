package allocator

var globalRoot *Pool

// AllocInit bootstraps the process: it creates the permanent root pool
// under DefaultHandle and then activates DefaultHandle's free-list lock.
// Until AllocInit returns, free-list operations performed while
// constructing the root run lock-free — single-threaded bootstrap skips
// the lock check entirely — because no other goroutine can yet hold a
// pool to race against. Calling AllocInit again after a prior AllocTerm
// creates a new root.
func AllocInit(opts ...Option) (*Pool, error) {
	root, err := newPool(nil, DefaultHandle)
	if err != nil {
		return nil, err
	}

	root.Configure(opts...)

	DefaultHandle.fl.activated.Store(true)
	globalRoot = root

	return root, nil
}

// AllocTerm destroys root and, if it is the current permanent root pool,
// clears the global so a subsequent AllocInit starts fresh.
func AllocTerm(root *Pool) {
	root.Destroy()

	if root == globalRoot {
		globalRoot = nil
	}
}
