package allocator

import "testing"

func TestUserdataSetGet(t *testing.T) {
	root := newTestRoot(t)
	p, _ := PoolCreate(root)

	if _, ok := p.UserdataGet("missing"); ok {
		t.Fatal("UserdataGet on an empty store must report not-found")
	}

	p.UserdataSet("key", 42, nil)

	v, ok := p.UserdataGet("key")
	if !ok {
		t.Fatal("expected key to be found")
	}

	if v.(int) != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestUserdataCleanupFiresOnClear(t *testing.T) {
	root := newTestRoot(t)
	p, _ := PoolCreate(root)

	fired := false
	p.UserdataSet("key", "value", func(interface{}) error {
		fired = true
		return nil
	})

	p.Clear()

	if !fired {
		t.Error("userdata cleanup must fire when the pool is cleared")
	}

	if _, ok := p.UserdataGet("key"); ok {
		t.Error("userdata map must be discarded on Clear")
	}
}

func TestUserdataCleanupAlsoFiresOnPrepareForExec(t *testing.T) {
	root := newTestRoot(t)
	globalRoot = root

	defer func() { globalRoot = nil }()

	fired := false
	root.UserdataSet("key", "value", func(interface{}) error {
		fired = true
		return nil
	})

	PrepareForExec()

	if !fired {
		t.Error("userdata cleanup is registered as both plain and child, so PrepareForExec must fire it too")
	}
}

func TestUserdataOverwriteReplacesValue(t *testing.T) {
	root := newTestRoot(t)
	p, _ := PoolCreate(root)

	p.UserdataSet("key", "first", nil)
	p.UserdataSet("key", "second", nil)

	v, _ := p.UserdataGet("key")
	if v.(string) != "second" {
		t.Errorf("got %v, want second", v)
	}
}
