package allocator

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()

	if c.FillOnFree {
		t.Error("FillOnFree must default to false")
	}

	if c.TrackAllocations {
		t.Error("TrackAllocations must default to false")
	}

	if c.Observer == nil {
		t.Error("Observer must default to a non-nil no-op")
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ in, want uintptr }{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{16, 16},
	}

	for _, c := range cases {
		if got := alignUp(c.in); got != c.want {
			t.Errorf("alignUp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestHandleIsolation(t *testing.T) {
	h1 := NewHandle()
	h2 := NewHandle()

	root1, err := newPool(nil, h1)
	if err != nil {
		t.Fatalf("newPool: %v", err)
	}

	blk := newSystemBlock(8192)
	h1.fl.release(blk)

	if h2.fl.census() != 0 {
		t.Error("releasing a block to h1's free-list must not affect h2")
	}

	_ = root1
}
