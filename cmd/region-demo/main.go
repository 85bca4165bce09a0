// region-demo exercises pool creation and teardown against the region
// allocator for manual inspection, the way orizon-fmt-demo exercises the
// formatter.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/kestrelrt/region/internal/allocator"
)

func main() {
	var (
		fillOnFree bool
		track      bool
		children   int
	)

	flag.BoolVar(&fillOnFree, "fill-on-free", false, "poison released blocks with a debug pattern")
	flag.BoolVar(&track, "track", false, "enable allocation tracking and print a summary")
	flag.IntVar(&children, "children", 3, "number of child pools to create under the root")
	flag.Parse()

	opts := []allocator.Option{}
	if fillOnFree {
		opts = append(opts, allocator.WithFillOnFree(true))
	}

	var stats *allocator.StatsObserver
	if track {
		stats = allocator.NewStatsObserver()
		opts = append(opts, allocator.WithTrackAllocations(true), allocator.WithObserver(stats))
	}

	root, err := allocator.AllocInit(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "region-demo: AllocInit:", err)
		os.Exit(1)
	}

	root.SetLogger(log.New(os.Stderr, "region-demo: ", log.LstdFlags))
	defer allocator.AllocTerm(root)

	for i := 0; i < children; i++ {
		runRequest(root, i)
	}

	if stats != nil {
		snap := stats.Snapshot()
		fmt.Printf("allocations=%d frees=%d bytes_allocated=%d bytes_freed=%d\n",
			snap.AllocationCount, snap.FreeCount, snap.BytesAllocated, snap.BytesFreed)
	}
}

// runRequest models one request-scoped pool: a handful of allocations, a
// cleanup, and a greeting built with Pvsprintf, all reclaimed together
// when the pool is destroyed.
func runRequest(root *allocator.Pool, id int) {
	p, err := allocator.PoolCreate(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "region-demo: PoolCreate:", err)
		return
	}
	defer p.Destroy()

	p.CleanupRegister(id, func(data interface{}) error {
		fmt.Printf("request %d: released\n", data)
		return nil
	}, nil)

	greeting := p.Pvsprintf("request %d says hello", id)
	fmt.Println(cString(greeting))
}

// cString reads a null-terminated string out of pool memory returned by
// Pvsprintf/Pstrdup.
func cString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}

	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}

	return string(unsafe.Slice((*byte)(ptr), n))
}
