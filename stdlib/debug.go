package stdlib

import (
	"log"
	"sync"

	"github.com/vv4t/cirno/cirno"
	"github.com/vv4t/cirno/heapvm"
)

// AllocTracker is a bookkeeping list: one entry per heap allocation made
// after Attach, tagged with the Go call site that made it. Entries are
// not removed when the collector frees a block. Install it on a Runtime
// with Attach, then call Report at CLI exit (behind the `-D` flag) to
// log every recorded allocation.
type AllocTracker struct {
	mu     sync.Mutex
	events []heapvm.AllocEvent
	total  int
}

// NewAllocTracker returns an empty tracker.
func NewAllocTracker() *AllocTracker {
	return &AllocTracker{}
}

// Attach wires the tracker into rt's heap so every Alloc/AllocString
// from this point on is recorded.
func (t *AllocTracker) Attach(rt *cirno.Runtime) {
	rt.TrackAllocs(func(ev heapvm.AllocEvent) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.events = append(t.events, ev)
		t.total += ev.Size
	})
}

// Report logs every recorded allocation at DEBUG level through the
// standard log package (filtered by a logutils.LevelFilter installed by
// the CLI's -D flag), plus a final summary line.
func (t *AllocTracker) Report() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ev := range t.events {
		log.Printf("[DEBUG] alloc %s %db", ev.Site, ev.Size)
	}
	log.Printf("[DEBUG] %d allocations, %d bytes total", len(t.events), t.total)
}
