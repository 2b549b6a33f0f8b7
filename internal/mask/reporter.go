package mask

import (
	"fmt"
	"io"
	"sync"
)

// Reporter receives per-quadrant progress from the engine. Workers call it
// concurrently, so implementations must be safe for concurrent use.
type Reporter interface {
	// Progress is called with a rounded percentage whenever it changes.
	Progress(quadrant, percent int)
	// Done is called once when a quadrant's worker finishes.
	Done(quadrant int)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Progress(int, int) {}
func (NopReporter) Done(int)          {}

// PlainReporter writes one carriage-return terminated line per update.
type PlainReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPlainReporter returns a reporter writing to w.
func NewPlainReporter(w io.Writer) *PlainReporter {
	return &PlainReporter{w: w}
}

func (r *PlainReporter) Progress(quadrant, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "Pass %d - %03d%% processed\r", quadrant, percent)
}

func (r *PlainReporter) Done(quadrant int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "Pass %d - done\n", quadrant)
}
