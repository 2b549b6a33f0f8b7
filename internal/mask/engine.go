package mask

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"shapemask/internal/geom"
	"shapemask/internal/grid"
	"shapemask/internal/logx"
)

var (
	// ErrEngineUsed is returned by a second call to Run.
	ErrEngineUsed = errors.New("engine already ran")
	// ErrTooLarge is returned when the raster cannot be allocated.
	ErrTooLarge = grid.ErrTooLarge
)

// Raster is the output buffer: Width*Height bytes, row-major, southern row
// first. 1 is land, 0 is water.
type Raster struct {
	Width  int
	Height int
	Cells  []byte
}

// At returns the cell at (col, row).
func (r *Raster) At(col, row int) byte { return r.Cells[row*r.Width+col] }

// LandCells counts cells set to 1.
func (r *Raster) LandCells() int {
	n := 0
	for _, c := range r.Cells {
		n += int(c)
	}
	return n
}

// Engine rasterizes one mask. Each of the four quadrants gets its own
// goroutine writing a disjoint rectangle of the shared buffer.
type Engine struct {
	geometry   grid.Geometry
	classifier Classifier
	reporter   Reporter

	ran       atomic.Bool
	completed [grid.QuadrantCount]atomic.Bool

	// prefill, when set, initialises the buffer before workers start.
	prefill byte
}

// NewEngine prepares an engine. A nil reporter is replaced by NopReporter.
func NewEngine(g grid.Geometry, store *geom.RingStore, water bool, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		geometry:   g,
		classifier: NewClassifier(store, water),
		reporter:   reporter,
	}
}

// Completed reports whether quadrant q's worker has finished.
func (e *Engine) Completed(q int) bool { return e.completed[q].Load() }

// task is everything one worker needs. It is built before the goroutine
// starts and never changes.
type task struct {
	quadrant grid.Quadrant
	geometry grid.Geometry
	cells    []byte
}

// Run classifies every cell and blocks until all four workers return.
func (e *Engine) Run() (*Raster, error) {
	if !e.ran.CompareAndSwap(false, true) {
		return nil, ErrEngineUsed
	}
	g := e.geometry
	n := int64(g.Width) * int64(g.Height)
	if n <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", g.Width, g.Height, grid.ErrEmptyGrid)
	}
	if n > grid.MaxCells || n > math.MaxInt {
		return nil, fmt.Errorf("%d cells: %w", n, ErrTooLarge)
	}

	cells := make([]byte, int(n))
	if e.prefill != 0 {
		for i := range cells {
			cells[i] = e.prefill
		}
	}

	log := logx.Logger()
	var wg sync.WaitGroup
	for _, q := range g.Quadrants() {
		t := task{quadrant: q, geometry: g, cells: cells}
		log.Debug("starting worker", "quadrant", q.String(), "cells", q.Cells())
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			e.work(t)
		}(t)
	}
	wg.Wait()

	return &Raster{Width: g.Width, Height: g.Height, Cells: cells}, nil
}

func (e *Engine) work(t task) {
	q := t.quadrant
	last := -1
	for row := q.Y0; row < q.Y1(); row++ {
		base := row * t.geometry.Width
		for col := q.X0; col < q.X1(); col++ {
			var v byte
			if e.classifier.Land(t.geometry.CellCenter(col, row)) {
				v = 1
			}
			t.cells[base+col] = v
		}
		pct := int(math.Round(100 * float64(row-q.Y0+1) / float64(q.Height)))
		if pct != last {
			e.reporter.Progress(q.Index, pct)
			last = pct
		}
	}
	e.completed[q.Index].Store(true)
	e.reporter.Done(q.Index)
	logx.Logger().Debug("worker finished", "quadrant", q.Index)
}
