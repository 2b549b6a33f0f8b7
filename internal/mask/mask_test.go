package mask

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapemask/internal/geom"
	"shapemask/internal/grid"
)

func square(x0, y0, x1, y1 float64) []orb.Point {
	return []orb.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func store(rings ...[]orb.Point) *geom.RingStore {
	b := geom.NewRingBuilder()
	for _, r := range rings {
		b.AddRing(r)
	}
	return b.Freeze()
}

func TestInsideCount(t *testing.T) {
	c := NewClassifier(store(square(0, 0, 10, 10)), false)
	assert.Equal(t, 1, c.InsideCount(orb.Point{5, 5}))
	assert.Equal(t, 0, c.InsideCount(orb.Point{15, 5}))
	assert.Equal(t, 0, c.InsideCount(orb.Point{5, -1}))
	assert.True(t, c.Land(orb.Point{0.5, 9.5}))
	assert.False(t, c.Land(orb.Point{-0.5, 9.5}))
}

func TestInsideCountClosedRing(t *testing.T) {
	closed := append(square(0, 0, 4, 4), orb.Point{0, 0})
	open := NewClassifier(store(square(0, 0, 4, 4)), false)
	c := NewClassifier(store(closed), false)
	for _, p := range []orb.Point{{1, 1}, {3.5, 0.5}, {5, 5}, {-1, 2}} {
		assert.Equal(t, open.InsideCount(p), c.InsideCount(p), "%v", p)
	}
}

func TestNesting(t *testing.T) {
	c := NewClassifier(store(square(0, 0, 10, 10), square(3, 3, 7, 7)), false)
	annulus := orb.Point{1, 1}
	hole := orb.Point{5, 5}
	assert.Equal(t, 1, c.InsideCount(annulus))
	assert.Equal(t, 2, c.InsideCount(hole))
	assert.NotEqual(t, c.Land(annulus), c.Land(hole))
	assert.True(t, c.Land(annulus))
}

func TestDegenerateRingsNeverContain(t *testing.T) {
	c := NewClassifier(store([]orb.Point{{0, 0}, {10, 10}}), false)
	assert.Equal(t, 0, c.InsideCount(orb.Point{5, 5}))
	assert.Equal(t, 0, c.InsideCount(orb.Point{2, 8}))
}

func TestEmptyStore(t *testing.T) {
	c := NewClassifier(nil, true)
	assert.Equal(t, 0, c.InsideCount(orb.Point{0, 0}))
	assert.True(t, c.Land(orb.Point{0, 0}))
}

func scenario(t testing.TB) grid.Geometry {
	g, err := grid.New(orb.Bound{Min: orb.Point{-2, -2}, Max: orb.Point{12, 12}}, 1, 1)
	require.NoError(t, err)
	return g
}

func TestEngineSquare(t *testing.T) {
	g := scenario(t)
	e := NewEngine(g, store(square(0, 0, 10, 10)), false, nil)
	r, err := e.Run()
	require.NoError(t, err)
	require.Equal(t, 14, r.Width)
	require.Equal(t, 14, r.Height)
	require.Len(t, r.Cells, 196)

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			p := g.CellCenter(col, row)
			want := byte(0)
			if p[0] > 0 && p[0] < 10 && p[1] > 0 && p[1] < 10 {
				want = 1
			}
			assert.Equal(t, want, r.At(col, row), "col %d row %d (%v)", col, row, p)
		}
	}
	assert.Equal(t, 100, r.LandCells())
	for q := 0; q < grid.QuadrantCount; q++ {
		assert.True(t, e.Completed(q), "quadrant %d", q)
	}
}

func TestEngineRunsOnce(t *testing.T) {
	e := NewEngine(scenario(t), store(square(0, 0, 10, 10)), false, nil)
	_, err := e.Run()
	require.NoError(t, err)
	_, err = e.Run()
	assert.ErrorIs(t, err, ErrEngineUsed)
}

func TestEngineEmptyGeometry(t *testing.T) {
	e := NewEngine(grid.Geometry{LonResolution: 1, LatResolution: 1}, nil, false, nil)
	_, err := e.Run()
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
}

func TestEngineWritesEveryCell(t *testing.T) {
	rings := []orb.Point{{0.3, 0.1}, {9.7, 2}, {6, 11.5}, {-1, 7}}
	for _, dims := range [][4]float64{
		{0, 0, 1, 1},
		{0, 0, 3, 1},
		{-2, -2, 12, 12},
		{-1, -3, 11.3, 9.1},
	} {
		g, err := grid.New(orb.Bound{Min: orb.Point{dims[0], dims[1]}, Max: orb.Point{dims[2], dims[3]}}, 0.25, 0.5)
		require.NoError(t, err)
		e := NewEngine(g, store(rings), false, nil)
		e.prefill = 0xAA
		r, err := e.Run()
		require.NoError(t, err)
		for i, c := range r.Cells {
			require.True(t, c == 0 || c == 1, "cell %d of %dx%d left at %#x", i, g.Width, g.Height, c)
		}
	}
}

func TestEngineWaterIsComplement(t *testing.T) {
	g := scenario(t)
	rings := store(square(0, 0, 10, 10), square(3, 3, 7, 7), []orb.Point{{-1, -1}, {11, 4}, {2, 11}})
	land, err := NewEngine(g, rings, false, nil).Run()
	require.NoError(t, err)
	water, err := NewEngine(g, rings, true, nil).Run()
	require.NoError(t, err)
	for i := range land.Cells {
		require.Equal(t, 1-land.Cells[i], water.Cells[i], "cell %d", i)
	}
}

func TestEngineDeterministic(t *testing.T) {
	g, err := grid.New(orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}}, 0.1, 0.1)
	require.NoError(t, err)
	rings := store(
		[]orb.Point{{-4, -4}, {4, -3}, {0, 4.5}},
		[]orb.Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		[]orb.Point{{-3, 3}, {3, -3}, {3, 3}, {-3, -3}},
	)
	first, err := NewEngine(g, rings, false, nil).Run()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := NewEngine(g, rings, false, nil).Run()
		require.NoError(t, err)
		require.True(t, bytes.Equal(first.Cells, again.Cells), "run %d differs", i)
	}
}

type recorder struct {
	mu       sync.Mutex
	progress map[int][]int
	done     map[int]int
}

func newRecorder() *recorder {
	return &recorder{progress: map[int][]int{}, done: map[int]int{}}
}

func (r *recorder) Progress(q, pct int) {
	r.mu.Lock()
	r.progress[q] = append(r.progress[q], pct)
	r.mu.Unlock()
}

func (r *recorder) Done(q int) {
	r.mu.Lock()
	r.done[q]++
	r.mu.Unlock()
}

func TestEngineReportsProgress(t *testing.T) {
	g := scenario(t)
	rec := newRecorder()
	_, err := NewEngine(g, store(square(0, 0, 10, 10)), false, rec).Run()
	require.NoError(t, err)

	for q := 0; q < grid.QuadrantCount; q++ {
		assert.Equal(t, 1, rec.done[q], "quadrant %d", q)
		got := rec.progress[q]
		require.NotEmpty(t, got, "quadrant %d", q)
		assert.Equal(t, 100, got[len(got)-1])
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i], got[i-1], "quadrant %d repeats a value", q)
		}
	}
	// 7 rows per quadrant
	assert.Equal(t, []int{14, 29, 43, 57, 71, 86, 100}, rec.progress[0])
}

func TestPlainReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf)
	r.Progress(2, 7)
	r.Done(2)
	assert.Equal(t, "Pass 2 - 007% processed\rPass 2 - done\n", buf.String())
}

func TestPlainReporterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf)
	var wg sync.WaitGroup
	for q := 0; q < 4; q++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			for p := 0; p <= 100; p++ {
				r.Progress(q, p)
			}
		}(q)
	}
	wg.Wait()
	assert.Equal(t, 404, strings.Count(buf.String(), "\r"))
}

func BenchmarkEngine(b *testing.B) {
	rings := store(
		[]orb.Point{{-4, -4}, {4, -3}, {0, 4.5}},
		[]orb.Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
	)
	for _, step := range []float64{0.1, 0.05, 0.02} {
		g, err := grid.New(orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}}, step, step)
		require.NoError(b, err)
		b.Run(fmt.Sprintf("%dx%d", g.Width, g.Height), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := NewEngine(g, rings, false, nil).Run(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
