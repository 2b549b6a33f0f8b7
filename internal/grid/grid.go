// Package grid derives the output raster geometry from an area envelope and
// per-axis angular cell sizes, and splits it into four static quadrants.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	// ErrInvalidResolution is returned for non-finite or non-positive steps.
	ErrInvalidResolution = errors.New("resolution must be finite and positive")
	// ErrEmptyGrid is returned when the area is smaller than one cell.
	ErrEmptyGrid = errors.New("area is smaller than one grid cell")
	// ErrTooLarge is returned when the raster would exceed MaxCells.
	ErrTooLarge = errors.New("raster too large")
)

// MaxCells bounds width*height, one byte per cell.
const MaxCells = 1 << 32

// Geometry is the raster layout. The origin is the south-west corner of the
// south-west cell; rows run south to north, columns west to east.
type Geometry struct {
	OriginLon     float64
	OriginLat     float64
	LonResolution float64
	LatResolution float64
	Width         int
	Height        int

	// HalfX and HalfY are the integer half-ranges used for recentring.
	// The quadrant split happens at these indices.
	HalfX int
	HalfY int
}

// New recentres env on its own center so that it spans an integral number of
// cells. Per axis:
//
//	range = trunc((max-min)/step) + 1
//	half  = range / 2
//	min   = center - half*step, max = center + half*step
//	dim   = round((max-min)/step)
//
// The truncation is part of the file format contract: it keeps the grid
// symmetric about the center, so dim may differ from range when range is odd.
func New(env orb.Bound, lonStep, latStep float64) (Geometry, error) {
	if !validStep(lonStep) || !validStep(latStep) {
		return Geometry{}, fmt.Errorf("steps %g, %g: %w", lonStep, latStep, ErrInvalidResolution)
	}
	var g Geometry
	var err error
	g.OriginLon, g.HalfX, g.Width, err = axis(env.Min[0], env.Max[0], lonStep)
	if err != nil {
		return Geometry{}, err
	}
	g.OriginLat, g.HalfY, g.Height, err = axis(env.Min[1], env.Max[1], latStep)
	if err != nil {
		return Geometry{}, err
	}
	g.LonResolution, g.LatResolution = lonStep, latStep
	if g.Width <= 0 || g.Height <= 0 {
		return Geometry{}, fmt.Errorf("%dx%d: %w", g.Width, g.Height, ErrEmptyGrid)
	}
	if int64(g.Width)*int64(g.Height) > MaxCells {
		return Geometry{}, fmt.Errorf("%dx%d cells: %w", g.Width, g.Height, ErrTooLarge)
	}
	return g, nil
}

func validStep(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

func axis(min, max, step float64) (origin float64, half, dim int, err error) {
	span := (max - min) / step
	if math.IsNaN(span) || span < 0 || span >= math.MaxInt32 {
		return 0, 0, 0, fmt.Errorf("span %g cells: %w", span, ErrTooLarge)
	}
	center := min + (max-min)/2
	half = (int(span) + 1) / 2
	lo := center - float64(half)*step
	hi := center + float64(half)*step
	return lo, half, int(math.Round((hi - lo) / step)), nil
}

// Cells returns Width*Height.
func (g Geometry) Cells() int { return g.Width * g.Height }

// Bound returns the recentred envelope.
func (g Geometry) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{g.OriginLon, g.OriginLat},
		Max: orb.Point{
			g.OriginLon + float64(g.Width)*g.LonResolution,
			g.OriginLat + float64(g.Height)*g.LatResolution,
		},
	}
}

// CellCenter returns the geographic center of the cell at (col, row).
func (g Geometry) CellCenter(col, row int) orb.Point {
	return orb.Point{
		g.OriginLon + (float64(col)+0.5)*g.LonResolution,
		g.OriginLat + (float64(row)+0.5)*g.LatResolution,
	}
}

// Quadrants splits the grid at (HalfX, HalfY).
func (g Geometry) Quadrants() [QuadrantCount]Quadrant {
	return Partition(g.Width, g.Height, g.HalfX, g.HalfY)
}
