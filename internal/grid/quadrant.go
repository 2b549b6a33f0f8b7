package grid

import "fmt"

// QuadrantCount is the fixed number of work partitions.
const QuadrantCount = 4

// Quadrant is a rectangle of global cell indices, [X0, X0+Width) by
// [Y0, Y0+Height).
type Quadrant struct {
	Index  int
	X0, Y0 int
	Width  int
	Height int
}

// X1 is the exclusive end column.
func (q Quadrant) X1() int { return q.X0 + q.Width }

// Y1 is the exclusive end row.
func (q Quadrant) Y1() int { return q.Y0 + q.Height }

// Cells returns the number of cells in q.
func (q Quadrant) Cells() int { return q.Width * q.Height }

// Contains reports whether (col, row) lies in q.
func (q Quadrant) Contains(col, row int) bool {
	return col >= q.X0 && col < q.X1() && row >= q.Y0 && row < q.Y1()
}

func (q Quadrant) String() string {
	return fmt.Sprintf("Q%d[x %d:%d, y %d:%d]", q.Index, q.X0, q.X1(), q.Y0, q.Y1())
}

// Partition splits a width x height grid at column splitX and row splitY:
//
//	Q0: x [0, splitX)      y [0, splitY)
//	Q1: x [0, splitX)      y [splitY, height)
//	Q2: x [splitX, width)  y [0, splitY)
//	Q3: x [splitX, width)  y [splitY, height)
//
// Splits are clamped to the grid, so some quadrants may be empty.
func Partition(width, height, splitX, splitY int) [QuadrantCount]Quadrant {
	splitX = clamp(splitX, 0, width)
	splitY = clamp(splitY, 0, height)
	return [QuadrantCount]Quadrant{
		{Index: 0, X0: 0, Y0: 0, Width: splitX, Height: splitY},
		{Index: 1, X0: 0, Y0: splitY, Width: splitX, Height: height - splitY},
		{Index: 2, X0: splitX, Y0: 0, Width: width - splitX, Height: splitY},
		{Index: 3, X0: splitX, Y0: splitY, Width: width - splitX, Height: height - splitY},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
