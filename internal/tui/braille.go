package tui

import "strings"

// brailleBuf is a canvas of terminal cells, each holding a 2x4 block of
// micro-pixels encoded as a braille dot pattern.
type brailleBuf struct {
	cols, rows int
	dots       []uint8 // row-major, one pattern per cell
}

// dotBits[col][row] is the braille dot for a micro-pixel inside a cell.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func newBrailleBuf(cols, rows int) *brailleBuf {
	return &brailleBuf{cols: cols, rows: rows, dots: make([]uint8, cols*rows)}
}

// setPixel lights one micro-pixel. Pixels off the canvas are dropped.
func (b *brailleBuf) setPixel(mx, my int) {
	cx, cy := mx/2, my/4
	if mx < 0 || my < 0 || cx >= b.cols || cy >= b.rows {
		return
	}
	b.dots[cy*b.cols+cx] |= dotBits[mx%2][my%4]
}

// drawLineMicro rasterizes the segment (x0,y0)-(x1,y1) in micro-pixels.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for x, y := x0, y0; ; {
		b.setPixel(x, y)
		if x == x1 && y == y1 {
			return
		}
		if e2 := 2 * err; e2 >= dy {
			err += dy
			x += sx
			if e2 <= dx {
				err += dx
				y += sy
			}
		} else {
			err += dx
			y += sy
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, 0, b.rows)
	var sb strings.Builder
	for y := 0; y < b.rows; y++ {
		sb.Reset()
		for _, d := range b.dots[y*b.cols : (y+1)*b.cols] {
			if d == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(rune(0x2800 + int(d)))
		}
		out = append(out, sb.String())
	}
	return out
}
