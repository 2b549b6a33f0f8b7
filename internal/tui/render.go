package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"shapemask/internal/geom"
)

// extent returns the loaded mask bounds, or false with nothing loaded.
func (m Model) extent() (west, south, east, north float64, ok bool) {
	if m.mask == nil {
		return 0, 0, 0, 0, false
	}
	west, south, east, north = m.mask.Bounds()
	return west, south, east, north, east > west && north > south
}

// microToLonLat inverts screenXYMicro for a micro-pixel of a w x h map.
func (m Model) microToLonLat(mx, my, w, h int) (float64, float64, bool) {
	west, south, east, north, ok := m.extent()
	if !ok {
		return 0, 0, false
	}
	wMic, hMic := w*2, h*4
	if wMic <= 1 || hMic <= 1 {
		return 0, 0, false
	}
	zx := float64(mx-m.offsetX*2) / float64(wMic-1)
	zy := 1.0 - float64(my-m.offsetY*4)/float64(hMic-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return west + nx*(east-west), south + ny*(north-south), true
}

// cellToLonLat maps the centre of a terminal cell to lon/lat.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	return m.microToLonLat(cx*2+1, cy*4+2, w, h)
}

// screenXYMicro maps lon/lat into the 2x4 micro grid, honouring zoom and pan.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	west, south, east, north, ok := m.extent()
	if !ok {
		return 0, 0, false
	}
	nx := (lon - west) / (east - west)
	ny := (lat - south) / (north - south)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// renderMaskMap samples the mask once per micro-pixel and lights land, then
// outlines the mask extent.
func (m Model) renderMaskMap(w, h int) string {
	br := newBrailleBuf(w, h)
	if m.mask != nil {
		for my := 0; my < h*4; my++ {
			for mx := 0; mx < w*2; mx++ {
				lon, lat, ok := m.microToLonLat(mx, my, w, h)
				if !ok {
					continue
				}
				if land, in := m.mask.Lookup(lon, lat); in && land {
					br.setPixel(mx, my)
				}
			}
		}
		if west, south, east, north, ok := m.extent(); ok {
			corners := [][2]float64{{west, south}, {east, south}, {east, north}, {west, north}}
			for i := range corners {
				a, b := corners[i], corners[(i+1)%len(corners)]
				ax, ay, _ := m.screenXYMicro(a[0], a[1], w, h)
				bx, by, _ := m.screenXYMicro(b[0], b[1], w, h)
				br.drawLineMicro(ax, ay, bx, by)
			}
		}
	}
	lines := br.toLines()

	if m.hovering && m.hoverCellY >= 0 && m.hoverCellY < len(lines) {
		r := []rune(lines[m.hoverCellY])
		if cx := m.hoverCellX; cx >= 0 && cx < len(r) {
			lines[m.hoverCellY] = string(r[:cx]) + hoverStyle.Render("◯") + string(r[cx+1:])
		}
	}
	return strings.Join(lines, "\n")
}

// classify returns "land", "water" or "outside" for a point.
func (m Model) classify(lon, lat float64) string {
	if m.mask == nil {
		return "no mask"
	}
	land, ok := m.mask.Lookup(lon, lat)
	switch {
	case !ok:
		return "outside"
	case land:
		return "land"
	}
	return "water"
}

// inspectCenter describes the mask and the point under the viewport centre.
func (m Model) inspectCenter() (string, bool) {
	if m.mask == nil {
		return "", false
	}
	_, _, w, h := m.layout()
	lon, lat, ok := m.cellToLonLat(w/2, h/2, w, h)
	if !ok {
		return "", false
	}
	west, south, east, north, _ := m.extent()
	meta := []string{
		fmt.Sprintf("name: %s", filepath.Base(m.selPath)),
		fmt.Sprintf("size: %dx%d @ %d m", m.mask.Width, m.mask.Height, m.mask.BinSize),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", west, south, east, north),
		fmt.Sprintf("land: %.2f%%", 100*m.mask.LandFraction()),
		fmt.Sprintf("centre: lon=%.6f lat=%.6f", lon, lat),
		fmt.Sprintf("class: %s", m.classify(lon, lat)),
	}
	return strings.Join(meta, "\n"), true
}

// runQuery classifies every line of the query text.
func (m Model) runQuery(text string) (string, int) {
	var out []string
	bad := 0
	for _, line := range splitLines(text) {
		p, err := geom.ParsePoint(line)
		if err != nil {
			out = append(out, fmt.Sprintf("%s: %v", line, err))
			bad++
			continue
		}
		c := m.classify(p[0], p[1])
		label := c
		if c == "land" || c == "water" {
			label = classStyle(c == "land").Render(c)
		}
		out = append(out, fmt.Sprintf("%.6f %.6f  %s", p[0], p[1], label))
	}
	return strings.Join(out, "\n"), bad
}
