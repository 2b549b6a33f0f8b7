package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapemask/internal/mskfile"
)

func writeMask(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tiny.msk")
	h := mskfile.Header{
		Version:       "test",
		Created:       time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		LatResolution: 1,
		LonResolution: 1,
		Width:         4,
		Height:        2,
		BinSize:       100000,
	}
	require.NoError(t, mskfile.Write(p, h, []byte{1, 1, 0, 0, 1, 1, 0, 0}))
	return p
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(2, 1)
	for my := 0; my < 4; my++ {
		b.setPixel(0, my)
		b.setPixel(1, my)
	}
	b.setPixel(2, 0)
	b.setPixel(-1, 0)
	b.setPixel(9, 9)
	assert.Equal(t, []string{"⣿⠁"}, b.toLines())
}

func TestDrawLineMicro(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.drawLineMicro(0, 3, 3, 3)
	assert.Equal(t, []string{"⣀⣀"}, b.toLines())
}

func TestViewerLoadAndClassify(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	require.NotNil(t, m.Mask())
	assert.Equal(t, "land", m.classify(0.5, 0.5))
	assert.Equal(t, "water", m.classify(2.5, 1.5))
	assert.Equal(t, "outside", m.classify(5, 5))
	assert.Contains(t, m.status, "4x2")

	bad := NewWithPath(filepath.Join(t.TempDir(), "none.msk"), "")
	assert.Nil(t, bad.Mask())
	assert.Contains(t, bad.status, "load error")
	assert.Equal(t, "no mask", bad.classify(0, 0))
}

func TestRenderMaskMap(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	lines := strings.Split(m.renderMaskMap(4, 2), "\n")
	require.Len(t, lines, 2)
	row := []rune(lines[0])
	require.Len(t, row, 4)
	assert.Equal(t, '⣿', row[0])
	assert.NotEqual(t, '⣿', row[2])
}

func TestScreenRoundTrip(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	m.zoom = 1.7
	m.offsetX, m.offsetY = 3, -2
	w, h := 40, 20
	for _, p := range [][2]float64{{0.3, 0.2}, {2, 1}, {3.9, 1.8}} {
		mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
		require.True(t, ok)
		lon, lat, ok := m.microToLonLat(mx, my, w, h)
		require.True(t, ok)
		// one micro-pixel in degrees at this zoom
		assert.InDelta(t, p[0], lon, 4.0/float64(w*2-1)/m.zoom, "%v", p)
		assert.InDelta(t, p[1], lat, 2.0/float64(h*4-1)/m.zoom, "%v", p)
	}
}

func TestViewerKeys(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "shapemask")

	m = update(t, m, key("+"))
	assert.InDelta(t, 1.2, m.zoom, 1e-9)
	m = update(t, m, key("-"))
	m = update(t, m, key("-"))
	assert.InDelta(t, 1/1.2, m.zoom, 1e-9)
	m.offsetX = 5
	m = update(t, m, key("r"))
	assert.Equal(t, 1.0, m.zoom)
	assert.Equal(t, 0, m.offsetX)

	m = update(t, m, key("a"))
	assert.True(t, m.showHeader)
	assert.NotEmpty(t, m.tbl.Rows())
	m = update(t, m, key("esc"))
	assert.False(t, m.showHeader)

	m = update(t, m, key("i"))
	assert.Contains(t, m.popup, "tiny.msk")
	assert.Contains(t, m.popup, "class:")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewerQuery(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	m = update(t, m, key("p"))
	require.True(t, m.queryMode)
	m.ta.SetValue("0.5 0.5\nPOINT(2.5 1.5)\n9,9\nnope")
	m = update(t, m, key("enter"))
	assert.False(t, m.queryMode)

	lines := strings.Split(m.popup, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "land")
	assert.Contains(t, lines[1], "water")
	assert.Contains(t, lines[2], "outside")
	assert.Contains(t, lines[3], "nope:")
	assert.Contains(t, m.status, "3 points, 1 unparsed")
}

func TestViewerHover(t *testing.T) {
	m := NewWithPath(writeMask(t), "")
	m = update(t, m, tea.WindowSizeMsg{Width: 42, Height: 13})
	_, _, w, h := m.layout()
	require.Equal(t, 42, w)
	require.Equal(t, 10, h)

	m = update(t, m, tea.MouseMsg{X: 1, Y: headerHeight + h - 1})
	assert.True(t, m.hovering)
	require.True(t, m.hoverHasGeo)
	assert.Equal(t, "land", m.hoverState)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 0})
	assert.False(t, m.hovering)
}

func TestProgressModel(t *testing.T) {
	m := newProgressModel("Rasterizing")
	next, cmd := m.Update(quadrantProgressMsg{quadrant: 2, percent: 40})
	m = next.(progressModel)
	assert.Nil(t, cmd)
	assert.Equal(t, 40, m.percent[2])

	for q := 0; q < 3; q++ {
		next, cmd = m.Update(quadrantDoneMsg{quadrant: q})
		m = next.(progressModel)
		assert.Nil(t, cmd)
	}
	next, cmd = m.Update(quadrantDoneMsg{quadrant: 3})
	m = next.(progressModel)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.aborted)

	v := m.View()
	assert.Contains(t, v, "Rasterizing")
	assert.Contains(t, v, "Q3")
	assert.Equal(t, 4, strings.Count(v, "done"))
}

func TestProgressModelAbort(t *testing.T) {
	next, cmd := newProgressModel("x").Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.True(t, next.(progressModel).aborted)
}
