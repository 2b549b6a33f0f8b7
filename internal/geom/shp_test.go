package geom

import (
	"path/filepath"
	"testing"

	goshp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShapefile(t *testing.T, parts [][]goshp.Point) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "coast.shp")
	w, err := goshp.Create(p, goshp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]goshp.Field{goshp.StringField("NAME", 16)}))
	poly := goshp.Polygon(*goshp.NewPolyLine(parts))
	row := w.Write(&poly)
	require.NoError(t, w.WriteAttribute(int(row), 0, "lake"))
	w.Close()
	return p
}

func TestLoadRingsShapefile(t *testing.T) {
	p := writeShapefile(t, [][]goshp.Point{
		{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}},
		{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}, {X: 3, Y: 3}},
	})
	s, err := LoadRings(p)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 10.0, s.Bound().Max[0])
	assert.Equal(t, 0.0, s.Bound().Min[1])
}
