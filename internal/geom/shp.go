package geom

import (
	"fmt"

	cgeom "github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"

	"shapemask/internal/logx"
)

// ReadShapefile appends one ring per part of every polygon or polyline
// record in the shapefile. Point records are skipped.
func ReadShapefile(path string, b *RingBuilder) error {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer d.Close()

	records, skipped := 0, 0
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		records++
		if !addShape(b, g) {
			skipped++
		}
	}
	if err := d.Error(); err != nil {
		return fmt.Errorf("read shapefile %s: %w", path, err)
	}
	logx.Logger().Info("shapefile read", "path", path, "records", records, "skipped", skipped, "rings", b.Len())
	return nil
}

// addShape reports whether the record contributed any ring.
func addShape(b *RingBuilder, g cgeom.Geom) bool {
	before := b.Len()
	switch g := g.(type) {
	case cgeom.Polygonal:
		for _, poly := range g.Polygons() {
			for _, part := range poly {
				addPath(b, part)
			}
		}
	case cgeom.LineString:
		addPath(b, g)
	case cgeom.MultiLineString:
		for _, ls := range g {
			addPath(b, ls)
		}
	}
	return b.Len() > before
}

func addPath(b *RingBuilder, pts []cgeom.Point) {
	b.StartRing()
	for _, p := range pts {
		b.AddPoint(p.X, p.Y)
	}
	b.endRing()
}
