package geom

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoRings is returned when a vector source yields no usable ring.
	ErrNoRings = errors.New("no polygon rings found")
	// ErrNoArea is returned when an area descriptor has too few vertices.
	ErrNoArea = errors.New("area needs at least two vertices")
)

// ReadGeometry reads a non-shapefile source into a flat collection.
// Supported: .geojson/.json, .wkt, .kml, .csv, .are, .afs.
func ReadGeometry(path string) (orb.Collection, error) {
	switch ext(path) {
	case ".geojson", ".json":
		return ReadGeoJSON(path)
	case ".wkt":
		return ReadWKT(path)
	case ".kml":
		return ReadKML(path)
	case ".csv":
		pts, err := ReadCSV(path)
		if err != nil {
			return nil, err
		}
		return orb.Collection{pts}, nil
	case ".are":
		r, err := ReadAreaFile(path, true)
		if err != nil {
			return nil, err
		}
		return orb.Collection{r}, nil
	case ".afs":
		r, err := ReadAreaFile(path, false)
		if err != nil {
			return nil, err
		}
		return orb.Collection{r}, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// LoadRings reads every polygon ring of a vector source into a frozen store.
func LoadRings(path string) (*RingStore, error) {
	b := NewRingBuilder()
	if ext(path) == ".shp" {
		if err := ReadShapefile(path, b); err != nil {
			return nil, err
		}
	} else {
		c, err := ReadGeometry(path)
		if err != nil {
			return nil, err
		}
		b.AddGeometry(c)
	}
	s := b.Freeze()
	if s.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRings)
	}
	return s, nil
}

// LoadArea returns the envelope of an area descriptor.
func LoadArea(path string) (orb.Bound, error) {
	c, err := ReadGeometry(path)
	if err != nil {
		return orb.Bound{}, err
	}
	n := 0
	for _, g := range c {
		n += vertexCount(g)
	}
	if n < 2 {
		return orb.Bound{}, fmt.Errorf("%s: %w", path, ErrNoArea)
	}
	return c.Bound(), nil
}

// ReplaceExt swaps the extension of path, appending when there is none.
func ReplaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

func ext(path string) string { return strings.ToLower(filepath.Ext(path)) }

func vertexCount(g orb.Geometry) int {
	switch g := g.(type) {
	case orb.Point:
		return 1
	case orb.MultiPoint:
		return len(g)
	case orb.LineString:
		return len(g)
	case orb.Ring:
		return len(g)
	case orb.MultiLineString:
		n := 0
		for _, ls := range g {
			n += len(ls)
		}
		return n
	case orb.Polygon:
		n := 0
		for _, r := range g {
			n += len(r)
		}
		return n
	case orb.MultiPolygon:
		n := 0
		for _, p := range g {
			n += vertexCount(p)
		}
		return n
	case orb.Collection:
		n := 0
		for _, c := range g {
			n += vertexCount(c)
		}
		return n
	case orb.Bound:
		return 2
	}
	return 0
}
