package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

// kmlGeometry matches a Placemark or a MultiGeometry.
type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Rings    []kmlCoords   `xml:"LinearRing"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

// ReadKML extracts Point, LineString, LinearRing and Polygon geometries from
// every Placemark, at any nesting depth (Document, Folder).
func ReadKML(path string) (orb.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ParseKML(f)
	if err != nil {
		return nil, fmt.Errorf("kml %s: %w", path, err)
	}
	return c, nil
}

// ParseKML decodes KML from r.
func ParseKML(r io.Reader) (orb.Collection, error) {
	d := xml.NewDecoder(r)
	var out orb.Collection
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlGeometry
		if err := d.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		out = appendKML(out, pm)
	}
	if len(out) == 0 {
		return nil, errors.New("no geometries found")
	}
	return out, nil
}

func appendKML(out orb.Collection, g kmlGeometry) orb.Collection {
	for _, p := range g.Points {
		if pts := parseKMLCoords(p.Coordinates); len(pts) > 0 {
			out = append(out, orb.Point(pts[0]))
		}
	}
	for _, l := range g.Lines {
		if pts := parseKMLCoords(l.Coordinates); len(pts) > 0 {
			out = append(out, orb.LineString(pts))
		}
	}
	for _, r := range g.Rings {
		if pts := parseKMLCoords(r.Coordinates); len(pts) > 0 {
			out = append(out, orb.Ring(pts))
		}
	}
	for _, pg := range g.Polygons {
		var poly orb.Polygon
		if pts := parseKMLCoords(pg.Outer.LinearRing.Coordinates); len(pts) > 0 {
			poly = append(poly, orb.Ring(pts))
		}
		for _, in := range pg.Inner {
			if pts := parseKMLCoords(in.LinearRing.Coordinates); len(pts) > 0 {
				poly = append(poly, orb.Ring(pts))
			}
		}
		if len(poly) > 0 {
			out = append(out, poly)
		}
	}
	for _, m := range g.Multi {
		out = appendKML(out, m)
	}
	return out
}

// parseKMLCoords reads "lon,lat[,alt]" tuples separated by whitespace.
// Altitude is ignored; malformed tuples are skipped.
func parseKMLCoords(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}
