package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSON reads a GeoJSON FeatureCollection, Feature or bare geometry.
// Features without geometry are ignored.
func ReadGeoJSON(path string) (orb.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("geojson %s: %w", path, err)
	}
	return c, nil
}

// ParseGeoJSON decodes GeoJSON bytes into a flat collection.
func ParseGeoJSON(data []byte) (orb.Collection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var out orb.Collection
	switch head.Type {
	case "":
		return nil, errors.New("missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			if f.Geometry != nil {
				out = append(out, f.Geometry)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		if f.Geometry != nil {
			out = append(out, f.Geometry)
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		if gg := g.Geometry(); gg != nil {
			out = append(out, gg)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no geometries found")
	}
	return out, nil
}
