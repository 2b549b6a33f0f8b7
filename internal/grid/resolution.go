package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Steps converts a metric resolution into angular cell sizes at center:
// the longitude delta of the point meters due east and the latitude delta of
// the point meters due north.
func Steps(center orb.Point, meters float64) (lonStep, latStep float64, err error) {
	if !validStep(meters) {
		return 0, 0, fmt.Errorf("%g m: %w", meters, ErrInvalidResolution)
	}
	east := geo.PointAtBearingAndDistance(center, 90, meters)
	north := geo.PointAtBearingAndDistance(center, 0, meters)
	lonStep = east.Lon() - center.Lon()
	latStep = north.Lat() - center.Lat()
	if !validStep(lonStep) || !validStep(latStep) {
		return 0, 0, fmt.Errorf("%g m at %v: %w", meters, center, ErrInvalidResolution)
	}
	return lonStep, latStep, nil
}

// NorthSouthDifference returns how much wider, in meters, one cell is along
// the northern edge of the grid than along the southern edge. It is negative
// in the northern hemisphere.
func NorthSouthDifference(g Geometry) float64 {
	b := g.Bound()
	west := b.Min.Lon()
	east := west + g.LonResolution
	north := geo.DistanceHaversine(orb.Point{west, b.Max.Lat()}, orb.Point{east, b.Max.Lat()})
	south := geo.DistanceHaversine(orb.Point{west, b.Min.Lat()}, orb.Point{east, b.Min.Lat()})
	d := north - south
	if math.IsNaN(d) {
		return 0
	}
	return d
}
