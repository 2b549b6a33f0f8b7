// Package mask classifies grid cells against polygon rings and rasterizes a
// land/water mask over four quadrants in parallel.
package mask

import (
	"github.com/paulmach/orb"

	"shapemask/internal/geom"
)

// Classifier answers land/water for a single point. It only reads the ring
// store, so one value can be shared by every worker.
type Classifier struct {
	store *geom.RingStore
	water bool
}

// NewClassifier returns a classifier over store. When water is true the
// rings describe water and Land inverts the parity result.
func NewClassifier(store *geom.RingStore, water bool) Classifier {
	return Classifier{store: store, water: water}
}

// InsideCount returns how many rings contain p by the even-odd rule.
// Rings are tested independently, so nested rings stack.
func (c Classifier) InsideCount(p orb.Point) int {
	n := 0
	for _, r := range c.store.Rings() {
		if ringContains(r, p) {
			n++
		}
	}
	return n
}

// Land reports whether p is land: an odd InsideCount means the point is in
// the described region, and the water flag flips the answer.
func (c Classifier) Land(p orb.Point) bool {
	return (c.InsideCount(p)%2 == 1) != c.water
}

// ringContains is the PNPoly crossing test. The ring is closed implicitly
// and a repeated closing vertex adds a zero-length edge that never counts.
//
// A point exactly on an edge or vertex may be reported either way; the
// half-open comparison on latitude makes the result stable for a given
// ring but not symmetric between neighbouring rings.
func ringContains(r orb.Ring, p orb.Point) bool {
	in := false
	x, y := p[0], p[1]
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}
