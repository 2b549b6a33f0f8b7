package geom

import "github.com/paulmach/orb"

// RingStore is the frozen, ordered set of rings handed to the rasterizer.
// It is never mutated after Freeze, so workers share it without locking.
type RingStore struct {
	rings []orb.Ring
	bound orb.Bound
}

// Len returns the number of rings.
func (s *RingStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rings)
}

// Ring returns ring i. Callers must not modify it.
func (s *RingStore) Ring(i int) orb.Ring { return s.rings[i] }

// Rings returns the backing slice. Callers must not modify it.
func (s *RingStore) Rings() []orb.Ring {
	if s == nil {
		return nil
	}
	return s.rings
}

// Vertices returns the total vertex count across all rings.
func (s *RingStore) Vertices() int {
	n := 0
	for _, r := range s.Rings() {
		n += len(r)
	}
	return n
}

// Bound returns the envelope of every vertex in the store.
func (s *RingStore) Bound() orb.Bound { return s.bound }

// RingBuilder collects rings while a vector source is scanned.
// Rings are closed implicitly; a repeated closing vertex is kept as-is.
type RingBuilder struct {
	rings []orb.Ring
	cur   orb.Ring
	open  bool
	bound orb.Bound
	empty bool
}

// NewRingBuilder returns an empty builder.
func NewRingBuilder() *RingBuilder {
	return &RingBuilder{empty: true}
}

// StartRing ends the current ring (if any) and begins a new one.
func (b *RingBuilder) StartRing() {
	b.endRing()
	b.cur = nil
	b.open = true
}

// AddPoint appends a vertex to the current ring, starting one if needed.
func (b *RingBuilder) AddPoint(lon, lat float64) {
	if !b.open {
		b.StartRing()
	}
	p := orb.Point{lon, lat}
	b.cur = append(b.cur, p)
	if b.empty {
		b.bound = orb.Bound{Min: p, Max: p}
		b.empty = false
	} else {
		b.bound = b.bound.Extend(p)
	}
}

// AddRing appends a complete ring.
func (b *RingBuilder) AddRing(pts []orb.Point) {
	b.StartRing()
	for _, p := range pts {
		b.AddPoint(p[0], p[1])
	}
	b.endRing()
}

// AddGeometry appends the rings of any polygonal or linear orb geometry.
// Points and collections of points contribute nothing.
func (b *RingBuilder) AddGeometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Ring:
		b.AddRing(g)
	case orb.Polygon:
		for _, r := range g {
			b.AddRing(r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			b.AddGeometry(p)
		}
	case orb.LineString:
		b.AddRing(g)
	case orb.MultiLineString:
		for _, ls := range g {
			b.AddRing(ls)
		}
	case orb.Collection:
		for _, c := range g {
			b.AddGeometry(c)
		}
	case orb.Bound:
		b.AddGeometry(g.ToPolygon())
	}
}

func (b *RingBuilder) endRing() {
	if b.open && len(b.cur) >= 2 {
		b.rings = append(b.rings, b.cur)
	}
	b.cur = nil
	b.open = false
}

// Len returns the number of completed rings so far.
func (b *RingBuilder) Len() int { return len(b.rings) }

// Freeze finishes the last ring and returns the read-only store.
// The builder must not be used afterwards.
func (b *RingBuilder) Freeze() *RingStore {
	b.endRing()
	s := &RingStore{rings: b.rings, bound: b.bound}
	b.rings = nil
	return s
}
