package pathplanning

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 64

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 orb.Point
}

// DoSegmentsIntersect checks if two line segments intersect, touching included
func DoSegmentsIntersect(seg1, seg2 LineSegment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear and endpoint cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment checks if point q lies within the bounding box of segment pr
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}

// closeRing returns a copy of the points as a closed ring.
func closeRing(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}

// ringEdges lists the edges of a closed ring.
func ringEdges(ring orb.Ring) []LineSegment {
	if len(ring) < 2 {
		return nil
	}
	edges := make([]LineSegment, 0, len(ring)-1)
	for i := 0; i < len(ring)-1; i++ {
		edges = append(edges, LineSegment{P1: ring[i], P2: ring[i+1]})
	}
	return edges
}

// validateRing checks that a closed ring is a simple polygon with non-zero area.
func validateRing(ring orb.Ring, name string) error {
	if len(ring) < 4 {
		return configError("%s needs at least 3 distinct vertices, got %d", name, len(ring)-1)
	}
	for i, p := range ring {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return configError("%s vertex %d is not finite", name, i)
		}
	}
	if math.Abs(planar.Area(ring)) < 1e-12 {
		return configError("%s has zero area", name)
	}

	edges := ringEdges(ring)
	n := len(edges)
	for i := 0; i < n; i++ {
		if edges[i].P1.Equal(edges[i].P2) {
			return configError("%s repeats vertex %d", name, i)
		}
		for j := i + 1; j < n; j++ {
			// adjacent edges share a vertex by construction
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if DoSegmentsIntersect(edges[i], edges[j]) {
				return configError("%s is self-intersecting (edges %d and %d)", name, i, j)
			}
		}
	}
	return nil
}

// ringContains reports whether the point is inside the ring or on its boundary.
func ringContains(ring orb.Ring, p orb.Point) bool {
	return planar.RingContains(ring, p)
}

// segmentCrossesRing checks if a segment touches any edge of a ring.
func segmentCrossesRing(seg LineSegment, ring orb.Ring) bool {
	for i := 0; i < len(ring)-1; i++ {
		if DoSegmentsIntersect(seg, LineSegment{P1: ring[i], P2: ring[i+1]}) {
			return true
		}
	}
	return false
}

// CreateCircle approximates a circle as a closed ring of boundary points.
func CreateCircle(center orb.Point, radius float64) (orb.Ring, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, configError("circle radius must be positive, got %v", radius)
	}

	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(theta),
			center[1] + radius*math.Sin(theta),
		})
	}
	ring = append(ring, ring[0])
	return ring, nil
}
