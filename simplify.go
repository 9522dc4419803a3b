package pathplanning

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces a polyline with the Douglas-Peucker algorithm. The first
// and last points are always kept and no removed point is farther than the
// tolerance from the simplified line. The input is not modified.
func Simplify(points orb.LineString, tolerance float64) orb.LineString {
	if len(points) <= 2 {
		return points.Clone()
	}
	if !(tolerance > 0) {
		tolerance = 0
	}
	return simplify.DouglasPeucker(tolerance).LineString(points.Clone())
}

// MaxDeviation returns the largest distance from any point of the original
// polyline to the simplified one.
func MaxDeviation(original, simplified orb.LineString) float64 {
	if len(simplified) == 0 {
		return math.Inf(1)
	}
	worst := 0.0
	for _, p := range original {
		best := math.Inf(1)
		if len(simplified) == 1 {
			best = distance(p, simplified[0])
		}
		for i := 0; i < len(simplified)-1; i++ {
			best = math.Min(best, segmentDistance(p, simplified[i], simplified[i+1]))
		}
		worst = math.Max(worst, best)
	}
	return worst
}

// segmentDistance calculates the distance from a point to a segment
func segmentDistance(point, lineStart, lineEnd orb.Point) float64 {
	dx := lineEnd[0] - lineStart[0]
	dy := lineEnd[1] - lineStart[1]

	magSq := dx*dx + dy*dy
	if magSq == 0 {
		return distance(point, lineStart)
	}

	// project onto the segment and clamp to its ends
	t := ((point[0]-lineStart[0])*dx + (point[1]-lineStart[1])*dy) / magSq
	t = math.Max(0, math.Min(1, t))

	return distance(point, orb.Point{lineStart[0] + t*dx, lineStart[1] + t*dy})
}

func distance(p1, p2 orb.Point) float64 {
	dx := p1[0] - p2[0]
	dy := p1[1] - p2[1]
	return math.Sqrt(dx*dx + dy*dy)
}
