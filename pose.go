package pathplanning

import (
	"math"

	"github.com/paulmach/orb"
)

// Pose is a planar position with a heading in radians.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// NewPose builds a pose with the heading normalized to [-pi, pi).
func NewPose(x, y, heading float64) Pose {
	return Pose{X: x, Y: y, Heading: normalizeAngle(heading)}
}

// Point drops the heading.
func (p Pose) Point() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Distance calculates Euclidean distance between the positions of two poses
func (p Pose) Distance(other Pose) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Pose) finite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Heading} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// normalizeAngle wraps an angle into [-pi, pi).
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}

// angleDiff is the absolute smallest rotation between two headings, in [0, pi].
func angleDiff(a, b float64) float64 {
	return math.Abs(normalizeAngle(a - b))
}
