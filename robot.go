package pathplanning

import (
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/multierr"
)

// Robot describes the rectangular footprint and steering limit of the vehicle.
// Height is the extent along the heading and is also used as the wheelbase.
type Robot struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	MaxSteer float64 `json:"maxSteer"` // radians
}

// NewRobot builds a validated Robot.
func NewRobot(width, height, maxSteer float64) (Robot, error) {
	r := Robot{Width: width, Height: height, MaxSteer: maxSteer}
	if err := r.Validate(); err != nil {
		return Robot{}, err
	}
	return r, nil
}

// Validate reports every problem with the robot dimensions.
func (r Robot) Validate() error {
	var err error
	if !(r.Width > 0) || math.IsInf(r.Width, 0) {
		err = multierr.Append(err, configError("robot width must be positive, got %v", r.Width))
	}
	if !(r.Height > 0) || math.IsInf(r.Height, 0) {
		err = multierr.Append(err, configError("robot height must be positive, got %v", r.Height))
	}
	if !(r.MaxSteer > 0 && r.MaxSteer < math.Pi/2) {
		err = multierr.Append(err, configError("robot max steering angle must be in (0, pi/2), got %v", r.MaxSteer))
	}
	return err
}

// MinTurningRadius uses the bicycle model: wheelbase / tan(max steering angle).
func (r Robot) MinTurningRadius() float64 {
	return r.Height / math.Tan(r.MaxSteer)
}

// Footprint returns the corners of the robot rectangle placed at the pose,
// counter-clockwise starting at the rear right corner.
func (r Robot) Footprint(p Pose) [4]orb.Point {
	hl, hw := r.Height/2, r.Width/2
	c, s := math.Cos(p.Heading), math.Sin(p.Heading)
	local := [4][2]float64{{-hl, -hw}, {hl, -hw}, {hl, hw}, {-hl, hw}}

	var corners [4]orb.Point
	for i, l := range local {
		corners[i] = orb.Point{
			p.X + l[0]*c - l[1]*s,
			p.Y + l[0]*s + l[1]*c,
		}
	}
	return corners
}

// footprintRing closes the footprint corners into a ring.
func footprintRing(corners [4]orb.Point) orb.Ring {
	return orb.Ring{corners[0], corners[1], corners[2], corners[3], corners[0]}
}
