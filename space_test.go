package pathplanning

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"go.viam.com/test"
)

var (
	unitRobot = Robot{Width: 1, Height: 1, MaxSteer: 0.5}
	box10     = []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
)

func newTestSpace(t *testing.T, obstacles ...[]orb.Point) *Space {
	t.Helper()
	s, err := NewSpace(SpaceConfig{Bounds: box10, Obstacles: obstacles}, unitRobot)
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestNewSpaceValidation(t *testing.T) {
	_, err := NewSpace(SpaceConfig{Bounds: []orb.Point{{0, 0}, {1, 1}}}, unitRobot)
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)

	_, err = NewSpace(SpaceConfig{
		Bounds:    box10,
		Obstacles: [][]orb.Point{{{0, 0}, {1, 1}, {1, 0}, {0, 1}}},
	}, unitRobot)
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)

	_, err = NewSpace(SpaceConfig{Bounds: box10}, Robot{Width: -1, Height: 1, MaxSteer: 0.5})
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
}

func TestPoseAdmissible(t *testing.T) {
	s := newTestSpace(t, []orb.Point{{4, 4}, {6, 4}, {6, 6}, {4, 6}})

	test.That(t, s.PoseAdmissible(NewPose(1, 1, 0)), test.ShouldBeTrue)
	test.That(t, s.PoseAdmissible(NewPose(9, 9, math.Pi/4)), test.ShouldBeTrue)

	// footprint crosses the boundary
	test.That(t, s.PoseAdmissible(NewPose(0.2, 5, 0)), test.ShouldBeFalse)
	test.That(t, s.PoseAdmissible(NewPose(-3, 5, 0)), test.ShouldBeFalse)
	// rotated footprint pokes out through a corner
	test.That(t, s.PoseAdmissible(NewPose(0.6, 0.6, math.Pi/4)), test.ShouldBeFalse)

	// centre inside the obstacle, corner inside the obstacle, edge grazing the obstacle
	test.That(t, s.PoseAdmissible(NewPose(5, 5, 0)), test.ShouldBeFalse)
	test.That(t, s.PoseAdmissible(NewPose(3.7, 3.7, 0)), test.ShouldBeFalse)
	test.That(t, s.PoseAdmissible(NewPose(3.5, 5, 0)), test.ShouldBeFalse)
	test.That(t, s.PoseAdmissible(NewPose(3.4, 5, 0)), test.ShouldBeTrue)

	test.That(t, s.PoseAdmissible(Pose{X: math.NaN(), Y: 1}), test.ShouldBeFalse)
}

func TestPoseAdmissibleObstacleInsideFootprint(t *testing.T) {
	robot := Robot{Width: 4, Height: 4, MaxSteer: 0.5}
	s, err := NewSpace(SpaceConfig{
		Bounds:    box10,
		Obstacles: [][]orb.Point{{{4.9, 4.9}, {5.1, 4.9}, {5.1, 5.1}, {4.9, 5.1}}},
	}, robot)
	test.That(t, err, test.ShouldBeNil)

	// the obstacle is smaller than the robot and sits between its corners
	test.That(t, s.PoseAdmissible(NewPose(5, 5, 0)), test.ShouldBeFalse)
	test.That(t, s.PoseAdmissible(NewPose(2.5, 2.5, 0)), test.ShouldBeTrue)
}

func TestPathAdmissible(t *testing.T) {
	s := newTestSpace(t, []orb.Point{{4, 0}, {6, 0}, {6, 6}, {4, 6}})

	openPath, ok := ShortestDubins(NewPose(1, 8, 0), NewPose(9, 8, 0), 2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, s.PathAdmissible(openPath), test.ShouldBeTrue)

	blocked, ok := ShortestDubins(NewPose(1, 3, 0), NewPose(9, 3, 0), 2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, s.PathAdmissible(blocked), test.ShouldBeFalse)

	// both ends admissible, the curve in between leaves the boundary
	loop, ok := ShortestDubins(NewPose(8, 8, 0), NewPose(8, 9, math.Pi), 2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, s.PathAdmissible(loop), test.ShouldBeFalse)
}

func TestSegmentClear(t *testing.T) {
	s := newTestSpace(t, []orb.Point{{4, 4}, {6, 4}, {6, 6}, {4, 6}})

	test.That(t, s.SegmentClear(orb.Point{1, 1}, orb.Point{9, 1}), test.ShouldBeTrue)
	test.That(t, s.SegmentClear(orb.Point{1, 1}, orb.Point{9, 9}), test.ShouldBeFalse)
	test.That(t, s.SegmentClear(orb.Point{1, 1}, orb.Point{11, 1}), test.ShouldBeFalse)
	test.That(t, s.SegmentClear(orb.Point{4.5, 4.5}, orb.Point{5.5, 5.5}), test.ShouldBeFalse)
}

func TestContainedObstaclesRemoved(t *testing.T) {
	s := newTestSpace(t,
		[]orb.Point{{2, 2}, {8, 2}, {8, 8}, {2, 8}},
		[]orb.Point{{3, 3}, {4, 3}, {4, 4}, {3, 4}},
		[]orb.Point{{0.5, 0.5}, {1, 0.5}, {1, 1}, {0.5, 1}},
	)
	test.That(t, s.Obstacles(), test.ShouldHaveLength, 2)
}

func TestNotchedObstacleKeepsSpanningObstacle(t *testing.T) {
	notched := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {6, 10}, {5, 5}, {4, 10}, {0, 10}}
	// every vertex of the triangle is on the notched ring, its top edge spans the notch
	triangle := []orb.Point{{0, 10}, {10, 10}, {5, 1}}

	s, err := NewSpace(SpaceConfig{
		Bounds:    box10,
		Obstacles: [][]orb.Point{notched, triangle},
	}, Robot{Width: 0.2, Height: 0.2, MaxSteer: 0.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Obstacles(), test.ShouldHaveLength, 2)
	test.That(t, s.PoseAdmissible(NewPose(5, 8.5, 0)), test.ShouldBeFalse)
}

func TestSpaceBound(t *testing.T) {
	s := newTestSpace(t)
	test.That(t, s.Bound(), test.ShouldResemble, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}})
	test.That(t, s.Robot(), test.ShouldResemble, unitRobot)
}
