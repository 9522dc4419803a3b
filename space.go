package pathplanning

import (
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/multierr"
)

// SpaceConfig is the raw workspace description: a boundary polygon and
// obstacle polygons in the same frame. Rings may be open or closed.
type SpaceConfig struct {
	Bounds    []orb.Point   `json:"bounds"`
	Obstacles [][]orb.Point `json:"obstacles"`
}

// Space is a validated workspace that answers admissibility queries for one robot.
// It is read-only after construction and safe for concurrent use.
type Space struct {
	boundary      orb.Ring
	boundaryEdges []LineSegment
	obstacles     []orb.Ring
	index         *obstacleIndex
	robot         Robot
	resolution    float64
}

// NewSpace validates the configuration and indexes the obstacles.
func NewSpace(cfg SpaceConfig, robot Robot) (*Space, error) {
	return newSpace(cfg, robot, 0)
}

func newSpace(cfg SpaceConfig, robot Robot, resolution float64) (*Space, error) {
	err := robot.Validate()

	boundary := closeRing(cfg.Bounds)
	err = multierr.Append(err, validateRing(boundary, "boundary"))

	obstacles := make([]orb.Ring, 0, len(cfg.Obstacles))
	for i, o := range cfg.Obstacles {
		ring := closeRing(o)
		if verr := validateRing(ring, fmt.Sprintf("obstacle %d", i)); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		obstacles = append(obstacles, ring)
	}
	if err != nil {
		return nil, err
	}

	if resolution <= 0 {
		resolution = min(robot.Width, robot.Height) / 4
	}
	obstacles = removeContainedObstacles(obstacles)

	return &Space{
		boundary:      boundary,
		boundaryEdges: ringEdges(boundary),
		obstacles:     obstacles,
		index:         newObstacleIndex(obstacles),
		robot:         robot,
		resolution:    resolution,
	}, nil
}

// Bound is the bounding box of the workspace boundary.
func (s *Space) Bound() orb.Bound {
	return s.boundary.Bound()
}

// Robot is the robot the space checks footprints for.
func (s *Space) Robot() Robot {
	return s.robot
}

// Obstacles returns the obstacle rings kept after construction.
func (s *Space) Obstacles() []orb.Ring {
	return s.obstacles
}

// PoseAdmissible reports whether the robot footprint at the pose lies inside
// the boundary and does not touch any obstacle.
func (s *Space) PoseAdmissible(p Pose) bool {
	if !p.finite() {
		return false
	}
	corners := s.robot.Footprint(p)
	footprint := footprintRing(corners)
	edges := ringEdges(footprint)

	for _, c := range corners {
		if !ringContains(s.boundary, c) {
			return false
		}
	}
	for _, e := range edges {
		if s.crossesBoundary(e) {
			return false
		}
	}

	for _, obstacle := range s.index.queryRegion(footprint.Bound()) {
		for _, c := range corners {
			if ringContains(obstacle, c) {
				return false
			}
		}
		for _, v := range obstacle {
			if ringContains(footprint, v) {
				return false
			}
		}
		for _, e := range edges {
			if segmentCrossesRing(e, obstacle) {
				return false
			}
		}
	}
	return true
}

// PathAdmissible checks the footprint along a Dubins path: every sampled pose
// must be admissible, and the segment swept by each footprint corner between
// consecutive samples must not touch the boundary or an obstacle.
func (s *Space) PathAdmissible(path DubinsPath) bool {
	poses := path.Poses(s.resolution)

	prev := s.robot.Footprint(poses[0])
	if !s.PoseAdmissible(poses[0]) {
		return false
	}
	for _, p := range poses[1:] {
		if !s.PoseAdmissible(p) {
			return false
		}
		cur := s.robot.Footprint(p)
		for i := range cur {
			if !s.segmentFree(LineSegment{P1: prev[i], P2: cur[i]}) {
				return false
			}
		}
		prev = cur
	}
	return true
}

// SegmentClear checks that the straight segment between two points stays
// inside the boundary and touches no obstacle. The footprint is not considered.
func (s *Space) SegmentClear(a, b orb.Point) bool {
	if !ringContains(s.boundary, a) || !ringContains(s.boundary, b) {
		return false
	}
	seg := LineSegment{P1: a, P2: b}
	if !s.segmentFree(seg) {
		return false
	}
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	for _, obstacle := range s.index.queryRegion(segmentBound(seg)) {
		if ringContains(obstacle, a) || ringContains(obstacle, b) || ringContains(obstacle, mid) {
			return false
		}
	}
	return true
}

// segmentFree is true when the segment touches neither the boundary nor any obstacle edge.
func (s *Space) segmentFree(seg LineSegment) bool {
	if s.crossesBoundary(seg) {
		return false
	}
	for _, obstacle := range s.index.queryRegion(segmentBound(seg)) {
		if segmentCrossesRing(seg, obstacle) {
			return false
		}
	}
	return true
}

func (s *Space) crossesBoundary(seg LineSegment) bool {
	for _, e := range s.boundaryEdges {
		if DoSegmentsIntersect(seg, e) {
			return true
		}
	}
	return false
}

func segmentBound(seg LineSegment) orb.Bound {
	return orb.Bound{Min: seg.P1, Max: seg.P1}.Extend(seg.P2)
}
