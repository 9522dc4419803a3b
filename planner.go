// Package pathplanning plans collision-free paths for a rectangular,
// car-like robot in a polygonal workspace. Paths are grown as a
// rapidly-exploring random tree whose edges are Dubins curves bounded by the
// robot's minimum turning radius.
package pathplanning

import (
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Request fully specifies one planning run.
type Request struct {
	Start         Pose        `json:"start"`
	Goal          Pose        `json:"goal"`
	MaxIterations int         `json:"maxIterations"`
	StepSize      float64     `json:"stepSize"`
	Space         SpaceConfig `json:"space"`
	Robot         Robot       `json:"robot"`
	Options       Options     `json:"options,omitempty"`
}

// Planner is a validated request ready to run. It holds no per-run state, so
// one Planner may be run any number of times, sequentially or concurrently.
type Planner struct {
	start    Pose
	goal     Pose
	maxIter  int
	stepSize float64
	radius   float64
	space    *Space
	opts     Options
	logger   *zap.SugaredLogger
}

// NewPlanner validates the request and builds the workspace. Every
// configuration problem found is reported in the returned error, which wraps
// ErrInvalidConfig.
func NewPlanner(req Request, logger *zap.SugaredLogger) (*Planner, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var err error
	if req.MaxIterations <= 0 {
		err = multierr.Append(err, configError("max iterations must be positive, got %d", req.MaxIterations))
	}
	if !(req.StepSize > 0) || math.IsInf(req.StepSize, 0) {
		err = multierr.Append(err, configError("step size must be positive, got %v", req.StepSize))
	}
	if !req.Start.finite() {
		err = multierr.Append(err, configError("start pose is not finite: %+v", req.Start))
	}
	if !req.Goal.finite() {
		err = multierr.Append(err, configError("goal pose is not finite: %+v", req.Goal))
	}
	err = multierr.Append(err, req.Robot.Validate())
	if err != nil {
		return nil, err
	}

	// defaults derive from the robot size, so the robot must be valid first
	opts := req.Options.withDefaults(req.StepSize, req.Robot)
	if verr := opts.validate(); verr != nil {
		return nil, verr
	}

	space, err := newSpace(req.Space, req.Robot, opts.CollisionResolution)
	if err != nil {
		return nil, err
	}

	start := NewPose(req.Start.X, req.Start.Y, req.Start.Heading)
	goal := NewPose(req.Goal.X, req.Goal.Y, req.Goal.Heading)
	if !space.PoseAdmissible(start) {
		err = multierr.Append(err, configError("start pose %+v is not admissible", start))
	}
	if !space.PoseAdmissible(goal) {
		err = multierr.Append(err, configError("goal pose %+v is not admissible", goal))
	}
	if err != nil {
		return nil, err
	}

	return &Planner{
		start:    start,
		goal:     goal,
		maxIter:  req.MaxIterations,
		stepSize: req.StepSize,
		radius:   req.Robot.MinTurningRadius(),
		space:    space,
		opts:     opts,
		logger:   logger,
	}, nil
}

// Plan validates the request and runs it on the calling goroutine.
func Plan(req Request, logger *zap.SugaredLogger) (orb.LineString, error) {
	p, err := NewPlanner(req, logger)
	if err != nil {
		return nil, err
	}
	return p.Plan()
}

// Plan runs the search synchronously and returns the path, or ErrNoPathFound.
func (p *Planner) Plan() (orb.LineString, error) {
	res := p.Run()
	return Finalize(&res)
}

// PlanAsync starts the search on its own goroutine and returns immediately.
func (p *Planner) PlanAsync() *Future {
	return startFuture(p.Run, p.logger)
}

// Space is the validated workspace the planner checks against.
func (p *Planner) Space() *Space {
	return p.space
}

// TurningRadius is the minimum turning radius derived from the robot.
func (p *Planner) TurningRadius() float64 {
	return p.radius
}
