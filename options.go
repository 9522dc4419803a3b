package pathplanning

import (
	"math"

	"go.uber.org/multierr"
)

// default values for planner options.
const (
	// Probability of sampling the goal pose instead of a uniform random pose.
	defaultGoalBias = 0.1

	// Weight of heading difference (radians) against positional distance in the nearest-node metric.
	defaultHeadingWeight = 0.5

	// Number of positionally nearest tree nodes ranked by the full metric.
	defaultNearestCandidates = 16

	// Seed of the per-run random source.
	defaultSeed = 1
)

// Options tunes a planning run. Zero values are replaced by defaults.
type Options struct {
	// GoalBias is the probability in [0, 1] of steering toward the goal on an iteration.
	GoalBias float64 `json:"goalBias,omitempty"`

	// HeadingWeight scales heading difference in the nearest-node metric
	// d = |dxy| + HeadingWeight*|dtheta|.
	HeadingWeight float64 `json:"headingWeight,omitempty"`

	// NearestCandidates is how many positional nearest neighbours are re-ranked by the metric.
	NearestCandidates int `json:"nearestCandidates,omitempty"`

	// CollisionResolution is the arc length between footprint checks along a curve.
	// Defaults to a quarter of the smaller robot dimension, capped by the step size.
	CollisionResolution float64 `json:"collisionResolution,omitempty"`

	// PathResolution is the spacing of output waypoints along each curve. Defaults to StepSize/4.
	PathResolution float64 `json:"pathResolution,omitempty"`

	// SimplifyTolerance, when positive, simplifies the extracted path.
	SimplifyTolerance float64 `json:"simplifyTolerance,omitempty"`

	// Seed of the random source; runs with the same request and seed are identical.
	Seed int64 `json:"seed,omitempty"`
}

func (o Options) withDefaults(stepSize float64, robot Robot) Options {
	if o.GoalBias == 0 {
		o.GoalBias = defaultGoalBias
	}
	if o.HeadingWeight == 0 {
		o.HeadingWeight = defaultHeadingWeight
	}
	if o.NearestCandidates == 0 {
		o.NearestCandidates = defaultNearestCandidates
	}
	if o.CollisionResolution == 0 {
		o.CollisionResolution = math.Min(math.Min(robot.Width, robot.Height)/4, stepSize)
	}
	if o.PathResolution == 0 {
		o.PathResolution = stepSize / 4
	}
	if o.Seed == 0 {
		o.Seed = defaultSeed
	}
	return o
}

func (o Options) validate() error {
	var err error
	if o.GoalBias < 0 || o.GoalBias > 1 || math.IsNaN(o.GoalBias) {
		err = multierr.Append(err, configError("goal bias must be in [0, 1], got %v", o.GoalBias))
	}
	if o.HeadingWeight < 0 || math.IsNaN(o.HeadingWeight) {
		err = multierr.Append(err, configError("heading weight must not be negative, got %v", o.HeadingWeight))
	}
	if o.NearestCandidates < 1 {
		err = multierr.Append(err, configError("nearest candidates must be positive, got %d", o.NearestCandidates))
	}
	if !(o.CollisionResolution > 0) {
		err = multierr.Append(err, configError("collision resolution must be positive, got %v", o.CollisionResolution))
	}
	if !(o.PathResolution > 0) {
		err = multierr.Append(err, configError("path resolution must be positive, got %v", o.PathResolution))
	}
	if o.SimplifyTolerance < 0 || math.IsNaN(o.SimplifyTolerance) {
		err = multierr.Append(err, configError("simplify tolerance must not be negative, got %v", o.SimplifyTolerance))
	}
	return err
}
