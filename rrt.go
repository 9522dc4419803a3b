package pathplanning

import (
	"math"
	"math/rand"
	"time"

	"github.com/paulmach/orb"
)

// Run grows an RRT from the start pose until the goal is connected or the
// iteration budget is spent. The tree lives only for the duration of the call.
func (p *Planner) Run() Result {
	startTime := time.Now()
	//nolint:gosec
	rnd := rand.New(rand.NewSource(p.opts.Seed))
	t := newTree(p.start, p.opts.HeadingWeight, p.opts.NearestCandidates)
	bound := p.space.Bound()

	p.logger.Debugf("planning from %+v to %+v (radius %.3f, step %.3f, %d iterations)",
		p.start, p.goal, p.radius, p.stepSize, p.maxIter)

	if goalID, ok := p.connectGoal(t, 0); ok {
		return p.found(t, goalID, 0, startTime)
	}

	rejected := 0
	for i := 1; i <= p.maxIter; i++ {
		target := p.sample(rnd, bound)

		nearID := t.nearest(target)
		path, ok := ShortestDubins(t.nodes[nearID].pose, target, p.radius)
		if !ok || path.Length() < dubinsEpsilon {
			continue
		}
		if path.Length() > p.stepSize {
			path = path.Truncate(p.stepSize)
		}

		if !p.space.PathAdmissible(path) {
			rejected++
			continue
		}
		id := t.add(path.End(), nearID, path)

		if goalID, ok := p.connectGoal(t, id); ok {
			return p.found(t, goalID, i, startTime)
		}
	}

	p.logger.Infow("no path found",
		"iterations", p.maxIter,
		"nodes", t.size(),
		"rejected", rejected,
		"elapsed", time.Since(startTime))
	return Result{Outcome: Exhausted, Iterations: p.maxIter, Nodes: t.size()}
}

// sample draws the goal with probability GoalBias, otherwise a uniform pose
// in the boundary's bounding box.
func (p *Planner) sample(rnd *rand.Rand, bound orb.Bound) Pose {
	if rnd.Float64() < p.opts.GoalBias {
		return p.goal
	}
	return Pose{
		X:       bound.Min[0] + rnd.Float64()*(bound.Max[0]-bound.Min[0]),
		Y:       bound.Min[1] + rnd.Float64()*(bound.Max[1]-bound.Min[1]),
		Heading: -math.Pi + rnd.Float64()*2*math.Pi,
	}
}

// connectGoal tries a full Dubins connection from a node to the goal and adds
// the goal node when it is admissible.
func (p *Planner) connectGoal(t *tree, id int) (int, bool) {
	path, ok := ShortestDubins(t.nodes[id].pose, p.goal, p.radius)
	if !ok || !p.space.PathAdmissible(path) {
		return 0, false
	}
	return t.add(p.goal, id, path), true
}

func (p *Planner) found(t *tree, goalID, iterations int, startTime time.Time) Result {
	path := p.extract(t, goalID)
	if p.opts.SimplifyTolerance > 0 {
		path = Simplify(path, p.opts.SimplifyTolerance)
	}

	p.logger.Infow("path found",
		"iterations", iterations,
		"nodes", t.size(),
		"waypoints", len(path),
		"length", PathLength(path),
		"elapsed", time.Since(startTime))
	return Result{Outcome: Found, Path: path, Iterations: iterations, Nodes: t.size()}
}
