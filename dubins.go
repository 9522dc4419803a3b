package pathplanning

import "math"

// dubinsEpsilon bounds the difference under which two poses are treated as equal.
const dubinsEpsilon = 1e-9

// segmentKind is the motion primitive of one Dubins segment.
type segmentKind int

const (
	turnLeft segmentKind = iota
	goStraight
	turnRight
)

// DubinsWord names the sequence of the three Dubins segments.
type DubinsWord int

// The six canonical Dubins words, in tie-break order.
const (
	LSL DubinsWord = iota
	LSR
	RSL
	RSR
	RLR
	LRL
)

var wordSegments = [6][3]segmentKind{
	LSL: {turnLeft, goStraight, turnLeft},
	LSR: {turnLeft, goStraight, turnRight},
	RSL: {turnRight, goStraight, turnLeft},
	RSR: {turnRight, goStraight, turnRight},
	RLR: {turnRight, turnLeft, turnRight},
	LRL: {turnLeft, turnRight, turnLeft},
}

func (w DubinsWord) String() string {
	switch w {
	case LSL:
		return "LSL"
	case LSR:
		return "LSR"
	case RSL:
		return "RSL"
	case RSR:
		return "RSR"
	case RLR:
		return "RLR"
	case LRL:
		return "LRL"
	}
	return "unknown"
}

// DubinsPath is a curvature-constrained connection between two poses.
// Params holds the three segment lengths normalized by Radius.
type DubinsPath struct {
	Start  Pose
	Params [3]float64
	Radius float64
	Word   DubinsWord
}

// intermediate holds the terms shared by all six word solvers.
type intermediate struct {
	alpha, beta, d    float64
	sa, sb, ca, cb    float64
	cosAlphaBeta, dSq float64
}

// ShortestDubins computes the shortest Dubins path from one pose to another
// with the given turning radius. It reports false when no word is feasible.
func ShortestDubins(from, to Pose, radius float64) (DubinsPath, bool) {
	if !(radius > 0) {
		return DubinsPath{}, false
	}
	if from.Distance(to) < dubinsEpsilon && angleDiff(from.Heading, to.Heading) < dubinsEpsilon {
		return DubinsPath{Start: from, Radius: radius, Word: LSL}, true
	}

	in := newIntermediate(from, to, radius)

	best := DubinsPath{Start: from, Radius: radius}
	bestCost := math.Inf(1)
	for w := LSL; w <= LRL; w++ {
		params, ok := buildWord(in, w)
		if !ok {
			continue
		}
		if cost := params[0] + params[1] + params[2]; cost < bestCost {
			bestCost = cost
			best.Params = params
			best.Word = w
		}
	}
	if math.IsInf(bestCost, 1) {
		return DubinsPath{}, false
	}
	return best, true
}

func newIntermediate(from, to Pose, radius float64) intermediate {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Sqrt(dx*dx+dy*dy) / radius

	var theta float64
	if d > 0 {
		theta = mod2pi(math.Atan2(dy, dx))
	}
	alpha, beta := mod2pi(from.Heading-theta), mod2pi(to.Heading-theta)

	return intermediate{
		alpha: alpha, beta: beta, d: d,
		sa: math.Sin(alpha), sb: math.Sin(beta),
		ca: math.Cos(alpha), cb: math.Cos(beta),
		cosAlphaBeta: math.Cos(alpha - beta), dSq: d * d,
	}
}

func buildWord(in intermediate, w DubinsWord) ([3]float64, bool) {
	switch w {
	case LSL:
		tmp0 := in.d + in.sa - in.sb
		pSq := 2 + in.dSq - 2*in.cosAlphaBeta + 2*in.d*(in.sa-in.sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp1 := math.Atan2(in.cb-in.ca, tmp0)
		return [3]float64{mod2pi(tmp1 - in.alpha), math.Sqrt(pSq), mod2pi(in.beta - tmp1)}, true
	case RSR:
		tmp0 := in.d - in.sa + in.sb
		pSq := 2 + in.dSq - 2*in.cosAlphaBeta + 2*in.d*(in.sb-in.sa)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp1 := math.Atan2(in.ca-in.cb, tmp0)
		return [3]float64{mod2pi(in.alpha - tmp1), math.Sqrt(pSq), mod2pi(tmp1 - in.beta)}, true
	case LSR:
		pSq := -2 + in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sa+in.sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(-in.ca-in.cb, in.d+in.sa+in.sb) - math.Atan2(-2, p)
		return [3]float64{mod2pi(tmp - in.alpha), p, mod2pi(tmp - mod2pi(in.beta))}, true
	case RSL:
		pSq := -2 + in.dSq + 2*in.cosAlphaBeta - 2*in.d*(in.sa+in.sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(in.ca+in.cb, in.d-in.sa-in.sb) - math.Atan2(2, p)
		return [3]float64{mod2pi(in.alpha - tmp), p, mod2pi(in.beta - tmp)}, true
	case RLR:
		tmp := (6 - in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sa-in.sb)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		phi := math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb)
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(in.alpha - phi + mod2pi(p/2))
		return [3]float64{t, p, mod2pi(in.alpha - in.beta - t + mod2pi(p))}, true
	case LRL:
		tmp := (6 - in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sb-in.sa)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		phi := math.Atan2(in.ca-in.cb, in.d+in.sa-in.sb)
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(-in.alpha - phi + p/2)
		return [3]float64{t, p, mod2pi(mod2pi(in.beta) - in.alpha - t + mod2pi(p))}, true
	}
	return [3]float64{}, false
}

// Length is the arc length of the path.
func (p DubinsPath) Length() float64 {
	return (p.Params[0] + p.Params[1] + p.Params[2]) * p.Radius
}

// Sample returns the pose reached after travelling s along the path.
// s is clamped to [0, Length()].
func (p DubinsPath) Sample(s float64) Pose {
	if p.Radius <= 0 {
		return p.Start
	}
	s = math.Max(0, math.Min(s, p.Length()))
	t := s / p.Radius
	kinds := wordSegments[p.Word]

	q0 := [3]float64{0, 0, p.Start.Heading}
	q1 := advance(q0, p.Params[0], kinds[0])
	q2 := advance(q1, p.Params[1], kinds[1])

	var q [3]float64
	switch {
	case t < p.Params[0]:
		q = advance(q0, t, kinds[0])
	case t < p.Params[0]+p.Params[1]:
		q = advance(q1, t-p.Params[0], kinds[1])
	default:
		q = advance(q2, t-p.Params[0]-p.Params[1], kinds[2])
	}

	return NewPose(q[0]*p.Radius+p.Start.X, q[1]*p.Radius+p.Start.Y, q[2])
}

// End is the final pose of the path.
func (p DubinsPath) End() Pose {
	return p.Sample(p.Length())
}

// Truncate keeps only the first s units of the path.
func (p DubinsPath) Truncate(s float64) DubinsPath {
	if s >= p.Length() {
		return p
	}
	t := math.Max(0, s/p.Radius)

	out := p
	out.Params[0] = math.Min(p.Params[0], t)
	out.Params[1] = math.Max(0, math.Min(p.Params[1], t-out.Params[0]))
	out.Params[2] = math.Max(0, math.Min(p.Params[2], t-out.Params[0]-out.Params[1]))
	return out
}

// Poses samples the path every step units, always including both ends.
func (p DubinsPath) Poses(step float64) []Pose {
	length := p.Length()
	if length == 0 || !(step > 0) {
		return []Pose{p.Start, p.End()}
	}

	n := int(math.Ceil(length / step))
	poses := make([]Pose, 0, n+1)
	for i := 0; i < n; i++ {
		poses = append(poses, p.Sample(float64(i)*length/float64(n)))
	}
	return append(poses, p.End())
}

// advance moves a unit-radius configuration t along one primitive.
func advance(q [3]float64, t float64, kind segmentKind) [3]float64 {
	st, ct := math.Sin(q[2]), math.Cos(q[2])
	var out [3]float64
	switch kind {
	case turnLeft:
		out = [3]float64{math.Sin(q[2]+t) - st, -math.Cos(q[2]+t) + ct, t}
	case turnRight:
		out = [3]float64{-math.Sin(q[2]-t) + st, math.Cos(q[2]-t) - ct, -t}
	case goStraight:
		out = [3]float64{ct * t, st * t, 0}
	}
	return [3]float64{out[0] + q[0], out[1] + q[1], out[2] + q[2]}
}

// mod2pi wraps an angle into [0, 2pi), snapping values within float noise of 2pi to 0.
func mod2pi(theta float64) float64 {
	v := theta - 2*math.Pi*math.Floor(theta/(2*math.Pi))
	if 2*math.Pi-v < 1e-10 {
		return 0
	}
	return v
}
