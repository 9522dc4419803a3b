package pathplanning

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Outcome is the terminal state of a planning run.
type Outcome int

const (
	// Found means the goal was connected to the tree.
	Found Outcome = iota + 1
	// Exhausted means the iteration budget ran out.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "found":
		*o = Found
	case "exhausted":
		*o = Exhausted
	default:
		return errors.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Result is what one planning run produced. Path is only set when Outcome is Found.
type Result struct {
	Outcome    Outcome        `json:"outcome"`
	Path       orb.LineString `json:"path,omitempty"`
	Iterations int            `json:"iterations"`
	Nodes      int            `json:"nodes"`
}

// Finalize turns a polled result into a path. A nil result has not been
// produced yet; an exhausted one fails with ErrNoPathFound.
func Finalize(res *Result) (orb.LineString, error) {
	if res == nil {
		return nil, ErrNotFinished
	}
	if res.Outcome != Found {
		return nil, ErrNoPathFound
	}
	return res.Path, nil
}

// extract walks from the goal node back to the root and concatenates the
// sampled Dubins edges into a start-to-goal polyline.
func (p *Planner) extract(t *tree, goalID int) orb.LineString {
	ids := t.branch(goalID)

	path := orb.LineString{p.start.Point()}
	for _, id := range ids[1:] {
		poses := t.nodes[id].edge.Poses(p.opts.PathResolution)
		for _, pose := range poses[1:] {
			pt := pose.Point()
			if pt.Equal(path[len(path)-1]) {
				continue
			}
			path = append(path, pt)
		}
	}

	// pin the endpoints exactly; sampling leaves float noise at the goal
	if len(path) == 1 {
		path = append(path, p.goal.Point())
	} else {
		path[len(path)-1] = p.goal.Point()
	}
	return path
}

// PathLength is the planar length of a polyline.
func PathLength(path orb.LineString) float64 {
	return planar.Length(path)
}
