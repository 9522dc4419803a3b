package pathplanning

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"go.viam.com/test"
)

func TestSimplify(t *testing.T) {
	t.Run("collinear points collapse", func(t *testing.T) {
		line := orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
		test.That(t, Simplify(line, 0.01), test.ShouldResemble, orb.LineString{{0, 0}, {3, 0}})
	})

	t.Run("corner survives", func(t *testing.T) {
		line := orb.LineString{{0, 0}, {1, 0.05}, {2, 0}, {2, 2}}
		test.That(t, Simplify(line, 0.1), test.ShouldResemble, orb.LineString{{0, 0}, {2, 0}, {2, 2}})
	})

	t.Run("short input is copied", func(t *testing.T) {
		line := orb.LineString{{0, 0}, {1, 1}}
		out := Simplify(line, 10)
		test.That(t, out, test.ShouldResemble, line)
		out[0] = orb.Point{5, 5}
		test.That(t, line[0], test.ShouldResemble, orb.Point{0, 0})

		test.That(t, Simplify(nil, 1), test.ShouldBeEmpty)
		test.That(t, Simplify(orb.LineString{{4, 4}}, 1), test.ShouldResemble, orb.LineString{{4, 4}})
	})

	t.Run("zero tolerance keeps corners", func(t *testing.T) {
		line := orb.LineString{{0, 0}, {1, 1}, {2, 0}}
		test.That(t, Simplify(line, 0), test.ShouldResemble, line)
		test.That(t, Simplify(line, -1), test.ShouldResemble, line)
	})
}

func TestSimplifyProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		line := make(orb.LineString, 0, 40)
		x, y := 0.0, 0.0
		for j := 0; j < 40; j++ {
			x += rnd.Float64()
			y += rnd.Float64() - 0.5
			line = append(line, orb.Point{x, y})
		}
		before := line.Clone()
		tol := rnd.Float64()

		out := Simplify(line, tol)
		test.That(t, line, test.ShouldResemble, before)
		test.That(t, out[0], test.ShouldResemble, line[0])
		test.That(t, out[len(out)-1], test.ShouldResemble, line[len(line)-1])
		test.That(t, len(out), test.ShouldBeLessThanOrEqualTo, len(line))
		test.That(t, MaxDeviation(line, out), test.ShouldBeLessThanOrEqualTo, tol+1e-12)

		// simplifying again changes nothing
		test.That(t, Simplify(out, tol), test.ShouldResemble, out)
	}
}

func TestMaxDeviation(t *testing.T) {
	line := orb.LineString{{0, 0}, {1, 0.5}, {2, 0}}
	test.That(t, MaxDeviation(line, orb.LineString{{0, 0}, {2, 0}}), test.ShouldAlmostEqual, 0.5)
	test.That(t, MaxDeviation(line, line), test.ShouldEqual, 0.0)
	test.That(t, MaxDeviation(line, orb.LineString{{0, 0}}), test.ShouldAlmostEqual, 2.0)
	test.That(t, math.IsInf(MaxDeviation(line, nil), 1), test.ShouldBeTrue)
}
