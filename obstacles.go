package pathplanning

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadObstacles reads obstacle polygons from a GeoJSON feature collection.
// If path is a directory every *.geojson file in it is loaded; unreadable
// files in a directory are logged and skipped.
func LoadObstacles(path string, logger *zap.SugaredLogger) ([][]orb.Point, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat obstacle source")
	}
	if !info.IsDir() {
		return loadObstacleFile(path)
	}

	files, err := filepath.Glob(filepath.Join(path, "*.geojson"))
	if err != nil {
		return nil, err
	}
	logger.Infof("Loading obstacles from %d GeoJSON files...", len(files))

	var all [][]orb.Point
	for _, file := range files {
		obstacles, err := loadObstacleFile(file)
		if err != nil {
			logger.Warnw("skipping obstacle file", "file", file, "error", err)
			continue
		}
		logger.Infof("Loaded %d obstacles from %s", len(obstacles), filepath.Base(file))
		all = append(all, obstacles...)
	}
	logger.Infof("Total obstacles loaded: %d polygons", len(all))
	return all, nil
}

func loadObstacleFile(file string) ([][]orb.Point, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filepath.Base(file))
	}

	var obstacles [][]orb.Point
	for _, feature := range fc.Features {
		obstacles = append(obstacles, outerRings(feature.Geometry)...)
	}
	return obstacles, nil
}

// outerRings keeps the outer boundary of polygon geometries; holes are ignored.
func outerRings(g orb.Geometry) [][]orb.Point {
	var rings [][]orb.Point
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) > 0 {
			rings = append(rings, []orb.Point(geom[0]))
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			if len(poly) > 0 {
				rings = append(rings, []orb.Point(poly[0]))
			}
		}
	case orb.Ring:
		rings = append(rings, []orb.Point(geom))
	}
	return rings
}

// removeContainedObstacles drops obstacles that lie fully inside another obstacle.
func removeContainedObstacles(obstacles []orb.Ring) []orb.Ring {
	if len(obstacles) <= 1 {
		return obstacles
	}

	contained := make([]bool, len(obstacles))
	for i := 0; i < len(obstacles); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(obstacles); j++ {
			if i == j || contained[j] {
				continue
			}

			if isRingContainedIn(obstacles[i], obstacles[j]) {
				contained[i] = true
				break
			}
			if isRingContainedIn(obstacles[j], obstacles[i]) {
				contained[j] = true
			}
		}
	}

	result := make([]orb.Ring, 0, len(obstacles))
	for i, ring := range obstacles {
		if !contained[i] {
			result = append(result, ring)
		}
	}
	return result
}

// isRingContainedIn checks if ring a is fully inside ring b. Every vertex of a
// must be inside b, no edges may properly cross, no vertex of b may sit
// strictly inside a, and every piece of an edge of a between vertices of b
// must have its midpoint inside b. The last two catch an edge of a spanning a
// notch of a concave b.
func isRingContainedIn(a, b orb.Ring) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	ab, bb := a.Bound(), b.Bound()
	if ab.Min[0] < bb.Min[0] || ab.Min[1] < bb.Min[1] || ab.Max[0] > bb.Max[0] || ab.Max[1] > bb.Max[1] {
		return false
	}

	for _, vertex := range a {
		if !ringContains(b, vertex) {
			return false
		}
	}
	for _, vertex := range b {
		if ringContains(a, vertex) && !onRingBoundary(a, vertex) {
			return false
		}
	}

	edgesB := ringEdges(b)
	for _, ea := range ringEdges(a) {
		for _, eb := range edgesB {
			if properlyCross(ea, eb) {
				return false
			}
		}
		for _, mid := range pieceMidpoints(ea, b) {
			if !ringContains(b, mid) {
				return false
			}
		}
	}
	return true
}

// pieceMidpoints splits seg at every vertex of ring lying on it and returns
// the midpoint of each piece.
func pieceMidpoints(seg LineSegment, ring orb.Ring) []orb.Point {
	dx, dy := seg.P2[0]-seg.P1[0], seg.P2[1]-seg.P1[1]
	length2 := dx*dx + dy*dy
	if length2 == 0 {
		return nil
	}

	cuts := []float64{0, 1}
	for _, v := range ring {
		if direction(seg.P1, seg.P2, v) != 0 || !onSegment(seg.P1, seg.P2, v) {
			continue
		}
		t := ((v[0]-seg.P1[0])*dx + (v[1]-seg.P1[1])*dy) / length2
		if t > 0 && t < 1 {
			cuts = append(cuts, t)
		}
	}
	sort.Float64s(cuts)

	mids := make([]orb.Point, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		if cuts[i] == cuts[i-1] {
			continue
		}
		t := (cuts[i-1] + cuts[i]) / 2
		mids = append(mids, orb.Point{seg.P1[0] + t*dx, seg.P1[1] + t*dy})
	}
	return mids
}

// onRingBoundary reports whether p lies on one of the ring's edges.
func onRingBoundary(ring orb.Ring, p orb.Point) bool {
	for _, e := range ringEdges(ring) {
		if direction(e.P1, e.P2, p) == 0 && onSegment(e.P1, e.P2, p) {
			return true
		}
	}
	return false
}

// properlyCross is true when two segments cross at a single interior point.
func properlyCross(s1, s2 LineSegment) bool {
	d1 := direction(s2.P1, s2.P2, s1.P1)
	d2 := direction(s2.P1, s2.P2, s1.P2)
	d3 := direction(s1.P1, s1.P2, s2.P1)
	d4 := direction(s1.P1, s1.P2, s2.P2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
