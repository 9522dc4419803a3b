package pathplanning

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// obstacleEntry wraps an obstacle ring for R-tree storage
type obstacleEntry struct {
	ring orb.Ring
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (o *obstacleEntry) Bounds() rtreego.Rect {
	return o.bbox
}

// obstacleIndex manages obstacle spatial queries
type obstacleIndex struct {
	tree *rtreego.Rtree
	size int
}

// newObstacleIndex indexes obstacle rings by their bounding boxes
func newObstacleIndex(obstacles []orb.Ring) *obstacleIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, ring := range obstacles {
		bbox, err := boundToRect(ring.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{ring: ring, bbox: bbox})
		size++
	}

	return &obstacleIndex{tree: tree, size: size}
}

// queryRegion returns obstacles whose bounding boxes intersect the given bound
func (oi *obstacleIndex) queryRegion(b orb.Bound) []orb.Ring {
	if oi.size == 0 {
		return nil
	}
	bbox, err := boundToRect(b)
	if err != nil {
		return nil
	}

	results := oi.tree.SearchIntersect(bbox)
	rings := make([]orb.Ring, 0, len(results))
	for _, item := range results {
		rings = append(rings, item.(*obstacleEntry).ring)
	}
	return rings
}

// boundToRect converts an orb bound to an rtreego rect. Degenerate
// extents are padded since rtreego rejects zero-length sides.
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	const pad = 1e-9
	return rtreego.NewRect(
		rtreego.Point{b.Min[0] - pad, b.Min[1] - pad},
		[]float64{b.Max[0] - b.Min[0] + 2*pad, b.Max[1] - b.Min[1] + 2*pad},
	)
}
