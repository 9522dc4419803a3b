package pathplanning

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// nodeTolerance is the side of the box a tree node occupies in the R-tree.
const nodeTolerance = 1e-6

// treeNode is one reachable pose. The root has parent -1 and an empty edge.
type treeNode struct {
	pose   Pose
	parent int
	edge   DubinsPath
}

// nodeEntry locates a tree node in the R-tree by arena index.
type nodeEntry struct {
	id    int
	point rtreego.Point
}

// Bounds implements rtreego.Spatial interface
func (n *nodeEntry) Bounds() rtreego.Rect {
	return n.point.ToRect(nodeTolerance)
}

// tree is the arena of nodes grown during one run, indexed by position.
type tree struct {
	nodes         []treeNode
	index         *rtreego.Rtree
	headingWeight float64
	candidates    int
}

func newTree(root Pose, headingWeight float64, candidates int) *tree {
	t := &tree{
		index:         rtreego.NewTree(2, 25, 50),
		headingWeight: headingWeight,
		candidates:    candidates,
	}
	t.add(root, -1, DubinsPath{Start: root})
	return t
}

// add appends a node and returns its index.
func (t *tree) add(pose Pose, parent int, edge DubinsPath) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{pose: pose, parent: parent, edge: edge})
	t.index.Insert(&nodeEntry{id: id, point: rtreego.Point{pose.X, pose.Y}})
	return id
}

func (t *tree) size() int {
	return len(t.nodes)
}

// distance is the nearest-node metric: Euclidean distance plus weighted heading difference.
func (t *tree) distance(a, b Pose) float64 {
	return a.Distance(b) + t.headingWeight*angleDiff(a.Heading, b.Heading)
}

// nearest returns the index of the node closest to the target under the
// metric, chosen among the positionally nearest candidates. Ties keep the
// lower index.
func (t *tree) nearest(target Pose) int {
	k := t.candidates
	if k > len(t.nodes) {
		k = len(t.nodes)
	}

	best, bestDist := 0, math.Inf(1)
	for _, item := range t.index.NearestNeighbors(k, rtreego.Point{target.X, target.Y}) {
		entry, ok := item.(*nodeEntry)
		if !ok || entry == nil {
			continue
		}
		d := t.distance(t.nodes[entry.id].pose, target)
		if d < bestDist || (d == bestDist && entry.id < best) {
			best, bestDist = entry.id, d
		}
	}
	return best
}

// branch walks parent links from the node back to the root and returns the
// node indices in root-first order.
func (t *tree) branch(id int) []int {
	var ids []int
	for n := id; n != -1; n = t.nodes[n].parent {
		ids = append(ids, n)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}
