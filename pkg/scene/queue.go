package scene

import (
	"sort"

	"github.com/infosia/raster/pkg/math3d"
)

// RenderOp is one primitive instance queued for rasterization: the
// primitive itself plus the node transform (and, for skinned
// primitives, the skin) it should be drawn with.
type RenderOp struct {
	Node      *Node
	Primitive *Primitive
	Skin      *Skin
	WorldZ    float64 // primitive.center transformed to camera space, for the queue sort
}

// Queue is the ordered primitive list for one queueKey bucket.
type Queue struct {
	Key int
	Ops []RenderOp
}

// BuildQueues walks the scene (after Update) and buckets every visible
// primitive by its material's VRM0 render-queue key (or 0 when absent),
// stable-sorting each bucket back-to-front by the primitive's
// view-space center.z so farther primitives draw first.
func BuildQueues(s *Scene, view math3d.Mat4) []Queue {
	buckets := map[int][]RenderOp{}

	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Mesh != nil {
			for _, prim := range n.Mesh.Primitives {
				key := 0
				if prim.Material != nil && prim.Material.VRM0 != nil {
					key = prim.Material.VRM0.RenderQueue
				}
				worldCenter := n.BindMatrix.MulVec3(prim.Center)
				viewCenter := view.MulVec3(worldCenter)
				buckets[key] = append(buckets[key], RenderOp{
					Node:      n,
					Primitive: prim,
					Skin:      n.Skin,
					WorldZ:    viewCenter.Z,
				})
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, root := range s.Children {
		visit(root)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	queues := make([]Queue, 0, len(keys))
	for _, k := range keys {
		ops := buckets[k]
		sort.SliceStable(ops, func(i, j int) bool {
			return ops[i].WorldZ < ops[j].WorldZ
		})
		queues = append(queues, Queue{Key: k, Ops: ops})
	}
	return queues
}
