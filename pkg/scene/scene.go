package scene

import "github.com/infosia/raster/pkg/math3d"

// VRM0Properties carries the scene-wide VRM0 extension block (humanoid
// metadata beyond outline material fields is out of scope for rendering
// and is not modeled here).
type VRM0Properties struct {
	Title  string
	Author string
}

// Scene is the top-level arena: root node list plus owning storage for
// every node, mesh, material, texture, image and skin reachable from
// them. All inter-node references are non-owning pointers; the loader
// guarantees the node graph is acyclic with depth <= 64.
type Scene struct {
	Children []*Node

	AllNodes  []*Node
	Meshes    []*Mesh
	Materials []*Material
	Textures  []*Texture
	Images    []*Image
	Skins     []*Skin

	Options RenderOptions
	VRM0    *VRM0Properties

	Center math3d.Vec3
	BBMin  math3d.Vec3
	BBMax  math3d.Vec3
}

// NewScene returns an empty scene with default render options.
func NewScene() *Scene {
	return &Scene{Options: DefaultRenderOptions()}
}

// CalculateBounds computes the scene-wide bounding box and center from
// every primitive's world-space position, using each node's current
// BindMatrix. Call after Update.
func (s *Scene) CalculateBounds() {
	var min, max math3d.Vec3
	first := true

	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Mesh != nil {
			for _, prim := range n.Mesh.Primitives {
				wmin := n.BindMatrix.MulVec3(prim.BoundsMin)
				wmax := n.BindMatrix.MulVec3(prim.BoundsMax)
				lo, hi := wmin.Min(wmax), wmin.Max(wmax)
				if first {
					min, max = lo, hi
					first = false
				} else {
					min = min.Min(lo)
					max = max.Max(hi)
				}
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, root := range s.Children {
		visit(root)
	}

	if first {
		return
	}
	s.BBMin, s.BBMax = min, max
	s.Center = min.Add(max).Scale(0.5)
}
