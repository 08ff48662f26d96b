package scene

import "github.com/infosia/raster/pkg/math3d"

// maxNodeDepth bounds the ancestor walk as a fail-safe against malformed
// cyclic node graphs that slipped past load-time validation.
const maxNodeDepth = 64

// Update recomputes every node's BindMatrix and every skin's
// JointMatrices from the current local transforms. It must complete
// before any rasterizer pass begins (the sole fork point of the
// concurrency model); afterward Node.BindMatrix and Skin.JointMatrices
// are read-only.
func Update(s *Scene) {
	for _, root := range s.Children {
		updateNode(root, math3d.Identity(), 0)
	}
	for _, skin := range s.Skins {
		updateSkin(skin)
	}
}

func updateNode(n *Node, parentMatrix math3d.Mat4, depth int) {
	if depth >= maxNodeDepth {
		n.BindMatrix = parentMatrix
		return
	}
	n.BindMatrix = parentMatrix.Mul(n.LocalMatrix())
	for _, c := range n.Children {
		updateNode(c, n.BindMatrix, depth+1)
	}
}

func updateSkin(skin *Skin) {
	for i, joint := range skin.Joints {
		if joint == nil || i >= len(skin.InverseBindMatrices) {
			continue
		}
		skin.JointMatrices[i] = joint.BindMatrix.Mul(skin.InverseBindMatrices[i])
	}
}
