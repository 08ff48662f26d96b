package scene

import "github.com/infosia/raster/pkg/math3d"

// Node is one entry in the scene hierarchy. References to Parent and
// Children are non-owning; the scene arena (Scene.AllNodes) owns the
// storage. Cycles are forbidden and rejected at load time.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	Mesh *Mesh
	Skin *Skin

	Translation math3d.Vec3
	Rotation    math3d.Quat
	Scale       math3d.Vec3

	// BindMatrix is the node's world-space transform, recomputed by
	// Update before each render and read-only afterward.
	BindMatrix math3d.Mat4

	Visible bool
}

// NewNode returns a Node with identity TRS and Scale=(1,1,1).
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Rotation:   math3d.QIdentity(),
		Scale:      math3d.V3(1, 1, 1),
		BindMatrix: math3d.Identity(),
		Visible:    true,
	}
}

// LocalMatrix returns the node's local TRS matrix.
func (n *Node) LocalMatrix() math3d.Mat4 {
	return math3d.TRS(n.Translation, n.Rotation, n.Scale)
}
