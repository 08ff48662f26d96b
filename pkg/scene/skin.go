package scene

import "github.com/infosia/raster/pkg/math3d"

// Skin holds an ordered joint list plus per-joint inverse bind matrices.
// JointMatrices is recomputed each frame by the scene-transform updater
// (see update.go) and is otherwise read-only.
type Skin struct {
	Joints             []*Node
	InverseBindMatrices []math3d.Mat4
	JointMatrices      []math3d.Mat4
}

// NewSkin allocates a Skin with JointMatrices initialized to identity,
// one per joint.
func NewSkin(joints []*Node, inverseBind []math3d.Mat4) *Skin {
	jm := make([]math3d.Mat4, len(joints))
	for i := range jm {
		jm[i] = math3d.Identity()
	}
	return &Skin{Joints: joints, InverseBindMatrices: inverseBind, JointMatrices: jm}
}
