package scene

// AlphaMode selects how Material.BaseColorTexture alpha is interpreted.
type AlphaMode int

const (
	Opaque AlphaMode = iota
	Mask
	Blend
)

// OutlineWidthMode selects how VRM0 outline width is interpreted.
type OutlineWidthMode int

const (
	OutlineWidthNone OutlineWidthMode = iota
	OutlineWidthWorld
	OutlineWidthScreen
)

// VRM0Material carries the VRM0 MToon outline extension fields a
// Material may reference.
type VRM0Material struct {
	OutlineWidthMode    OutlineWidthMode
	OutlineWidth        float64
	OutlineColor        Color
	OutlineLightingMix  float64
	OutlineWidthTexture *Texture
	RenderQueue         int // VRM0 render queue bucket, default 2000
}

// DefaultVRM0Material returns the VRM0 baseline the loader starts from
// before applying a material's VRM0 properties: outline disabled, queue
// 2000. Materials with no VRM0 entry keep VRM0 == nil.
func DefaultVRM0Material() VRM0Material {
	return VRM0Material{
		OutlineWidthMode:   OutlineWidthNone,
		OutlineColor:       Color{0, 0, 0, 178.0 / 255.0},
		OutlineLightingMix: 1.0,
		RenderQueue:        2000,
	}
}

// Material is the PBR-ish material description consumed by the shaders.
type Material struct {
	Name string

	BaseColorFactor     Color // linear
	BaseColorFactorSRGB Color // gamma-corrected, precomputed at load time
	BaseColorTexture    *Texture

	NormalTexture *Texture

	EmissiveFactor  Color // linear RGB, alpha unused
	EmissiveTexture *Texture

	AlphaMode   AlphaMode
	AlphaCutoff float64

	SpecularFactor  float64
	MetallicFactor  float64
	RoughnessFactor float64

	DoubleSided bool
	Unlit       bool

	VRM0 *VRM0Material // nil when the glTF material has no VRM0 extension
}

// RenderQueue returns the material's VRM0 render-queue bucket, or the
// default bucket (2000, "opaque-ish transparent") when unset.
func (m *Material) RenderQueue() int {
	if m == nil || m.VRM0 == nil {
		return 2000
	}
	return m.VRM0.RenderQueue
}

// HasOutline reports whether this material has a VRM0 outline with a
// width mode other than None and a positive width. The renderer does
// not consult it: the outline pass is enabled by RenderOptions.Outline.
func (m *Material) HasOutline() bool {
	return m != nil && m.VRM0 != nil && m.VRM0.OutlineWidthMode != OutlineWidthNone && m.VRM0.OutlineWidth > 0
}
