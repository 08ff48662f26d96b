// Package asset loads glTF/VRM documents into the pkg/scene data model
// the rasterizer consumes. Grounded on the teacher's pkg/models/gltf.go
// (GLTFLoader, the byte-level accessor readers), extended with skins,
// joints/weights, morph targets, materials plus the VRM0 outline/render
// -queue extension, vertex color and tangents.
package asset

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// Load reads a glTF or GLB file at path into a scene.Scene, ready for
// scene.Update and rendering. Only embedded buffers/images are
// supported, matching the teacher loader's own limitation. log may be
// nil, in which case it defaults to zap.NewNop().
func Load(path string, log *zap.Logger) (*scene.Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %q: %w", path, err)
	}
	log.Debug("gltf document opened",
		zap.String("path", path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("materials", len(doc.Materials)),
	)
	return FromDocument(doc)
}

// FromDocument converts an already-parsed glTF document into a Scene.
func FromDocument(doc *gltf.Document) (*scene.Scene, error) {
	l := &loader{doc: doc, s: scene.NewScene()}
	return l.build()
}

type loader struct {
	doc *gltf.Document
	s   *scene.Scene

	nodes     []*scene.Node // indexed by gltf node index
	meshes    []*scene.Mesh // indexed by gltf mesh index
	materials []*scene.Material
	textures  []*scene.Texture
	images    []*scene.Image
	skins     []*scene.Skin

	vrmMaterials []vrm0MaterialProperty // parsed VRM "materialProperties", keyed by position
}

func (l *loader) build() (*scene.Scene, error) {
	if err := l.parseVRM0(); err != nil {
		return nil, err
	}

	l.images = make([]*scene.Image, len(l.doc.Images))
	for i := range l.doc.Images {
		img, err := l.loadImage(i)
		if err != nil {
			return nil, err
		}
		l.images[i] = img
	}
	l.s.Images = l.images

	l.textures = make([]*scene.Texture, len(l.doc.Textures))
	for i, t := range l.doc.Textures {
		l.textures[i] = l.buildTexture(t)
	}
	l.s.Textures = l.textures

	l.materials = make([]*scene.Material, len(l.doc.Materials))
	for i, m := range l.doc.Materials {
		l.materials[i] = l.buildMaterial(i, m)
	}
	l.s.Materials = l.materials

	l.meshes = make([]*scene.Mesh, len(l.doc.Meshes))
	for i, m := range l.doc.Meshes {
		mesh, err := l.buildMesh(m)
		if err != nil {
			return nil, fmt.Errorf("asset: mesh %q: %w", m.Name, err)
		}
		l.meshes[i] = mesh
	}
	l.s.Meshes = l.meshes

	l.nodes = make([]*scene.Node, len(l.doc.Nodes))
	for i, n := range l.doc.Nodes {
		l.nodes[i] = l.buildNode(n)
	}
	for i, n := range l.doc.Nodes {
		node := l.nodes[i]
		for _, ci := range n.Children {
			child := l.nodes[ci]
			child.Parent = node
			node.Children = append(node.Children, child)
		}
	}
	l.s.AllNodes = l.nodes

	l.skins = make([]*scene.Skin, len(l.doc.Skins))
	for i, sk := range l.doc.Skins {
		skin, err := l.buildSkin(sk)
		if err != nil {
			return nil, fmt.Errorf("asset: skin %d: %w", i, err)
		}
		l.skins[i] = skin
	}
	l.s.Skins = l.skins
	for i, n := range l.doc.Nodes {
		if n.Skin != nil {
			l.nodes[i].Skin = l.skins[*n.Skin]
		}
	}

	sceneIdx := 0
	if l.doc.Scene != nil {
		sceneIdx = *l.doc.Scene
	}
	if sceneIdx < len(l.doc.Scenes) {
		for _, ni := range l.doc.Scenes[sceneIdx].Nodes {
			l.s.Children = append(l.s.Children, l.nodes[ni])
		}
	}

	if err := l.validateDepth(); err != nil {
		return nil, err
	}

	scene.Update(l.s)
	l.s.CalculateBounds()
	return l.s, nil
}

// validateDepth rejects node graphs whose ancestor chain exceeds the
// depth the scene-transform updater fails safe at (spec §4.2).
func (l *loader) validateDepth() error {
	var walk func(n *scene.Node, depth int) error
	walk = func(n *scene.Node, depth int) error {
		if depth >= 64 {
			return scene.ErrInvalidScene("node graph too deep or cyclic")
		}
		for _, c := range n.Children {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range l.s.Children {
		if err := walk(root, 0); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) buildNode(n *gltf.Node) *scene.Node {
	node := scene.NewNode(n.Name)
	node.Translation = math3d.V3(float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2]))
	node.Rotation = math3d.Quat{
		X: float64(n.Rotation[0]), Y: float64(n.Rotation[1]),
		Z: float64(n.Rotation[2]), W: float64(n.Rotation[3]),
	}
	node.Scale = math3d.V3(float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2]))
	if n.Mesh != nil && *n.Mesh < len(l.meshes) {
		node.Mesh = l.meshes[*n.Mesh]
	}
	return node
}

func (l *loader) buildSkin(sk *gltf.Skin) (*scene.Skin, error) {
	joints := make([]*scene.Node, len(sk.Joints))
	for i, ji := range sk.Joints {
		joints[i] = l.nodes[ji]
	}
	var inverseBind []math3d.Mat4
	if sk.InverseBindMatrices != nil {
		mats, err := readMat4Accessor(l.doc, *sk.InverseBindMatrices)
		if err != nil {
			return nil, fmt.Errorf("inverse bind matrices: %w", err)
		}
		inverseBind = mats
	} else {
		inverseBind = make([]math3d.Mat4, len(joints))
		for i := range inverseBind {
			inverseBind[i] = math3d.Identity()
		}
	}
	return scene.NewSkin(joints, inverseBind), nil
}

func (l *loader) buildMesh(m *gltf.Mesh) (*scene.Mesh, error) {
	mesh := &scene.Mesh{Name: m.Name}
	numTargets := 0
	if len(m.Primitives) > 0 {
		numTargets = len(m.Primitives[0].Targets)
	}
	for i := range numTargets {
		w := 0.0
		if i < len(m.Weights) {
			w = float64(m.Weights[i])
		}
		mesh.Morphs = append(mesh.Morphs, scene.Morph{Name: fmt.Sprintf("morph%d", i), Weight: w})
	}

	for _, p := range m.Primitives {
		if p.Mode != gltf.PrimitiveTriangles && p.Mode != 0 {
			continue
		}
		prim, err := l.buildPrimitive(p)
		if err != nil {
			return nil, err
		}
		mesh.Primitives = append(mesh.Primitives, prim)
	}
	return mesh, nil
}

func (l *loader) buildPrimitive(p *gltf.Primitive) (*scene.Primitive, error) {
	prim := &scene.Primitive{}

	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := readVec3Accessor(l.doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	prim.Position = positions

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		prim.Normal, err = readVec3Accessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.TANGENT]; ok {
		tangents, err := readVec4Accessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read tangents: %w", err)
		}
		prim.Tangent = make([]math3d.Vec3, len(tangents))
		for i, t := range tangents {
			prim.Tangent[i] = math3d.V3(t.X, t.Y, t.Z).Scale(sign(t.W, 1))
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := readVec2Accessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		prim.UV = uvs
	}
	if idx, ok := p.Attributes[gltf.COLOR_0]; ok {
		colors, err := readColorAccessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read vertex colors: %w", err)
		}
		prim.Color = colors
	}
	if idx, ok := p.Attributes[gltf.JOINTS_0]; ok {
		joints, err := readJointAccessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read joints: %w", err)
		}
		prim.Joint = joints
	}
	if idx, ok := p.Attributes[gltf.WEIGHTS_0]; ok {
		weights, err := readWeightAccessor(l.doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read weights: %w", err)
		}
		prim.Weight = weights
	}

	if p.Indices != nil {
		indices, err := readIndices(l.doc, *p.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		prim.Indices = reverseWinding(indices)
	} else {
		seq := make([]int, len(positions))
		for i := range seq {
			seq[i] = i
		}
		prim.Indices = reverseWinding(seq)
	}

	for _, target := range p.Targets {
		var mt scene.MorphTarget
		if idx, ok := target[gltf.POSITION]; ok {
			mt.Position, err = readVec3Accessor(l.doc, idx)
			if err != nil {
				return nil, fmt.Errorf("read morph position: %w", err)
			}
		}
		if idx, ok := target[gltf.NORMAL]; ok {
			mt.Normal, err = readVec3Accessor(l.doc, idx)
			if err != nil {
				return nil, fmt.Errorf("read morph normal: %w", err)
			}
		}
		if idx, ok := target[gltf.TANGENT]; ok {
			mt.Tangent, err = readVec3Accessor(l.doc, idx)
			if err != nil {
				return nil, fmt.Errorf("read morph tangent: %w", err)
			}
		}
		prim.Targets = append(prim.Targets, mt)
	}

	if p.Material != nil && *p.Material < len(l.materials) {
		prim.Material = l.materials[*p.Material]
	}
	if !prim.HasTangent() && prim.HasNormal() && prim.HasUV() {
		SynthesizeTangents(prim)
	}

	prim.CalculateBounds()
	return prim, nil
}

func sign(w, fallback float64) float64 {
	if w == 0 {
		return fallback
	}
	if w < 0 {
		return -1
	}
	return 1
}

// reverseWinding swaps the last two indices of every triangle, matching
// the teacher's CCW (glTF) -> CW (this engine's screen-space convention,
// a consequence of its Y-flipping projection) correction.
func reverseWinding(indices []int) []int {
	out := make([]int, len(indices))
	copy(out, indices)
	for i := 0; i+2 < len(out); i += 3 {
		out[i+1], out[i+2] = out[i+2], out[i+1]
	}
	return out
}

func (l *loader) loadImage(i int) (*scene.Image, error) {
	img := l.doc.Images[i]
	data, err := imageBytes(l.doc, img)
	if err != nil {
		return nil, fmt.Errorf("asset: image %d: %w", i, err)
	}
	return DecodeImage(data)
}

func imageBytes(doc *gltf.Document, img *gltf.Image) ([]byte, error) {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		start := bv.ByteOffset
		end := start + bv.ByteLength
		return buf.Data[start:end], nil
	}
	if img.URI != "" {
		return nil, fmt.Errorf("external image uri %q not supported", filepath.Base(img.URI))
	}
	return nil, fmt.Errorf("image has neither buffer view nor uri")
}

func (l *loader) buildTexture(t *gltf.Texture) *scene.Texture {
	var img *scene.Image
	if t.Source != nil && *t.Source < len(l.images) {
		img = l.images[*t.Source]
	}
	tex := scene.NewTexture(img)
	if t.Sampler != nil && *t.Sampler < len(l.doc.Samplers) {
		s := l.doc.Samplers[*t.Sampler]
		tex.WrapU = scene.WrapMode(s.WrapS)
		tex.WrapV = scene.WrapMode(s.WrapT)
		if tex.WrapU == 0 {
			tex.WrapU = scene.Repeat
		}
		if tex.WrapV == 0 {
			tex.WrapV = scene.Repeat
		}
		if s.MagFilter == gltf.MagNearest {
			tex.FilterMode = scene.FilterNearest
		}
	}
	return tex
}

func (l *loader) buildMaterial(idx int, m *gltf.Material) *scene.Material {
	mat := &scene.Material{
		Name:            m.Name,
		BaseColorFactor: scene.Color{R: 1, G: 1, B: 1, A: 1},
		EmissiveFactor: scene.Color{
			R: float64(m.EmissiveFactor[0]),
			G: float64(m.EmissiveFactor[1]),
			B: float64(m.EmissiveFactor[2]),
		},
		AlphaCutoff:     0.5,
		SpecularFactor:  1,
		MetallicFactor:  1,
		RoughnessFactor: 1,
		DoubleSided:     m.DoubleSided,
	}

	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			bc := *pbr.BaseColorFactor
			mat.BaseColorFactor = scene.Color{R: float64(bc[0]), G: float64(bc[1]), B: float64(bc[2]), A: float64(bc[3])}
		}
		if pbr.BaseColorTexture != nil && pbr.BaseColorTexture.Index < len(l.textures) {
			mat.BaseColorTexture = l.textures[pbr.BaseColorTexture.Index]
		}
		if pbr.MetallicFactor != nil {
			mat.MetallicFactor = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			mat.RoughnessFactor = *pbr.RoughnessFactor
		}
	}
	mat.BaseColorFactorSRGB = scene.ColorLinearToSRGB(mat.BaseColorFactor)

	if m.NormalTexture != nil && m.NormalTexture.Index != nil && *m.NormalTexture.Index < len(l.textures) {
		mat.NormalTexture = l.textures[*m.NormalTexture.Index]
	}
	if m.EmissiveTexture != nil && m.EmissiveTexture.Index < len(l.textures) {
		mat.EmissiveTexture = l.textures[m.EmissiveTexture.Index]
	}

	switch m.AlphaMode {
	case gltf.AlphaMask:
		mat.AlphaMode = scene.Mask
	case gltf.AlphaBlend:
		mat.AlphaMode = scene.Blend
	default:
		mat.AlphaMode = scene.Opaque
	}
	if m.AlphaCutoff != nil {
		mat.AlphaCutoff = *m.AlphaCutoff
	}
	mat.Unlit = hasUnlitExtension(m)

	if idx < len(l.vrmMaterials) {
		vrm := l.vrmMaterials[idx]
		v := scene.DefaultVRM0Material()
		v.RenderQueue = vrm.renderQueue(2000)
		v.OutlineWidthMode = scene.OutlineWidthMode(vrm.outlineWidthMode())
		v.OutlineWidth = vrm.floatProp("_OutlineWidth", 0)
		v.OutlineLightingMix = vrm.floatProp("_OutlineLightingMix", 1)
		if c, ok := vrm.vectorProp("_OutlineColor"); ok {
			v.OutlineColor = scene.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
		if ti, ok := vrm.textureProp("_OutlineWidthTexture"); ok && ti < len(l.textures) {
			v.OutlineWidthTexture = l.textures[ti]
		}
		mat.VRM0 = &v
	}

	return mat
}

func hasUnlitExtension(m *gltf.Material) bool {
	if m.Extensions == nil {
		return false
	}
	_, ok := m.Extensions["KHR_materials_unlit"]
	return ok
}

// readFloat32 reads a little-endian float32, shared with the float
// accessor readers in accessor.go.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

// vrm0MaterialProperty holds one entry of VRM0's
// extensions.VRM.materialProperties array, as much of it as this
// renderer consumes.
type vrm0MaterialProperty struct {
	RenderQueue      *int                 `json:"renderQueue"`
	FloatProperties  map[string]float64   `json:"floatProperties"`
	VectorProperties map[string][]float64 `json:"vectorProperties"`
	TextureProperties map[string]int      `json:"textureProperties"`
}

func (p vrm0MaterialProperty) renderQueue(def int) int {
	if p.RenderQueue != nil {
		return *p.RenderQueue
	}
	return def
}

func (p vrm0MaterialProperty) floatProp(key string, def float64) float64 {
	if v, ok := p.FloatProperties[key]; ok {
		return v
	}
	return def
}

func (p vrm0MaterialProperty) vectorProp(key string) ([4]float64, bool) {
	v, ok := p.VectorProperties[key]
	if !ok || len(v) < 4 {
		return [4]float64{}, false
	}
	return [4]float64{v[0], v[1], v[2], v[3]}, true
}

func (p vrm0MaterialProperty) textureProp(key string) (int, bool) {
	v, ok := p.TextureProperties[key]
	return v, ok
}

func (p vrm0MaterialProperty) outlineWidthMode() int {
	mode := p.floatProp("_OutlineWidthMode", 0)
	return int(mode)
}

type vrm0Extension struct {
	MaterialProperties []vrm0MaterialProperty `json:"materialProperties"`
}

// parseVRM0 decodes the document's top-level "VRM" extension, if
// present, into per-material outline/render-queue properties keyed by
// material index (VRM0's materialProperties array is parallel to
// doc.Materials).
func (l *loader) parseVRM0() error {
	raw, ok := l.doc.Extensions["VRM"]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("asset: re-marshal VRM extension: %w", err)
	}
	var ext vrm0Extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("asset: decode VRM extension: %w", err)
	}
	l.vrmMaterials = ext.MaterialProperties
	return nil
}
