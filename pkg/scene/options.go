package scene

import "github.com/infosia/raster/pkg/math3d"

// ProjectionMode selects perspective or orthographic projection.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

// CameraOptions mirrors the glTF/VRM camera fields relevant to rendering.
type CameraOptions struct {
	FovDegrees  float64        `yaml:"fov_degrees"`
	ZNear       float64        `yaml:"znear"`
	ZFar        float64        `yaml:"zfar"`
	Translation math3d.Vec3    `yaml:"translation"`
	Rotation    math3d.Quat    `yaml:"rotation"`
	Scale       math3d.Vec3    `yaml:"scale"`
	Mode        ProjectionMode `yaml:"mode"`
}

// ModelOptions is the scene-level model transform applied on top of the
// loaded asset's own node hierarchy.
type ModelOptions struct {
	Translation math3d.Vec3 `yaml:"translation"`
	Rotation    math3d.Quat `yaml:"rotation"`
	Scale       math3d.Vec3 `yaml:"scale"`
}

// LightOptions describes the single active light source.
type LightOptions struct {
	Position math3d.Vec3 `yaml:"position"`
	Color    Color       `yaml:"color"`
}

// RenderOptions is the full external configuration surface of a render
// call (spec §6). It is a pure value: the renderer never mutates it.
type RenderOptions struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format Format `yaml:"format"`

	Background Color `yaml:"background"`

	SSAA           bool `yaml:"ssaa"`
	SSAAKernelSize int  `yaml:"ssaa_kernel_size"`

	Outline bool `yaml:"outline"`
	Vignette bool `yaml:"vignette"`

	Camera CameraOptions `yaml:"camera"`
	Model  ModelOptions  `yaml:"model"`
	Light  LightOptions  `yaml:"light"`

	// MinShadingFactor/MaxShadingFactor expose the toon-style clamped
	// diffuse floor and specular ceiling; original_source hardcodes the
	// floor to 0.7f, leaving no fragment fully unlit.
	MinShadingFactor float64 `yaml:"min_shading_factor"`
	MaxShadingFactor float64 `yaml:"max_shading_factor"`
}

// DefaultRenderOptions returns the documented defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:          512,
		Height:         512,
		Format:         RGBAFormat,
		Background:     Color{0, 0, 0, 1},
		SSAA:           true,
		SSAAKernelSize: 2,
		Outline:        true,
		Vignette:       false,
		Camera: CameraOptions{
			FovDegrees: 30,
			ZNear:      0.1,
			ZFar:       100,
			Rotation:   math3d.QIdentity(),
			Scale:      math3d.V3(1, 1, 1),
			Mode:       Perspective,
		},
		Model: ModelOptions{
			Rotation: math3d.QIdentity(),
			Scale:    math3d.V3(1, 1, 1),
		},
		Light: LightOptions{
			Position: math3d.V3(1, 1, 1),
			Color:    Color{1, 1, 1, 1},
		},
		MinShadingFactor: 0.7,
		MaxShadingFactor: 0.8,
	}
}

// Validate checks the InvalidOption conditions from spec §7.
func (o RenderOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return ErrInvalidOption("width and height must be positive")
	}
	if o.SSAA && o.SSAAKernelSize < 1 {
		return ErrInvalidOption("ssaa_kernel_size must be >= 1")
	}
	if o.Camera.ZFar <= o.Camera.ZNear {
		return ErrInvalidOption("camera zfar must be greater than znear")
	}
	return nil
}
