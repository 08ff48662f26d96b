package raster

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/infosia/raster/pkg/scene"
	"github.com/infosia/raster/pkg/shader"
)

// namedShader pairs a shader constructor with a label; its position in
// the plan is the insertion order the compositor relies on.
type namedShader struct {
	name string
	new  func() shader.Shader
}

// passPlan is the fixed list of shader passes a Scene renders through.
// One fresh shader instance is created per pass per render call, so no
// shader value is shared between pass goroutines.
func passPlan(opts scene.RenderOptions) []namedShader {
	passes := []namedShader{
		{name: "default", new: func() shader.Shader { return shader.DefaultShader{} }},
	}
	if opts.Outline {
		passes = append(passes, namedShader{name: "outline", new: func() shader.Shader { return shader.OutlineShader{} }})
	}
	return passes
}

// Render runs the full pipeline against s: the scene-transform update
// barrier, one parallel rasterization task per shader pass, the
// single-threaded compositor join, and the background/vignette/SSAA
// post-processing steps. progress may be nil, in which case events are
// discarded. log may be nil, in which case it defaults to zap.NewNop()
// — library code does not own global logger state, the caller does.
func Render(s *scene.Scene, progress Progress, log *zap.Logger) (*scene.Image, error) {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts := s.Options
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("raster: invalid render options: %w", err)
	}

	progress.Report("update", 0.2)
	scene.Update(s)
	s.CalculateBounds()
	log.Debug("scene updated", zap.Int("nodes", len(s.AllNodes)), zap.Int("skins", len(s.Skins)))

	ssaaK := 1
	if opts.SSAA {
		ssaaK = opts.SSAAKernelSize
		if ssaaK < 1 {
			ssaaK = 1
		}
	}
	width := opts.Width * ssaaK
	height := opts.Height * ssaaK
	aspect := float64(opts.Width) / float64(opts.Height)

	model := ModelMatrix(opts.Model)
	view := ViewMatrix(opts.Camera)
	proj := ProjectionMatrix(opts.Camera, aspect)

	progress.Report("raster", 0.7)
	plan := passPlan(opts)
	passes := make([]*Pass, len(plan))
	log.Debug("rasterizing", zap.Int("passes", len(plan)), zap.Int("width", width), zap.Int("height", height))

	var g errgroup.Group
	for i, np := range plan {
		i, np := i, np
		g.Go(func() error {
			sh := np.new()
			pass := NewPass(sh, width, height)
			passes[i] = pass

			ctx := &shader.Context{
				Model:             model,
				View:              view,
				Projection:        proj,
				Viewport:          [4]float64{0, 0, float64(width), float64(height)},
				CameraTranslation: opts.Camera.Translation,
				Light:             opts.Light,
				MinShadingFactor:  opts.MinShadingFactor,
				MaxShadingFactor:  opts.MaxShadingFactor,
				Framebuffer:       pass.Framebuffer,
			}

			queues := scene.BuildQueues(s, view)
			DrawQueues(pass, ctx, queues)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("raster: pass failed: %w", err)
	}

	progress.Report("composite", 0.8)
	out := Composite(passes, width, height)

	ApplyBackground(out, opts.Background, opts.Vignette)
	if ssaaK > 1 {
		out = Downscale(out, ssaaK)
	}

	progress.Report("done", 1.0)
	return out, nil
}
