package inkflow

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/inkflow/shader"
)

// EffectBinding is the per-frame contract a host rendering surface calls to
// learn how to draw the reveal for the current progress.
type EffectBinding interface {
	Bind(progress float64, cfg Config) RenderTransform
}

// RenderTransform is what a host applies to its surface for one frame.
// It is either *AlphaProgram or UniformAlpha.
type RenderTransform interface {
	// Alpha returns the alpha multiplier for a pixel of a surface.
	Alpha(pixel, size Vec2) float64

	renderTransform()
}

// AlphaProgram applies the ink mask per pixel.
//
// Hosts with a GPU bind Engine.Program() and upload Uniforms(size); other
// hosts evaluate Alpha per pixel.
type AlphaProgram struct {
	Engine   *Engine
	Progress float64

	// Format is the color target format the program renders into.
	Format gputypes.TextureFormat
}

// Alpha implements RenderTransform.
func (p *AlphaProgram) Alpha(pixel, size Vec2) float64 {
	return p.Engine.AlphaAt(pixel, size, p.Progress)
}

// Uniforms returns the uniform block for a surface of the given size.
func (p *AlphaProgram) Uniforms(size Vec2) shader.Uniforms {
	return p.Engine.Uniforms(size, p.Progress)
}

func (*AlphaProgram) renderTransform() {}

// UniformAlpha multiplies every pixel's alpha by the same value.
type UniformAlpha struct {
	Alpha01 float64
}

// Alpha implements RenderTransform.
func (u UniformAlpha) Alpha(_, _ Vec2) float64 { return u.Alpha01 }

func (UniformAlpha) renderTransform() {}

var (
	_ RenderTransform = (*AlphaProgram)(nil)
	_ RenderTransform = UniformAlpha{}
	_ EffectBinding   = (*Binding)(nil)
)

// Binding routes frames through a Dispatcher. It computes nothing itself.
type Binding struct {
	d      *Dispatcher
	format gputypes.TextureFormat
}

// NewBinding creates a binding for d. The provider, if non-nil, supplies the
// surface format reported on AlphaProgram; otherwise RGBA8Unorm is assumed.
func NewBinding(d *Dispatcher, provider gpucontext.DeviceProvider) *Binding {
	format := gputypes.TextureFormatRGBA8Unorm
	if provider != nil {
		if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	}
	return &Binding{d: d, format: format}
}

// Dispatcher returns the dispatcher the binding routes through.
func (b *Binding) Dispatcher() *Dispatcher { return b.d }

// Format returns the surface format reported on AlphaProgram.
func (b *Binding) Format() gputypes.TextureFormat { return b.format }

// Bind returns the transform for one frame.
func (b *Binding) Bind(progress float64, cfg Config) RenderTransform {
	progress = clamp01(progress)
	if b.d.Mode() == ModeFallbackFade {
		return UniformAlpha{Alpha01: progress}
	}
	return &AlphaProgram{
		Engine:   b.d.GetOrCreate(cfg),
		Progress: progress,
		Format:   b.format,
	}
}

// DrawPlan is how a host with an optional shader draws one frame.
type DrawPlan struct {
	// Shader is true when the host should run its compiled reveal program
	// with Uniforms.
	Shader   bool
	Uniforms shader.Uniforms

	// Alpha is the uniform alpha used when Shader is false.
	Alpha float64
}

// PlanDraw resolves rt for a surface of the given size. Hosts whose reveal
// program is not ready get a uniform alpha equal to the progress.
func PlanDraw(rt RenderTransform, size Vec2, shaderReady bool) DrawPlan {
	switch rt := rt.(type) {
	case *AlphaProgram:
		if shaderReady {
			return DrawPlan{Shader: true, Uniforms: rt.Uniforms(size)}
		}
		return DrawPlan{Alpha: rt.Progress}
	case UniformAlpha:
		return DrawPlan{Alpha: rt.Alpha01}
	}
	return DrawPlan{Alpha: 1}
}

// Apply draws one frame on the CPU: it multiplies the alpha of dst by the
// reveal mask. The surface size is the size of dst.
func (b *Binding) Apply(dst *image.RGBA, progress float64, cfg Config) {
	r := dst.Bounds()
	if r.Empty() {
		return
	}
	m := NewMask(r.Dx(), r.Dy())
	b.d.Render(m, progress, cfg)
	m.ApplyTo(dst)
}
