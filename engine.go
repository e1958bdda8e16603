package inkflow

import (
	"math"

	"github.com/gogpu/inkflow/shader"
)

// Reveal constants shared with the shader programs.
const (
	// RadiusMargin scales the surface diagonal into the maximum spread radius.
	RadiusMargin = 0.7

	// ProgressOvershoot maps progress onto the threshold so the surface
	// clears slightly before progress reaches 1.
	ProgressOvershoot = 1.1
)

// Engine computes the ink reveal mask for one Config.
//
// An Engine is immutable after construction and safe for concurrent use.
// Engines obtained from a Dispatcher also reference the dispatcher's compiled
// shader program; engines created with NewEngine are CPU-only.
type Engine struct {
	cfg     Config
	program *shader.Program
}

// Compile-time interface check.
var _ Strategy = (*Engine)(nil)

// NewEngine creates a CPU-only engine for cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.resolved()}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Program returns the compiled shader program, or nil for CPU-only engines.
func (e *Engine) Program() *shader.Program { return e.program }

// Mode returns ModeFullEffect.
func (e *Engine) Mode() Mode { return ModeFullEffect }

// AlphaAt returns the reveal alpha for a pixel. It is the Strategy form of
// ComputeAlpha.
func (e *Engine) AlphaAt(pixel, size Vec2, progress float64) float64 {
	return computeAlpha(pixel, size, progress, &e.cfg)
}

// ComputeAlpha returns the reveal alpha in [0, 1] for a pixel of a surface.
func (e *Engine) ComputeAlpha(pixel, size Vec2, progress float64) float64 {
	return computeAlpha(pixel, size, progress, &e.cfg)
}

// Uniforms returns the shader uniform block for a frame of the given size.
func (e *Engine) Uniforms(size Vec2, progress float64) shader.Uniforms {
	return uniformsFor(e.cfg, size, clamp01(progress))
}

func uniformsFor(cfg Config, size Vec2, progress float64) shader.Uniforms {
	return shader.Uniforms{
		Progress:           float32(progress),
		NoiseScale:         float32(cfg.noiseScale),
		DistortionStrength: float32(cfg.distortionStrength),
		EdgeSoftness:       float32(cfg.edgeSoftness),
		CenterX:            float32(cfg.centerX),
		CenterY:            float32(cfg.centerY),
		Width:              float32(size.X),
		Height:             float32(size.Y),
	}
}

// ComputeAlpha returns the reveal alpha in [0, 1] for pixel on a surface of
// the given size at the given progress.
//
// The alpha multiplies the pixel's existing alpha; color is never changed.
// Progress outside [0, 1] is clamped. Degenerate or non-finite sizes and
// non-finite pixels yield the linear fade value clamp(progress, 0, 1).
// The result is a pure function of its arguments.
func ComputeAlpha(pixel, size Vec2, progress float64, cfg Config) float64 {
	cfg = cfg.resolved()
	return computeAlpha(pixel, size, progress, &cfg)
}

func computeAlpha(pixel, size Vec2, progress float64, cfg *Config) float64 {
	progress = clamp01(progress)

	extent := size.MaxComponent()
	if !size.IsFinite() || !pixel.IsFinite() || !(extent > 0) || size.X < 0 || size.Y < 0 {
		return progress
	}

	center := Vec2{X: cfg.centerX, Y: cfg.centerY}.Scale(size)
	maxRadius := size.Len() * RadiusMargin

	uv := pixel.Div(extent)
	noiseValue := FBM(uv.Mul(cfg.noiseScale))

	baseDist := pixel.Dist(center)
	distortion := noiseValue * maxRadius * cfg.distortionStrength
	inkDist := baseDist - distortion
	normalizedDist := inkDist / maxRadius

	threshold := progress * ProgressOvershoot
	alpha := 1 - smoothstep(threshold-cfg.edgeSoftness, threshold, normalizedDist)

	if math.IsNaN(alpha) {
		return progress
	}
	return clamp01(alpha)
}

// smoothstep is the cubic Hermite step: 0 at or below edge0, 1 at or above
// edge1. Equal edges give a hard step at edge0.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// clamp01 clamps x to [0, 1]. NaN maps to 0.
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
