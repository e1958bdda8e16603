// Package ebitenfx draws ink reveals with ebiten.
//
// In full-effect mode the reveal runs as a Kage shader on the source image;
// in fallback mode, or when the shader does not compile, the image is drawn
// with a uniform alpha.
package ebitenfx

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/inkflow"
	"github.com/gogpu/inkflow/shader"
)

// Effect draws ebiten images through an inkflow binding.
type Effect struct {
	binding *inkflow.Binding
	shader  *ebiten.Shader
}

// NewEffect creates an effect for the dispatcher's mode. The Kage program is
// compiled only in full-effect mode.
func NewEffect(d *inkflow.Dispatcher) *Effect {
	e := &Effect{binding: inkflow.NewBinding(d, nil)}
	if d.Mode() != inkflow.ModeFullEffect {
		return e
	}

	s, err := ebiten.NewShader(shader.Kage())
	if err != nil {
		inkflow.Logger().Warn("ebitenfx: could not compile ink shader, using fade", "err", err)
		return e
	}
	e.shader = s
	return e
}

// HasShader reports whether draws run the Kage program.
func (e *Effect) HasShader() bool { return e.shader != nil }

// Draw renders src onto dst at (x, y), revealed to progress.
func (e *Effect) Draw(dst, src *ebiten.Image, x, y, progress float64, cfg inkflow.Config) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	rt := e.binding.Bind(progress, cfg)
	plan := inkflow.PlanDraw(rt, inkflow.V2(float64(w), float64(h)), e.shader != nil)
	if !plan.Shader {
		e.drawFaded(dst, src, x, y, plan.Alpha)
		return
	}
	op := &ebiten.DrawRectShaderOptions{}
	op.GeoM.Translate(x, y)
	op.Images[0] = src
	op.Uniforms = plan.Uniforms.KageUniforms()
	dst.DrawRectShader(w, h, e.shader, op)
}

func (e *Effect) drawFaded(dst, src *ebiten.Image, x, y, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(src, op)
}

// Close releases the shader.
func (e *Effect) Close() {
	if e.shader != nil {
		e.shader.Deallocate()
		e.shader = nil
	}
}
