package inkflow

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestBindingFallback(t *testing.T) {
	d := NewDispatcher(StaticProbe(false))
	defer d.Close()
	b := NewBinding(d, nil)

	for _, p := range []float64{-1, 0, 0.4, 1, 2} {
		rt := b.Bind(p, DefaultConfig())
		u, ok := rt.(UniformAlpha)
		if !ok {
			t.Fatalf("Bind(%v) = %T, want UniformAlpha", p, rt)
		}
		if u.Alpha01 != clamp01(p) {
			t.Errorf("Bind(%v).Alpha01 = %v, want %v", p, u.Alpha01, clamp01(p))
		}
		if got := rt.Alpha(V2(3, 4), V2(10, 10)); got != clamp01(p) {
			t.Errorf("Alpha() = %v, want %v", got, clamp01(p))
		}
	}
}

func TestBindingFullEffect(t *testing.T) {
	d := NewDispatcher(StaticProbe(true), WithShaderCompilation(false))
	defer d.Close()
	b := NewBinding(d, &mockProvider{device: &mockDevice{}, format: gputypes.TextureFormatBGRA8Unorm})

	cfg := Preset(TopLeft)
	rt := b.Bind(1.7, cfg)
	ap, ok := rt.(*AlphaProgram)
	if !ok {
		t.Fatalf("Bind = %T, want *AlphaProgram", rt)
	}
	if ap.Engine != d.GetOrCreate(cfg) {
		t.Error("AlphaProgram should carry the cached engine")
	}
	if ap.Progress != 1 {
		t.Errorf("Progress = %v, want clamped 1", ap.Progress)
	}
	if ap.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v, want BGRA8Unorm", ap.Format)
	}

	size := V2(200, 100)
	px := V2(20, 10)
	if got, want := ap.Alpha(px, size), ComputeAlpha(px, size, 1, cfg); got != want {
		t.Errorf("Alpha() = %v, want %v", got, want)
	}
	if u := ap.Uniforms(size); u.Width != 200 || u.Height != 100 || u.CenterX != 0 {
		t.Errorf("Uniforms() = %+v", u)
	}
}

func TestNewBindingFormat(t *testing.T) {
	d := NewDispatcher(StaticProbe(false))
	defer d.Close()

	tests := []struct {
		name     string
		provider *mockProvider
		want     gputypes.TextureFormat
	}{
		{"undefined surface", &mockProvider{}, gputypes.TextureFormatRGBA8Unorm},
		{"bgra surface", &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBinding(d, tt.provider).Format(); got != tt.want {
				t.Errorf("Format() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := NewBinding(d, nil).Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("nil provider Format() = %v, want RGBA8Unorm", got)
	}
}

func opaqueImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 128, B: 0, A: 255})
		}
	}
	return img
}

func TestBindingApplyFallback(t *testing.T) {
	d := NewDispatcher(StaticProbe(false))
	defer d.Close()
	b := NewBinding(d, nil)

	img := opaqueImage(8, 8)
	b.Apply(img, 0, DefaultConfig())
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("alpha at progress 0 = %d, want 0", img.Pix[i])
		}
	}

	img = opaqueImage(8, 8)
	b.Apply(img, 1, DefaultConfig())
	if got := img.RGBAAt(4, 4); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("pixel at progress 1 = %v, want unchanged", got)
	}
}

func TestBindingApplyFullEffect(t *testing.T) {
	d := NewDispatcher(StaticProbe(true), WithShaderCompilation(false))
	defer d.Close()
	b := NewBinding(d, nil)

	img := opaqueImage(64, 64)
	b.Apply(img, 0.3, DefaultConfig())

	// Origin revealed, far corner still hidden.
	if a := img.RGBAAt(32, 32).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestBindingApplyEmpty(t *testing.T) {
	d := NewDispatcher(StaticProbe(true), WithShaderCompilation(false))
	defer d.Close()
	NewBinding(d, nil).Apply(image.NewRGBA(image.Rectangle{}), 0.5, DefaultConfig())
}

func TestPlanDraw(t *testing.T) {
	d := newCPUDispatcher(t)
	cfg := DefaultConfig()
	size := V2(320, 200)
	program := &AlphaProgram{Engine: d.GetOrCreate(cfg), Progress: 0.4}

	tests := []struct {
		name        string
		rt          RenderTransform
		shaderReady bool
		wantShader  bool
		wantAlpha   float64
	}{
		{"program with shader", program, true, true, 0},
		{"program without shader", program, false, false, 0.4},
		{"uniform alpha", UniformAlpha{Alpha01: 0.7}, true, false, 0.7},
		{"uniform alpha without shader", UniformAlpha{Alpha01: 0.2}, false, false, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanDraw(tt.rt, size, tt.shaderReady)
			if plan.Shader != tt.wantShader {
				t.Fatalf("Shader = %v, want %v", plan.Shader, tt.wantShader)
			}
			if plan.Shader {
				if want := program.Uniforms(size); plan.Uniforms != want {
					t.Errorf("Uniforms = %+v, want %+v", plan.Uniforms, want)
				}
				return
			}
			if plan.Alpha != tt.wantAlpha {
				t.Errorf("Alpha = %v, want %v", plan.Alpha, tt.wantAlpha)
			}
		})
	}
}
