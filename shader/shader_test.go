package shader_test

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/gogpu/inkflow"
	"github.com/gogpu/inkflow/shader"
)

func TestSourcesEmbedded(t *testing.T) {
	wgsl := shader.WGSL()
	if wgsl == "" {
		t.Fatal("WGSL source is empty")
	}
	for _, want := range []string{
		"InkUniforms",
		"@vertex",
		"@fragment",
		"@group(0) @binding(0)",
		shader.VertexEntryPoint,
		shader.FragmentEntryPoint,
	} {
		if !strings.Contains(wgsl, want) {
			t.Errorf("WGSL source missing %q", want)
		}
	}

	kage := string(shader.Kage())
	if !strings.Contains(kage, "//kage:unit pixels") {
		t.Error("Kage source must use pixel units")
	}
	if !strings.Contains(kage, "func Fragment(") {
		t.Error("Kage source missing Fragment entry point")
	}
}

func TestKageReturnsCopy(t *testing.T) {
	a := shader.Kage()
	a[0] = 'X'
	if shader.Kage()[0] == 'X' {
		t.Error("Kage() exposed the embedded buffer")
	}
}

// TestConstantParity checks that both GPU programs carry the literals used by
// the CPU implementation.
func TestConstantParity(t *testing.T) {
	constants := map[string]float64{
		"HashDotX":          inkflow.HashDotX,
		"HashDotY":          inkflow.HashDotY,
		"HashScale":         inkflow.HashScale,
		"SimplexSkew":       inkflow.SimplexSkew,
		"SimplexUnskew":     inkflow.SimplexUnskew,
		"NoiseAmplitude":    inkflow.NoiseAmplitude,
		"RadiusMargin":      inkflow.RadiusMargin,
		"ProgressOvershoot": inkflow.ProgressOvershoot,
	}
	sources := map[string]string{
		"wgsl": shader.WGSL(),
		"kage": string(shader.Kage()),
	}

	for srcName, src := range sources {
		for name, v := range constants {
			lit := strconv.FormatFloat(v, 'f', -1, 64)
			if !strings.Contains(src, lit) {
				t.Errorf("%s source missing %s literal %s", srcName, name, lit)
			}
		}
		octaves := "< " + strconv.Itoa(inkflow.DefaultOctaves)
		if !strings.Contains(src, octaves) {
			t.Errorf("%s source missing octave bound %q", srcName, octaves)
		}
	}
}

func TestUniformsBytes(t *testing.T) {
	u := shader.Uniforms{
		Progress:           0.25,
		NoiseScale:         3,
		DistortionStrength: 0.15,
		EdgeSoftness:       0.15,
		CenterX:            0.5,
		CenterY:            1,
		Width:              800,
		Height:             600,
	}
	b := u.Bytes()
	if len(b) != shader.UniformSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), shader.UniformSize)
	}

	tests := []struct {
		offset int
		want   float32
	}{
		{0, 0.25},
		{4, 3},
		{20, 1},
		{24, 800},
		{28, 600},
	}
	for _, tt := range tests {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[tt.offset:]))
		if got != tt.want {
			t.Errorf("field at offset %d = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestKageUniforms(t *testing.T) {
	u := shader.Uniforms{Progress: 0.5, NoiseScale: 3, Width: 10, Height: 10}
	m := u.KageUniforms()
	if got, ok := m["Progress"].(float32); !ok || got != 0.5 {
		t.Errorf("Progress uniform = %v, want float32(0.5)", m["Progress"])
	}
	if _, ok := m["Width"]; ok {
		t.Error("Kage uniforms must not carry Width; the source image provides the size")
	}
	kage := string(shader.Kage())
	for name := range m {
		if !strings.Contains(kage, "var "+name+" float") {
			t.Errorf("uniform %s not declared in Kage source", name)
		}
	}
}

func TestCompileSourceEmpty(t *testing.T) {
	_, err := shader.CompileSource("")
	if !errors.Is(err, shader.ErrEmptySource) {
		t.Errorf("CompileSource(\"\") error = %v, want ErrEmptySource", err)
	}
}

func TestCompile(t *testing.T) {
	prog, err := shader.Compile()
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") ||
			strings.Contains(errStr, "unsupported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile ink reveal shader: %v", err)
	}
	if prog.WordCount() == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	if prog.SPIRV()[0] != shader.SPIRVMagic {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x%08X", prog.SPIRV()[0], shader.SPIRVMagic)
	}
}
