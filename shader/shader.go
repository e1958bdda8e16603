// Package shader holds the GPU renditions of the ink reveal: a WGSL program
// for wgpu hosts and a Kage program for ebiten hosts.
//
// Both sources are embedded and carry the same constants as the CPU path in
// package inkflow. The WGSL program is compiled to SPIR-V with naga; the Kage
// program is compiled by ebiten itself (see package ebitenfx).
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/naga"
)

//go:embed ink_reveal.wgsl
var wgslSource string

//go:embed ink_reveal.kage
var kageSource []byte

// Entry points of the WGSL program.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// UniformSize is the size in bytes of the uniform block.
const UniformSize = 32

// ErrEmptySource is returned when an embedded source is missing.
var ErrEmptySource = errors.New("shader: empty source")

// WGSL returns the WGSL source of the ink reveal program.
func WGSL() string { return wgslSource }

// Kage returns the Kage source of the ink reveal program.
// The returned slice is a copy.
func Kage() []byte {
	out := make([]byte, len(kageSource))
	copy(out, kageSource)
	return out
}

// Uniforms is the per-frame parameter block of the ink reveal program.
// Field order matches the WGSL InkUniforms struct.
type Uniforms struct {
	Progress           float32
	NoiseScale         float32
	DistortionStrength float32
	EdgeSoftness       float32
	CenterX            float32
	CenterY            float32
	Width              float32
	Height             float32
}

// Bytes encodes the uniform block as UniformSize little-endian bytes.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	fields := [...]float32{
		u.Progress, u.NoiseScale, u.DistortionStrength, u.EdgeSoftness,
		u.CenterX, u.CenterY, u.Width, u.Height,
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// KageUniforms returns the uniform map for ebiten's DrawRectShaderOptions.
// The surface size comes from the source image in Kage, so Width and Height
// are not included.
func (u Uniforms) KageUniforms() map[string]any {
	return map[string]any{
		"Progress":           u.Progress,
		"NoiseScale":         u.NoiseScale,
		"DistortionStrength": u.DistortionStrength,
		"EdgeSoftness":       u.EdgeSoftness,
		"CenterX":            u.CenterX,
		"CenterY":            u.CenterY,
	}
}

// Program is the ink reveal program compiled to SPIR-V.
// A Program is immutable and may be shared between goroutines.
type Program struct {
	spirv []uint32
}

// Compile compiles the embedded WGSL program to SPIR-V.
func Compile() (*Program, error) {
	return CompileSource(wgslSource)
}

// CompileSource compiles WGSL source to SPIR-V.
func CompileSource(source string) (*Program, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile ink reveal: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: malformed SPIR-V (%d bytes)", len(spirvBytes))
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	if code[0] != SPIRVMagic {
		return nil, fmt.Errorf("shader: invalid SPIR-V magic 0x%08X", code[0])
	}
	return &Program{spirv: code}, nil
}

// SPIRV returns the SPIR-V words. The slice must not be modified.
func (p *Program) SPIRV() []uint32 {
	return p.spirv
}

// WordCount returns the number of SPIR-V words.
func (p *Program) WordCount() int {
	return len(p.spirv)
}
