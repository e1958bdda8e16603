//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/inkflow/shader"
)

// ErrNoProgram is returned by NewModule when no compiled program is given,
// for instance when the dispatcher is in fallback mode or its compile failed.
var ErrNoProgram = errors.New("gpu: no compiled program")

// Module holds the device resources of the ink reveal program: the shader
// module and the uniform buffer its fragment stage reads.
type Module struct {
	mu       sync.Mutex
	device   hal.Device
	shader   hal.ShaderModule
	uniforms hal.Buffer
}

// NewModule creates the shader module and uniform buffer on device.
func NewModule(device hal.Device, prog *shader.Program) (*Module, error) {
	if device == nil {
		return nil, ErrNoHAL
	}
	if prog == nil || prog.WordCount() == 0 {
		return nil, ErrNoProgram
	}

	sm, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "ink_reveal",
		Source: hal.ShaderSource{
			SPIRV: prog.SPIRV(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module: %w", err)
	}

	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ink_reveal_uniforms",
		Size:  shader.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyShaderModule(sm)
		return nil, fmt.Errorf("gpu: create uniform buffer: %w", err)
	}

	return &Module{device: device, shader: sm, uniforms: buf}, nil
}

// ShaderModule returns the HAL shader module, or nil after Close.
func (m *Module) ShaderModule() hal.ShaderModule {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shader
}

// UniformBuffer returns the uniform buffer bound at group 0, binding 0.
func (m *Module) UniformBuffer() hal.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uniforms
}

// Upload writes one frame's uniforms.
func (m *Module) Upload(queue hal.Queue, u shader.Uniforms) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uniforms == nil || queue == nil {
		return
	}
	queue.WriteBuffer(m.uniforms, 0, u.Bytes())
}

// Close releases the device resources. It is safe to call more than once.
func (m *Module) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uniforms != nil {
		m.device.DestroyBuffer(m.uniforms)
		m.uniforms = nil
	}
	if m.shader != nil {
		m.device.DestroyShaderModule(m.shader)
		m.shader = nil
	}
}
