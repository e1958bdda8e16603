//go:build !nogpu

// Package gpu uploads the ink reveal program to a wgpu HAL device.
//
// The host owns the device. It passes a provider that exposes the HAL types
// (HalDevice() any, HalQueue() any), the same contract gogpu's device
// providers implement. gpu never creates a device of its own.
//
// Usage:
//
//	d := inkflow.NewDispatcher(gpu.Probe(provider))
//	dev, queue, _ := gpu.HALFrom(provider)
//	m, err := gpu.NewModule(dev, d.Program())
//	...
//	m.Upload(queue, binding.Bind(progress, cfg).(*inkflow.AlphaProgram).Uniforms(size))
package gpu

import (
	"errors"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/inkflow"
)

// ErrNoHAL is returned when a provider does not expose HAL types.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL types")

type halDeviceProvider interface {
	HalDevice() any
}

type halQueueProvider interface {
	HalQueue() any
}

// DeviceFrom extracts the HAL device from a provider.
func DeviceFrom(provider any) (hal.Device, bool) {
	hp, ok := provider.(halDeviceProvider)
	if !ok {
		return nil, false
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, false
	}
	return device, true
}

// HALFrom extracts the HAL device and queue from a provider.
func HALFrom(provider any) (hal.Device, hal.Queue, error) {
	device, ok := DeviceFrom(provider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	qp, ok := provider.(halQueueProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	queue, ok := qp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, errors.New("gpu: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// Probe returns a capability probe that reports whether the provider
// exposes a HAL device.
func Probe(provider any) inkflow.CapabilityProbe {
	return func() bool {
		_, ok := DeviceFrom(provider)
		return ok
	}
}
