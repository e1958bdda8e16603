package inkflow

import (
	"github.com/gogpu/gpucontext"
)

// CapabilityProbe reports whether the host can run the per-pixel shader
// effect. It is queried when a Dispatcher is created and on Reprobe.
//
// A nil probe, or one that panics, counts as "not supported".
type CapabilityProbe func() bool

// StaticProbe returns a probe with a fixed answer.
func StaticProbe(supported bool) CapabilityProbe {
	return func() bool { return supported }
}

// DeviceProbe reports shader support when the host provides a hardware GPU
// device. A nil provider, one without a device (such as a null device handle
// used for CPU-only rendering), or a software adapter selects the fallback
// fade.
func DeviceProbe(provider gpucontext.DeviceProvider) CapabilityProbe {
	return func() bool {
		if provider == nil || provider.Device() == nil {
			return false
		}
		if info := provider.AdapterInfo(); info.Type == gpucontext.AdapterTypeSoftware {
			Logger().Info("inkflow: software adapter, using fallback fade", "adapter", info.Name)
			return false
		}
		return true
	}
}

// queryProbe runs probe and converts failures into false.
func queryProbe(probe CapabilityProbe) (supported bool) {
	if probe == nil {
		Logger().Warn("inkflow: no capability probe, using fallback fade")
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("inkflow: capability probe failed, using fallback fade", "panic", r)
			supported = false
		}
	}()
	return probe()
}
