package avalonia

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// GPUContext provides GPU device access from the host application.
//
// This interface is the integration point between the compositor and GPU
// frameworks. The host application implements gpucontext.DeviceProvider and
// registers it here, allowing drawing contexts to share the host's device.
//
// Key principle: the compositor RECEIVES the device from the host, it does
// NOT create one. Window creation, swapchains and shader pipelines stay on
// the host side; the registered context only exposes device, queue, adapter
// and preferred surface format.
type GPUContext = gpucontext.DeviceProvider

var (
	gpuMu   sync.RWMutex
	gpuCtx  GPUContext
	gpuLock sync.Mutex
)

// RegisterGPUContext registers the process-wide GPU context.
//
// Only one context can be registered; subsequent calls replace the previous
// one. Pass nil to unregister. Drawing contexts created while a GPU context
// is registered hold the global render lock for their lifetime, serializing
// GPU-backed drawing across the process.
func RegisterGPUContext(g GPUContext) {
	gpuMu.Lock()
	gpuCtx = g
	gpuMu.Unlock()
	if g != nil {
		propagateLogger(g, Logger())
	}
}

// CurrentGPUContext returns the registered GPU context, or nil if none.
func CurrentGPUContext() GPUContext {
	gpuMu.RLock()
	g := gpuCtx
	gpuMu.RUnlock()
	return g
}

// AcquireGPU returns the registered GPU context together with a release
// function. When a context is registered, the global render lock is held
// until release is called; otherwise the returned context is nil and release
// is a no-op. Release is safe to call exactly once per acquisition.
func AcquireGPU() (GPUContext, func()) {
	g := CurrentGPUContext()
	if g == nil {
		return nil, func() {}
	}
	gpuLock.Lock()
	var once sync.Once
	return g, func() {
		once.Do(gpuLock.Unlock)
	}
}

// NullGPUContext is a GPUContext with nil device handles.
// Used for CPU-only rendering where no GPU is available, and by tests that
// exercise the render-lock discipline without real hardware.
type NullGPUContext struct{}

// Device returns nil for the null context.
func (NullGPUContext) Device() gpucontext.Device { return nil }

// Queue returns nil for the null context.
func (NullGPUContext) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null context.
func (NullGPUContext) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter for the null context.
func (NullGPUContext) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns the undefined format for the null context.
func (NullGPUContext) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullGPUContext implements GPUContext.
var _ GPUContext = NullGPUContext{}
