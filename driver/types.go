// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import "github.com/gogpu/gputypes"

// PresentMode controls how submitted frames become visible on screen.
type PresentMode uint8

const (
	// PresentModeFifo waits for the next vertical blank before
	// presenting, capping the frame rate at the display refresh rate
	// (vsync). Guaranteed to be supported everywhere.
	PresentModeFifo PresentMode = iota

	// PresentModeMailbox replaces the queued frame with the newest one,
	// giving low latency without tearing where supported.
	PresentModeMailbox

	// PresentModeImmediate presents without waiting for vertical blank
	// and may tear.
	PresentModeImmediate
)

// String returns the present mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// PowerPreference selects between adapters on multi-GPU systems.
type PowerPreference uint8

const (
	// PowerPreferenceAuto lets the driver choose.
	PowerPreferenceAuto PowerPreference = iota

	// PowerPreferenceLowPower prefers the integrated GPU.
	PowerPreferenceLowPower

	// PowerPreferenceHighPerformance prefers the discrete GPU.
	PowerPreferenceHighPerformance
)

// Options configures how a Driver opens a Device.
type Options struct {
	// PresentMode is the initial surface presentation mode.
	PresentMode PresentMode

	// Power is the adapter selection preference.
	Power PowerPreference

	// Format requests a specific surface format. Leave as
	// gputypes.TextureFormatUndefined to use the driver's preferred
	// format for the surface.
	Format gputypes.TextureFormat
}

// SurfaceConfig is the full configuration of a presentable surface.
//
// Width and Height are in physical pixels and are never zero when the
// config reaches Device.Configure; zero-sized windows are filtered out
// upstream.
type SurfaceConfig struct {
	Width  uint32
	Height uint32

	// Format is the surface pixel format. Undefined means the driver's
	// preferred format.
	Format gputypes.TextureFormat

	// PresentMode governs presentation timing and buffering.
	PresentMode PresentMode
}

// PassConfig describes the single render pass encoded for one frame.
type PassConfig struct {
	// Load is the color-attachment load operation. LoadOpClear clears
	// to Clear; LoadOpLoad preserves the previous contents.
	Load gputypes.LoadOp

	// Clear is the clear color used when Load is LoadOpClear.
	Clear gputypes.Color
}

// ShaderSource carries one shader module in source and compiled form.
type ShaderSource struct {
	// Label is a debug label for the module.
	Label string

	// WGSL is the shader source. Required.
	WGSL string

	// SPIRV is the compiled form of WGSL, filled in by the pipeline
	// registry before the descriptor reaches a driver. Drivers that
	// consume WGSL directly may ignore it.
	SPIRV []uint32
}

// PipelineDescriptor describes an immutable render pipeline: shader
// stages plus fixed-function state. It is a pure value; building the
// same descriptor twice yields equivalent pipelines.
type PipelineDescriptor struct {
	// Label is a debug label for the pipeline.
	Label string

	// Shader is the module providing both stage entry points.
	Shader ShaderSource

	// VertexEntry and FragmentEntry name the stage entry points.
	// Default "vs_main" and "fs_main".
	VertexEntry   string
	FragmentEntry string

	// Buffers is the vertex input layout. Empty for shaders that
	// generate geometry from the vertex index alone.
	Buffers []gputypes.VertexBufferLayout

	// Topology is the primitive topology. The zero value is
	// PrimitiveTopologyTriangleList in gputypes.
	Topology gputypes.PrimitiveTopology

	// Format is the color target format; Undefined means the surface
	// format of the device the pipeline is built on.
	Format gputypes.TextureFormat

	// VertexCount and InstanceCount are the draw parameters used when
	// the frame loop binds this pipeline. InstanceCount zero means one.
	VertexCount   uint32
	InstanceCount uint32
}

// Window is the subset of the windowing layer a driver needs: the
// current drawable size. Concrete drivers type-assert the window for
// platform handles (for example a SurfaceDescriptor method on the
// WebGPU driver).
type Window interface {
	// Size returns the drawable size in physical pixels. Either
	// dimension may be zero while the window is minimized.
	Size() (width, height int)
}

// Frame is a transient handle to one presentable surface image. It is
// valid from acquisition until Present or Discard, whichever comes
// first, and must be resolved before the next acquisition.
type Frame interface {
	// Present schedules the frame for display and invalidates it.
	Present() error

	// Discard releases the frame without presenting it.
	Discard()
}

// Pipeline is an opaque handle to compiled, immutable pipeline state.
type Pipeline interface {
	// Release frees the pipeline's GPU resources.
	Release()
}

// CommandBuffer is an opaque handle to encoded GPU commands, produced
// by Device.Encode and consumed exactly once by Device.Submit.
type CommandBuffer interface{}

// Device owns one window's GPU connection: adapter, logical device,
// queue, and surface. Devices are not safe for concurrent use; all
// calls must come from the thread driving the frame loop.
type Device interface {
	// Configure applies cfg to the surface. Called synchronously before
	// the next acquisition whenever the drawable size changes. cfg
	// dimensions are never zero.
	Configure(cfg SurfaceConfig) error

	// Acquire returns the next presentable frame. Failures are the
	// surface sentinels (possibly wrapped): ErrSurfaceLost,
	// ErrSurfaceOutdated, ErrSurfaceTimeout, or a fatal device error.
	Acquire() (Frame, error)

	// NewPipeline compiles desc into an immutable pipeline.
	NewPipeline(desc PipelineDescriptor) (Pipeline, error)

	// Encode records one render pass over f binding p. A nil p encodes
	// the pass (load/clear) without a draw.
	Encode(f Frame, p Pipeline, pass PassConfig) (CommandBuffer, error)

	// Submit hands cb to the queue. Returns once the commands are
	// queued; completion is observed via Wait.
	Submit(cb CommandBuffer) error

	// Wait blocks until all submitted work has completed.
	Wait() error

	// SurfaceFormat returns the surface's preferred texture format, or
	// Undefined when the native format has no gputypes equivalent.
	SurfaceFormat() gputypes.TextureFormat

	// Release frees the device, surface, and related resources.
	Release()
}

// Driver opens GPU devices for windows.
type Driver interface {
	// Name returns the registry name of the driver.
	Name() string

	// Open creates a Device presenting to win.
	Open(win Window, opts Options) (Device, error)
}
