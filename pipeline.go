// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

// PipelineDescriptor and ShaderSource are re-exported from the driver
// boundary; see driver.PipelineDescriptor.
type (
	PipelineDescriptor = driver.PipelineDescriptor
	ShaderSource       = driver.ShaderSource
)

// Pipeline is compiled, immutable GPU execution configuration: shader
// stages plus fixed-function state. Once built it never changes;
// swapping pipelines replaces the registry's active handle atomically.
type Pipeline struct {
	raw  driver.Pipeline
	desc driver.PipelineDescriptor
}

// Descriptor returns a copy of the descriptor the pipeline was built
// from.
func (p *Pipeline) Descriptor() PipelineDescriptor { return p.desc }

// Label returns the pipeline's debug label.
func (p *Pipeline) Label() string { return p.desc.Label }

// Release frees the pipeline's GPU resources. The pipeline must not be
// bound afterwards.
func (p *Pipeline) Release() {
	if p.raw != nil {
		p.raw.Release()
	}
}

// PipelineRegistry builds pipelines and owns the active one the frame
// loop binds each tick. Build is a pure function of its inputs; the
// registry's only mutable state is which pipeline is active, and that
// swaps atomically so hot reload never shows the loop a half-built
// pipeline.
type PipelineRegistry struct {
	active atomic.Pointer[Pipeline]

	mu    sync.Mutex
	named map[string]*Pipeline
}

// NewPipelineRegistry creates an empty registry.
func NewPipelineRegistry() *PipelineRegistry {
	return &PipelineRegistry{named: make(map[string]*Pipeline)}
}

// Build compiles desc into an immutable pipeline on ctx's device.
// The WGSL source is validated and compiled with naga before it
// reaches the driver, so shader errors surface as *CompileError here
// rather than as driver faults at bind time. The built pipeline is
// retained under its label; it does not become active until Swap.
func (r *PipelineRegistry) Build(ctx *Context, desc PipelineDescriptor) (*Pipeline, error) {
	if desc.Shader.WGSL == "" {
		return nil, &CompileError{Label: desc.Label, Err: errEmptyShader}
	}
	if desc.VertexEntry == "" {
		desc.VertexEntry = "vs_main"
	}
	if desc.FragmentEntry == "" {
		desc.FragmentEntry = "fs_main"
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = ctx.Config().Format
	}

	spirv, err := naga.Compile(desc.Shader.WGSL)
	if err != nil {
		return nil, &CompileError{Label: desc.Label, Err: err}
	}
	desc.Shader.SPIRV = spirvWords(spirv)

	dev := ctx.Device()
	if dev == nil {
		return nil, &CompileError{Label: desc.Label, Err: ErrReleased}
	}
	raw, err := dev.NewPipeline(desc)
	if err != nil {
		return nil, &CompileError{Label: desc.Label, Err: err}
	}

	p := &Pipeline{raw: raw, desc: desc}
	r.mu.Lock()
	prev := r.named[desc.Label]
	r.named[desc.Label] = p
	r.mu.Unlock()
	// Rebuilding a label displaces the old pipeline. Release it unless
	// it is still active; then the caller owns it until the next Swap.
	if prev != nil && r.active.Load() != prev {
		prev.Release()
	}

	Logger().Info("frameloop: pipeline built", "label", desc.Label)
	return p, nil
}

// Swap makes p the active pipeline and returns the previous one, which
// the caller owns (release it once no submission references it). A nil
// p deactivates rendering of geometry; the loop still clears.
func (r *PipelineRegistry) Swap(p *Pipeline) *Pipeline {
	return r.active.Swap(p)
}

// Active returns the currently active pipeline, or nil.
func (r *PipelineRegistry) Active() *Pipeline {
	return r.active.Load()
}

// Get returns a built pipeline by label.
func (r *PipelineRegistry) Get(label string) (*Pipeline, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.named[label]
	return p, ok
}

// Release frees every pipeline the registry retains and clears the
// active handle.
func (r *PipelineRegistry) Release() {
	r.active.Store(nil)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.named {
		p.Release()
	}
	r.named = make(map[string]*Pipeline)
}

// spirvWords converts naga's SPIR-V byte output to 32-bit words.
// SPIR-V is little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
