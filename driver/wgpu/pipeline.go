// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"

	webgpu "github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// Pipeline wraps a native render pipeline together with the descriptor
// it was built from; the draw call replays the descriptor's counts.
type Pipeline struct {
	pipeline *webgpu.RenderPipeline
	desc     driver.PipelineDescriptor
	released bool
}

// NewPipeline implements driver.Device. The shader module is built from
// the descriptor's WGSL source; validation against the driver happens
// here, so creation errors carry the native diagnostic.
func (d *Device) NewPipeline(desc driver.PipelineDescriptor) (driver.Pipeline, error) {
	module, err := d.device.CreateShaderModule(&webgpu.ShaderModuleDescriptor{
		Label: desc.Label,
		WGSLDescriptor: &webgpu.ShaderModuleWGSLDescriptor{
			Code: desc.Shader.WGSL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %q: %w", desc.Label, err)
	}
	defer module.Release()

	layout, err := d.device.CreatePipelineLayout(&webgpu.PipelineLayoutDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create pipeline layout %q: %w", desc.Label, err)
	}
	defer layout.Release()

	buffers, err := vertexLayouts(desc.Buffers)
	if err != nil {
		return nil, err
	}

	format := d.preferred
	if desc.Format != gputypes.TextureFormatUndefined {
		if native, ok := toTextureFormat(desc.Format); ok {
			format = native
		}
	}

	pipeline, err := d.device.CreateRenderPipeline(&webgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: webgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntry,
			Buffers:    buffers,
		},
		Primitive: webgpu.PrimitiveState{
			Topology:  topology(desc.Topology),
			FrontFace: webgpu.FrontFaceCCW,
			CullMode:  webgpu.CullModeNone,
		},
		Multisample: webgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &webgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntry,
			Targets: []webgpu.ColorTargetState{{
				Format:    format,
				Blend:     &webgpu.BlendStateReplace,
				WriteMask: webgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create render pipeline %q: %w", desc.Label, err)
	}
	return &Pipeline{pipeline: pipeline, desc: desc}, nil
}

// Release implements driver.Pipeline. Idempotent.
func (p *Pipeline) Release() {
	if p.released {
		return
	}
	p.released = true
	p.pipeline.Release()
}

var _ driver.Pipeline = (*Pipeline)(nil)
