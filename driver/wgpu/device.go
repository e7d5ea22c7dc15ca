// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"

	webgpu "github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// Device owns the WebGPU instance, adapter, logical device, queue, and
// the window's surface. Single-threaded; driven by the frame loop.
type Device struct {
	instance *webgpu.Instance
	surface  *webgpu.Surface
	adapter  *webgpu.Adapter
	device   *webgpu.Device
	queue    *webgpu.Queue

	caps      webgpu.SurfaceCapabilities
	preferred webgpu.TextureFormat
	released  bool
}

// Configure implements driver.Device.
func (d *Device) Configure(cfg driver.SurfaceConfig) error {
	format, err := d.surfaceFormat(cfg.Format)
	if err != nil {
		return err
	}
	d.surface.Configure(d.adapter, d.device, &webgpu.SurfaceConfiguration{
		Usage:       webgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: presentMode(cfg.PresentMode),
		AlphaMode:   webgpu.CompositeAlphaModeAuto,
	})
	frameloop.Logger().Debug("wgpu: surface configured",
		"width", cfg.Width, "height", cfg.Height)
	return nil
}

// surfaceFormat resolves the configured format to a native one,
// falling back to the surface's preferred format for Undefined.
func (d *Device) surfaceFormat(f gputypes.TextureFormat) (webgpu.TextureFormat, error) {
	if f == gputypes.TextureFormatUndefined {
		return d.preferred, nil
	}
	native, ok := toTextureFormat(f)
	if !ok {
		return 0, fmt.Errorf("wgpu: unsupported surface format %d", int(f))
	}
	return native, nil
}

// Acquire implements driver.Device. Acquisition failures are mapped
// onto the driver taxonomy so the loop can apply its recovery policy.
func (d *Device) Acquire() (driver.Frame, error) {
	tex, err := d.surface.GetCurrentTexture()
	if err != nil {
		return nil, classifySurfaceError(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("wgpu: create frame view: %w", err)
	}
	return &Frame{dev: d, texture: tex, view: view}, nil
}

// Encode implements driver.Device: one render pass over f, optionally
// binding p and issuing its draw.
func (d *Device) Encode(f driver.Frame, p driver.Pipeline, pass driver.PassConfig) (driver.CommandBuffer, error) {
	fr, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("wgpu: foreign frame %T", f)
	}

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	defer encoder.Release()

	rp := encoder.BeginRenderPass(&webgpu.RenderPassDescriptor{
		ColorAttachments: []webgpu.RenderPassColorAttachment{{
			View:       fr.view,
			LoadOp:     loadOp(pass.Load),
			StoreOp:    webgpu.StoreOpStore,
			ClearValue: clearColor(pass.Clear),
		}},
	})
	if p != nil {
		pl, ok := p.(*Pipeline)
		if !ok {
			rp.End()
			return nil, fmt.Errorf("wgpu: foreign pipeline %T", p)
		}
		rp.SetPipeline(pl.pipeline)
		instances := pl.desc.InstanceCount
		if instances == 0 {
			instances = 1
		}
		rp.Draw(pl.desc.VertexCount, instances, 0, 0)
	}
	rp.End()

	cb, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("wgpu: finish encoding: %w", err)
	}
	return cb, nil
}

// Submit implements driver.Device.
func (d *Device) Submit(cb driver.CommandBuffer) error {
	buf, ok := cb.(*webgpu.CommandBuffer)
	if !ok {
		return fmt.Errorf("wgpu: foreign command buffer %T", cb)
	}
	d.queue.Submit(buf)
	buf.Release()
	return nil
}

// Wait implements driver.Device, blocking until the queue drains.
func (d *Device) Wait() error {
	d.device.Poll(true, nil)
	return nil
}

// SurfaceFormat implements driver.Device.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	if f, ok := fromTextureFormat(d.preferred); ok {
		return f
	}
	return gputypes.TextureFormatUndefined
}

// Release implements driver.Device. Idempotent.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	releaseAll(d.queue, d.device, d.adapter, d.surface, d.instance)
}

// Frame is one acquired surface texture plus its render view.
type Frame struct {
	dev     *Device
	texture *webgpu.Texture
	view    *webgpu.TextureView
}

// Present implements driver.Frame.
func (f *Frame) Present() error {
	f.view.Release()
	f.dev.surface.Present()
	f.texture.Release()
	return nil
}

// Discard implements driver.Frame.
func (f *Frame) Discard() {
	f.view.Release()
	f.texture.Release()
}

var (
	_ driver.Device = (*Device)(nil)
	_ driver.Frame  = (*Frame)(nil)
)
