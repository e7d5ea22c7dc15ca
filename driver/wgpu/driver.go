// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"

	webgpu "github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/driver"
)

// surfaceProvider is the window capability this driver requires: the
// native surface handle in WebGPU form.
type surfaceProvider interface {
	SurfaceDescriptor() *webgpu.SurfaceDescriptor
}

// Driver opens WebGPU devices for windows.
type Driver struct{}

// Name implements driver.Driver.
func (Driver) Name() string { return DriverName }

// Open implements driver.Driver. It creates the WebGPU instance and
// surface for win, requests a compatible adapter and logical device,
// and wraps them in a Device ready for Configure.
func (Driver) Open(win driver.Window, opts driver.Options) (driver.Device, error) {
	sp, ok := win.(surfaceProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: window %T does not provide a surface descriptor", win)
	}

	inst := webgpu.CreateInstance(nil)
	surface := inst.CreateSurface(sp.SurfaceDescriptor())

	adapter, err := inst.RequestAdapter(&webgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   powerPreference(opts.Power),
	})
	if err != nil {
		releaseAll(surface, inst)
		return nil, fmt.Errorf("wgpu: no compatible adapter: %w", err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		releaseAll(adapter, surface, inst)
		return nil, fmt.Errorf("wgpu: request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	preferred := preferredFormat(caps.Formats)

	info := adapter.GetInfo()
	frameloop.Logger().Info("wgpu: adapter selected",
		"name", info.Name, "vendor", info.VendorName)

	return &Device{
		instance:  inst,
		surface:   surface,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		caps:      caps,
		preferred: preferred,
	}, nil
}

// powerPreference maps the driver vocabulary onto WebGPU's.
func powerPreference(p driver.PowerPreference) webgpu.PowerPreference {
	switch p {
	case driver.PowerPreferenceLowPower:
		return webgpu.PowerPreferenceLowPower
	case driver.PowerPreferenceHighPerformance:
		return webgpu.PowerPreferenceHighPerformance
	default:
		return webgpu.PowerPreferenceUndefined
	}
}

// preferredFormat picks the surface format: the first capability with a
// gputypes equivalent, else the surface's own first preference.
func preferredFormat(formats []webgpu.TextureFormat) webgpu.TextureFormat {
	for _, f := range formats {
		if _, ok := fromTextureFormat(f); ok {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return webgpu.TextureFormatBGRA8Unorm
}

// releaser is anything with a Release method; every WebGPU handle is.
type releaser interface{ Release() }

// releaseAll releases handles in the given order, skipping nils.
func releaseAll(rs ...releaser) {
	for _, r := range rs {
		if r != nil {
			r.Release()
		}
	}
}

var _ driver.Driver = Driver{}
