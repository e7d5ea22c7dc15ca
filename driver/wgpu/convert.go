// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"strings"

	webgpu "github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// toTextureFormat maps a gputypes surface format to the native one.
func toTextureFormat(f gputypes.TextureFormat) (webgpu.TextureFormat, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return webgpu.TextureFormatRGBA8Unorm, true
	case gputypes.TextureFormatBGRA8Unorm:
		return webgpu.TextureFormatBGRA8Unorm, true
	case gputypes.TextureFormatR8Unorm:
		return webgpu.TextureFormatR8Unorm, true
	default:
		return 0, false
	}
}

// fromTextureFormat is the inverse of toTextureFormat.
func fromTextureFormat(f webgpu.TextureFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case webgpu.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, true
	case webgpu.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm, true
	case webgpu.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, true
	default:
		return 0, false
	}
}

func presentMode(m driver.PresentMode) webgpu.PresentMode {
	switch m {
	case driver.PresentModeMailbox:
		return webgpu.PresentModeMailbox
	case driver.PresentModeImmediate:
		return webgpu.PresentModeImmediate
	default:
		return webgpu.PresentModeFifo
	}
}

func loadOp(op gputypes.LoadOp) webgpu.LoadOp {
	if op == gputypes.LoadOpLoad {
		return webgpu.LoadOpLoad
	}
	return webgpu.LoadOpClear
}

func clearColor(c gputypes.Color) webgpu.Color {
	return webgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func topology(t gputypes.PrimitiveTopology) webgpu.PrimitiveTopology {
	if t == gputypes.PrimitiveTopologyLineList {
		return webgpu.PrimitiveTopologyLineList
	}
	return webgpu.PrimitiveTopologyTriangleList
}

// vertexLayouts converts vertex buffer layouts for pipeline creation.
// Unknown attribute formats fail creation rather than mis-describing
// the buffer to the GPU.
func vertexLayouts(layouts []gputypes.VertexBufferLayout) ([]webgpu.VertexBufferLayout, error) {
	if len(layouts) == 0 {
		return nil, nil
	}
	out := make([]webgpu.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]webgpu.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			format, ok := vertexFormat(a.Format)
			if !ok {
				return nil, fmt.Errorf("wgpu: unsupported vertex format %d at shader location %d",
					int(a.Format), a.ShaderLocation)
			}
			attrs = append(attrs, webgpu.VertexAttribute{
				Format:         format,
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			})
		}
		out = append(out, webgpu.VertexBufferLayout{
			ArrayStride: l.ArrayStride,
			StepMode:    webgpu.VertexStepModeVertex,
			Attributes:  attrs,
		})
	}
	return out, nil
}

func vertexFormat(f gputypes.VertexFormat) (webgpu.VertexFormat, bool) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return webgpu.VertexFormatFloat32, true
	case gputypes.VertexFormatFloat32x2:
		return webgpu.VertexFormatFloat32x2, true
	case gputypes.VertexFormatFloat32x4:
		return webgpu.VertexFormatFloat32x4, true
	default:
		return 0, false
	}
}

// classifySurfaceError maps a surface acquisition failure onto the
// driver taxonomy. The native layer reports these as text, so the
// mapping is by message.
func classifySurfaceError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %s", driver.ErrSurfaceTimeout, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %s", driver.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %s", driver.ErrSurfaceLost, err)
	case strings.Contains(msg, "out of memory"):
		return fmt.Errorf("%w: %s", driver.ErrOutOfMemory, err)
	default:
		return fmt.Errorf("wgpu: acquire surface texture: %w", err)
	}
}
