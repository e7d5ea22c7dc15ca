// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"testing"

	webgpu "github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

func TestTextureFormatRoundTrip(t *testing.T) {
	formats := []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatR8Unorm,
	}
	for _, f := range formats {
		native, ok := toTextureFormat(f)
		if !ok {
			t.Fatalf("toTextureFormat(%d) not mapped", int(f))
		}
		back, ok := fromTextureFormat(native)
		if !ok {
			t.Fatalf("fromTextureFormat(%d) not mapped", int(native))
		}
		if back != f {
			t.Errorf("round trip of format %d = %d", int(f), int(back))
		}
	}
}

func TestTextureFormatUnmapped(t *testing.T) {
	if _, ok := toTextureFormat(gputypes.TextureFormatDepth24PlusStencil8); ok {
		t.Error("depth format should not map to a surface format")
	}
}

func TestPresentMode(t *testing.T) {
	tests := []struct {
		in   driver.PresentMode
		want webgpu.PresentMode
	}{
		{driver.PresentModeFifo, webgpu.PresentModeFifo},
		{driver.PresentModeMailbox, webgpu.PresentModeMailbox},
		{driver.PresentModeImmediate, webgpu.PresentModeImmediate},
		{driver.PresentMode(99), webgpu.PresentModeFifo},
	}
	for _, tt := range tests {
		if got := presentMode(tt.in); got != tt.want {
			t.Errorf("presentMode(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadOp(t *testing.T) {
	if got := loadOp(gputypes.LoadOpLoad); got != webgpu.LoadOpLoad {
		t.Errorf("loadOp(Load) = %v, want Load", got)
	}
	if got := loadOp(gputypes.LoadOpClear); got != webgpu.LoadOpClear {
		t.Errorf("loadOp(Clear) = %v, want Clear", got)
	}
}

func TestVertexLayouts(t *testing.T) {
	layouts, err := vertexLayouts([]gputypes.VertexBufferLayout{{
		ArrayStride: 24,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
		},
	}})
	if err != nil {
		t.Fatalf("vertexLayouts() error = %v", err)
	}
	if len(layouts) != 1 {
		t.Fatalf("len(layouts) = %d, want 1", len(layouts))
	}
	if layouts[0].ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", layouts[0].ArrayStride)
	}
	if got := layouts[0].Attributes[1].Format; got != webgpu.VertexFormatFloat32x4 {
		t.Errorf("attribute 1 format = %v, want Float32x4", got)
	}
}

func TestVertexLayoutsUnsupportedFormat(t *testing.T) {
	_, err := vertexLayouts([]gputypes.VertexBufferLayout{{
		ArrayStride: 4,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormat(200), Offset: 0, ShaderLocation: 3},
		},
	}})
	if err == nil {
		t.Fatal("expected error for unsupported vertex format")
	}
}

func TestVertexLayoutsEmpty(t *testing.T) {
	layouts, err := vertexLayouts(nil)
	if err != nil {
		t.Fatalf("vertexLayouts(nil) error = %v", err)
	}
	if layouts != nil {
		t.Errorf("vertexLayouts(nil) = %v, want nil", layouts)
	}
}

func TestClassifySurfaceError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"Surface timed out", driver.ErrSurfaceTimeout},
		{"acquire timeout", driver.ErrSurfaceTimeout},
		{"Surface is outdated", driver.ErrSurfaceOutdated},
		{"Surface was lost", driver.ErrSurfaceLost},
		{"Device out of memory", driver.ErrOutOfMemory},
	}
	for _, tt := range tests {
		got := classifySurfaceError(fmt.Errorf("%s", tt.msg))
		if !errors.Is(got, tt.want) {
			t.Errorf("classifySurfaceError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestClassifySurfaceErrorUnknown(t *testing.T) {
	base := errors.New("something else entirely")
	got := classifySurfaceError(base)
	if !errors.Is(got, base) {
		t.Error("unknown errors should wrap the original")
	}
	for _, sentinel := range []error{
		driver.ErrSurfaceTimeout, driver.ErrSurfaceOutdated,
		driver.ErrSurfaceLost, driver.ErrOutOfMemory,
	} {
		if errors.Is(got, sentinel) {
			t.Errorf("unknown error mapped to %v", sentinel)
		}
	}
}
