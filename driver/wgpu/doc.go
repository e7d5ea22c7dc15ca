// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements the frameloop driver boundary on WebGPU via
// github.com/cogentcore/webgpu.
//
// Importing the package registers the driver:
//
//	import _ "github.com/gogpu/frameloop/driver/wgpu"
//
// The window passed to frameloop.NewContext must provide the native
// surface handle:
//
//	SurfaceDescriptor() *wgpu.SurfaceDescriptor
//
// glfwwindow.Window does; custom windows can use the wgpuglfw (or
// platform equivalent) helpers to build one.
package wgpu
