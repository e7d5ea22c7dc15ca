// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frameloop drives a GPU frame-rendering loop with
// resizable-surface lifecycle management.
//
// # Overview
//
// frameloop owns the three pieces every windowed GPU application
// repeats: a surface/device Context, an immutable render Pipeline
// registry, and a single-threaded frame Loop that acquires a surface
// frame, encodes one render pass, submits it, and presents - reacting
// to resize and close events between frames.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/frameloop"
//	    "github.com/gogpu/frameloop/glfwwindow"
//
//	    _ "github.com/gogpu/frameloop/driver/wgpu" // WebGPU driver
//	)
//
//	win, _ := glfwwindow.New(800, 600, "triangle")
//	ctx, err := frameloop.NewContext(win)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Release()
//
//	reg := frameloop.NewPipelineRegistry()
//	pl, err := reg.Build(ctx, frameloop.PipelineDescriptor{
//	    Label:       "triangle",
//	    Shader:      frameloop.ShaderSource{Label: "triangle", WGSL: src},
//	    VertexCount: 3,
//	})
//	reg.Swap(pl)
//
//	loop := frameloop.NewLoop(ctx, reg)
//	err = loop.Run()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Frame, PipelineRegistry, Loop, Window, Event
//   - driver: the GPU abstraction boundary and driver registry
//   - driver/wgpu: WebGPU driver (cogentcore/webgpu)
//   - driver/drivertest: in-memory driver for tests
//   - glfwwindow: desktop window and event source (GLFW)
//
// # Threading
//
// The loop, context, and window must all be used from the thread that
// owns the window's event queue; lock it with runtime.LockOSThread
// before creating the window. Nothing in the render path is shared
// across goroutines; SetLogger is the only call safe from anywhere.
package frameloop
