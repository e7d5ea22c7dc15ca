// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver defines the GPU abstraction boundary for frameloop.
//
// A Driver opens a Device for a window; the Device owns the adapter,
// logical device, command queue, and presentable surface of one window
// and exposes the five operations the frame loop needs: surface
// configuration, frame acquisition, pipeline compilation, render-pass
// encoding, and queue submission.
//
// Concrete drivers register themselves from init(), so selecting a GPU
// implementation is an import:
//
//	import _ "github.com/gogpu/frameloop/driver/wgpu" // WebGPU driver
//
// The types in this package use github.com/gogpu/gputypes vocabulary
// (texture formats, vertex layouts, colors) so that driver-independent
// code never imports a specific GPU binding.
package driver
