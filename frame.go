// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import "github.com/gogpu/frameloop/driver"

// Frame is a transient handle to one presentable surface image. It is
// valid only between AcquireFrame and Present or Discard; the context
// enforces at most one outstanding frame.
type Frame struct {
	ctx  *Context
	raw  driver.Frame
	done bool
}

// Present schedules the frame for display and invalidates the handle.
// Presenting an already-resolved frame fails with ErrFrameResolved.
func (f *Frame) Present() error {
	if f.done {
		return ErrFrameResolved
	}
	f.resolve()
	return f.raw.Present()
}

// Discard releases the frame without presenting it. Discard is safe to
// call on an already-resolved frame.
func (f *Frame) Discard() {
	if f.done {
		return
	}
	f.resolve()
	f.raw.Discard()
}

// resolve marks the frame done and clears the context's outstanding
// slot so the next acquisition can proceed.
func (f *Frame) resolve() {
	f.done = true
	if f.ctx != nil && f.ctx.outstanding == f {
		f.ctx.outstanding = nil
	}
}
