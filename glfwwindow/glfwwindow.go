// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

// Package glfwwindow provides a GLFW-backed window for frameloop on
// desktop platforms. It satisfies frameloop.Window and exposes the
// native surface descriptor the wgpu driver needs.
//
// All functions must be called from the main thread; callers should
// runtime.LockOSThread in init.
package glfwwindow

import (
	"fmt"

	webgpu "github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/frameloop"
)

// Init initializes GLFW. Call once before New, on the main thread.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfwwindow: init: %w", err)
	}
	return nil
}

// Terminate shuts GLFW down. Call as the last thing before quitting,
// on the main thread.
func Terminate() {
	glfw.Terminate()
}

// Window is a GLFW window that queues events for the frame loop to
// poll between frames.
type Window struct {
	win *glfw.Window

	queue     []frameloop.Event
	closeSent bool
}

// New creates a window without an OpenGL context, sized in screen
// coordinates. The surface dimensions reported by Size are in pixels
// and may differ on high-DPI displays.
func New(width, height int, title string) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwwindow: create window: %w", err)
	}

	w := &Window{win: win}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(frameloop.ResizeEvent{Width: width, Height: height})
	})
	win.SetCloseCallback(func(*glfw.Window) {
		w.pushClose()
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		w.push(frameloop.KeyEvent{
			Code:    mapKey(key),
			Pressed: action == glfw.Press,
		})
	})
	win.SetRefreshCallback(func(*glfw.Window) {
		w.push(frameloop.RedrawEvent{})
	})

	return w, nil
}

func (w *Window) push(ev frameloop.Event) {
	w.queue = append(w.queue, ev)
}

// pushClose enqueues a close event at most once.
func (w *Window) pushClose() {
	if w.closeSent {
		return
	}
	w.closeSent = true
	w.queue = append(w.queue, frameloop.CloseEvent{})
}

// Size implements frameloop.Window, reporting the framebuffer size in
// pixels.
func (w *Window) Size() (width, height int) {
	return w.win.GetFramebufferSize()
}

// PollEvents implements frameloop.Window: it pumps GLFW and returns the
// events accumulated since the last call.
func (w *Window) PollEvents() []frameloop.Event {
	glfw.PollEvents()
	if w.win.ShouldClose() {
		w.pushClose()
	}
	events := w.queue
	w.queue = nil
	return events
}

// SurfaceDescriptor returns the native surface handle in WebGPU form;
// the wgpu driver requires it.
func (w *Window) SurfaceDescriptor() *webgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

// Destroy destroys the underlying window. The window must not be used
// afterwards.
func (w *Window) Destroy() {
	w.win.Destroy()
}

func mapKey(key glfw.Key) frameloop.Key {
	if key == glfw.KeyEscape {
		return frameloop.KeyEscape
	}
	return frameloop.Key(key)
}

var _ frameloop.Window = (*Window)(nil)
