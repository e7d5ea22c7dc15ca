// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"fmt"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// SurfaceConfig is re-exported from the driver boundary for callers
// inspecting Context.Config.
type SurfaceConfig = driver.SurfaceConfig

// Context owns one window's GPU connection: the driver device (adapter,
// logical device, queue, surface) plus the current surface
// configuration. It is created by the application root, passed by
// reference, and released exactly once; there is no global renderer
// state.
//
// Context is not safe for concurrent use. All calls must come from the
// thread driving the frame loop.
type Context struct {
	dev driver.Device
	win Window
	cfg driver.SurfaceConfig

	// outstanding is the acquired-but-unresolved frame, if any.
	// At most one frame is ever outstanding.
	outstanding *Frame

	released bool
}

// NewContext opens a GPU device for win and configures its surface to
// the window's current drawable size. It fails with *InitError when no
// driver is available or the driver cannot produce a device.
//
// If the window is currently zero-sized (minimized), the surface is
// left unconfigured; the first non-zero Reconfigure completes setup.
func NewContext(win Window, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		d   driver.Driver
		err error
	)
	if o.driverName != "" {
		d, err = driver.ByName(o.driverName)
	} else {
		d, err = driver.Default()
	}
	if err != nil {
		return nil, &InitError{Err: err}
	}

	dev, err := d.Open(win, o.driver)
	if err != nil {
		return nil, &InitError{Driver: d.Name(), Err: err}
	}

	w, h := win.Size()
	cfg := driver.SurfaceConfig{
		Width:       uint32(max(w, 0)),
		Height:      uint32(max(h, 0)),
		Format:      o.driver.Format,
		PresentMode: o.driver.PresentMode,
	}
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = dev.SurfaceFormat()
	}

	c := &Context{dev: dev, win: win, cfg: cfg}
	if cfg.Width > 0 && cfg.Height > 0 {
		if err := dev.Configure(cfg); err != nil {
			dev.Release()
			return nil, &InitError{Driver: d.Name(), Err: err}
		}
	}

	Logger().Info("frameloop: context initialized",
		"driver", d.Name(),
		"width", cfg.Width, "height", cfg.Height,
		"format", int(cfg.Format), "present", cfg.PresentMode.String())
	return c, nil
}

// Config returns the current surface configuration. Its width and
// height always equal the last non-zero drawable size applied.
func (c *Context) Config() SurfaceConfig { return c.cfg }

// Device returns the underlying driver device, for advanced callers
// such as the pipeline registry. Nil after Release.
func (c *Context) Device() driver.Device {
	if c.released {
		return nil
	}
	return c.dev
}

// Window returns the window this context presents to.
func (c *Context) Window() Window { return c.win }

// Reconfigure applies a new drawable size to the surface before the
// next frame is drawn. It is idempotent: an unchanged size does
// nothing, and a zero width or height (a minimized window's transient
// state) is a benign no-op that keeps the previous configuration.
func (c *Context) Reconfigure(width, height int) {
	if c.released {
		return
	}
	if width <= 0 || height <= 0 {
		Logger().Debug("frameloop: ignoring zero-size reconfigure",
			"width", width, "height", height)
		return
	}
	w, h := uint32(width), uint32(height)
	if w == c.cfg.Width && h == c.cfg.Height {
		return
	}
	cfg := c.cfg
	cfg.Width, cfg.Height = w, h
	if err := c.dev.Configure(cfg); err != nil {
		// Keep the old config so Config() keeps describing the surface
		// as actually configured.
		Logger().Warn("frameloop: surface reconfigure failed", "err", err)
		return
	}
	c.cfg = cfg
}

// restore reapplies the current configuration unconditionally. Used by
// the loop to recover from lost or outdated surfaces, where the size
// may be unchanged but the surface still needs reconfiguring.
func (c *Context) restore() error {
	if c.released {
		return ErrReleased
	}
	if c.cfg.Width == 0 || c.cfg.Height == 0 {
		return nil
	}
	if err := c.dev.Configure(c.cfg); err != nil {
		return fmt.Errorf("frameloop: surface restore: %w", err)
	}
	return nil
}

// AcquireFrame acquires the next presentable frame. The returned frame
// must be presented or discarded before the next acquisition; a second
// call with a frame outstanding fails with ErrFrameOutstanding.
//
// Failures pass through the driver taxonomy: ErrSurfaceLost and
// ErrSurfaceOutdated are recoverable by reconfiguring and retrying
// once, ErrSurfaceTimeout by skipping the frame.
func (c *Context) AcquireFrame() (*Frame, error) {
	if c.released {
		return nil, ErrReleased
	}
	if c.outstanding != nil {
		return nil, ErrFrameOutstanding
	}
	raw, err := c.dev.Acquire()
	if err != nil {
		return nil, err
	}
	f := &Frame{ctx: c, raw: raw}
	c.outstanding = f
	return f, nil
}

// Release frees the device and surface. Any outstanding frame is
// discarded first. Release is idempotent.
func (c *Context) Release() {
	if c.released {
		return
	}
	if c.outstanding != nil {
		c.outstanding.Discard()
	}
	c.released = true
	c.dev.Release()
}
