// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// Option configures a Context during creation.
//
// Example:
//
//	// Default: best available driver, vsync presentation.
//	ctx, err := frameloop.NewContext(win)
//
//	// Explicit driver and low-latency presentation:
//	ctx, err := frameloop.NewContext(win,
//	    frameloop.WithDriver("wgpu"),
//	    frameloop.WithPresentMode(frameloop.PresentModeMailbox),
//	)
type Option func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	driverName string
	driver     driver.Options
}

// defaultOptions returns the default context options: auto-selected
// driver, fifo (vsync) presentation, driver-preferred surface format.
func defaultOptions() contextOptions {
	return contextOptions{}
}

// Present modes, re-exported from the driver boundary.
const (
	PresentModeFifo      = driver.PresentModeFifo
	PresentModeMailbox   = driver.PresentModeMailbox
	PresentModeImmediate = driver.PresentModeImmediate
)

// Power preferences, re-exported from the driver boundary.
const (
	PowerPreferenceAuto            = driver.PowerPreferenceAuto
	PowerPreferenceLowPower        = driver.PowerPreferenceLowPower
	PowerPreferenceHighPerformance = driver.PowerPreferenceHighPerformance
)

// WithDriver selects a specific registered driver by name instead of
// the best available one.
func WithDriver(name string) Option {
	return func(o *contextOptions) {
		o.driverName = name
	}
}

// WithPresentMode sets the surface presentation mode. The default is
// PresentModeFifo (vsync), which every driver supports.
func WithPresentMode(mode driver.PresentMode) Option {
	return func(o *contextOptions) {
		o.driver.PresentMode = mode
	}
}

// WithPowerPreference sets the adapter selection preference for
// multi-GPU systems.
func WithPowerPreference(p driver.PowerPreference) Option {
	return func(o *contextOptions) {
		o.driver.Power = p
	}
}

// WithFormat requests a specific surface texture format instead of the
// driver's preferred one. Drivers fail Configure when the format is
// unsupported for the surface.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *contextOptions) {
		o.driver.Format = f
	}
}
